package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
)

type incidentStoreStub struct {
	incidents []models.Incident
}

func (s *incidentStoreStub) List(ctx context.Context) []models.Incident {
	return append([]models.Incident(nil), s.incidents...)
}

func (s *incidentStoreStub) Append(ctx context.Context, incident models.Incident) {
	s.incidents = append(s.incidents, incident)
}

func (s *incidentStoreStub) Update(ctx context.Context, id string, fn func(*models.Incident)) bool {
	for i := range s.incidents {
		if s.incidents[i].ID == id {
			fn(&s.incidents[i])
			return true
		}
	}
	return false
}

func (s *incidentStoreStub) FindByID(ctx context.Context, id string) *models.Incident {
	for _, incident := range s.incidents {
		if incident.ID == id {
			found := incident
			return &found
		}
	}
	return nil
}

func validIncidentRequest() CreateIncidentRequest {
	return CreateIncidentRequest{
		StudentName: "Juan Pérez",
		Type:        "conducta",
		Subtype:     "agresion",
		Severity:    "grave",
		Description: "Agresión en el patio",
		Date:        "2024-12-02",
		Teacher:     "Prof. García",
		Tutor:       "Prof. García",
		Location:    "Patio",
		Derivation:  "director",
	}
}

func TestCreateInitializesWorkflow(t *testing.T) {
	store := &incidentStoreStub{}
	svc := NewIncidentService(store, nil)

	incident, err := svc.Create(context.Background(), validIncidentRequest())
	require.NoError(t, err)
	require.NotNil(t, incident)

	assert.NotEmpty(t, incident.ID)
	assert.NotZero(t, incident.Timestamp)
	assert.Equal(t, models.StatusPending, incident.Status)
	require.Len(t, incident.History, 1)
	assert.Equal(t, models.StatusPending, incident.History[0].Status)
	assert.Equal(t, SystemActor, incident.History[0].Actor)
	assert.False(t, incident.Resolved)
	assert.Len(t, store.incidents, 1)
}

func TestCreateRejectsMissingSubtype(t *testing.T) {
	svc := NewIncidentService(&incidentStoreStub{}, nil)

	req := validIncidentRequest()
	req.Subtype = ""
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subtipo")

	req = validIncidentRequest()
	req.Type = "positivo"
	req.Subtype = "agresion"
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subtipo")
}

func TestCreateSubtypeOptionalOutsideConductPositive(t *testing.T) {
	store := &incidentStoreStub{}
	svc := NewIncidentService(store, nil)

	req := validIncidentRequest()
	req.Type = "ausencia"
	req.Subtype = "agresion"
	incident, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, incident.Subtype)
}

func TestCreateNamesMissingField(t *testing.T) {
	svc := NewIncidentService(&incidentStoreStub{}, nil)

	req := validIncidentRequest()
	req.Location = ""
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "lugar")
}

func TestSetStatusAppendsUnconditionally(t *testing.T) {
	store := &incidentStoreStub{}
	svc := NewIncidentService(store, nil)

	incident, err := svc.Create(context.Background(), validIncidentRequest())
	require.NoError(t, err)

	sequence := []models.IncidentStatus{
		models.StatusClosed,
		models.StatusPending,
		models.StatusUnderReview,
		models.StatusUnderReview,
	}
	for _, status := range sequence {
		require.NoError(t, svc.SetStatus(context.Background(), incident.ID, status, "director"))
	}

	stored := store.FindByID(context.Background(), incident.ID)
	require.NotNil(t, stored)
	assert.Len(t, stored.History, len(sequence)+1)
	assert.Equal(t, models.StatusUnderReview, stored.Status)
	assert.False(t, stored.Resolved)
}

func TestSetStatusUnknownIDIsSilent(t *testing.T) {
	svc := NewIncidentService(&incidentStoreStub{}, nil)
	err := svc.SetStatus(context.Background(), "missing", models.StatusResolved, "director")
	assert.NoError(t, err)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	svc := NewIncidentService(&incidentStoreStub{}, nil)
	err := svc.SetStatus(context.Background(), "any", models.IncidentStatus("Archivada"), "director")
	require.Error(t, err)
}

func TestResolveLeavesStatusUntouched(t *testing.T) {
	store := &incidentStoreStub{}
	svc := NewIncidentService(store, nil)

	incident, err := svc.Create(context.Background(), validIncidentRequest())
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(context.Background(), incident.ID, models.StatusUnderReview, "director"))

	svc.Resolve(context.Background(), incident.ID, "")

	stored := store.FindByID(context.Background(), incident.ID)
	require.NotNil(t, stored)
	assert.True(t, stored.Resolved)
	assert.Equal(t, DefaultResolver, stored.ResolvedBy)
	assert.NotEmpty(t, stored.ResolvedAt)
	assert.Equal(t, models.StatusUnderReview, stored.Status)
	assert.Len(t, stored.History, 2)
}

func TestPendingDerivationsIncludesUnroutedWhenUnfiltered(t *testing.T) {
	store := &incidentStoreStub{}
	svc := NewIncidentService(store, nil)

	first, err := svc.Create(context.Background(), validIncidentRequest())
	require.NoError(t, err)

	unrouted := validIncidentRequest()
	unrouted.Derivation = "ninguna"
	second, err := svc.Create(context.Background(), unrouted)
	require.NoError(t, err)

	pending := svc.PendingDerivations(context.Background(), "")
	require.Len(t, pending, 2)

	filtered := svc.PendingDerivations(context.Background(), models.DerivationDirector)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)

	svc.Resolve(context.Background(), second.ID, "Director")
	pending = svc.PendingDerivations(context.Background(), "")
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)
}

func TestPendingDerivationsOrderedNewestFirst(t *testing.T) {
	older := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 12, 10, 10, 0, 0, 0, time.UTC)
	store := &incidentStoreStub{incidents: []models.Incident{
		{ID: "a", Timestamp: older.UnixMilli(), Date: "2024-12-01"},
		{ID: "b", Timestamp: newer.UnixMilli(), Date: "2024-12-10"},
		// Missing timestamp falls back to the parsed date.
		{ID: "c", Date: "2024-12-05"},
	}}
	svc := NewIncidentService(store, nil)

	pending := svc.PendingDerivations(context.Background(), "")
	require.Len(t, pending, 3)
	assert.Equal(t, "b", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
	assert.Equal(t, "a", pending[2].ID)
}

func TestListFilterTreatsTodasAsWildcard(t *testing.T) {
	store := &incidentStoreStub{incidents: []models.Incident{
		{ID: "a", StudentName: "Juan Pérez", Type: models.IncidentConduct, Severity: models.SeveritySevere, Date: "2024-12-02"},
		{ID: "b", StudentName: "María López", Type: models.IncidentAcademic, Severity: models.SeverityMild, Date: "2024-12-03"},
	}}
	svc := NewIncidentService(store, nil)

	all := svc.List(context.Background(), models.IncidentFilter{Severity: "todas", Type: "todas"})
	assert.Len(t, all, 2)

	byStudent := svc.List(context.Background(), models.IncidentFilter{StudentName: "maría"})
	require.Len(t, byStudent, 1)
	assert.Equal(t, "b", byStudent[0].ID)
}

func TestSuggestedSeverity(t *testing.T) {
	assert.Equal(t, models.SeverityModerate, SuggestedSeverity(models.AttendanceCount{Absences: 1, Tardies: 4}))
	assert.Equal(t, models.SeveritySevere, SuggestedSeverity(models.AttendanceCount{Absences: 4, Tardies: 0}))
	// Ties favor the absence branch.
	assert.Equal(t, models.SeveritySevere, SuggestedSeverity(models.AttendanceCount{Absences: 4, Tardies: 4}))
}

func TestCreateFromAttendance(t *testing.T) {
	store := &incidentStoreStub{}
	svc := NewIncidentService(store, nil)

	incident, err := svc.CreateFromAttendance(context.Background(), "Luis Martínez", models.AttendanceCount{Absences: 4, Tardies: 1}, "Prof. García")
	require.NoError(t, err)
	assert.Equal(t, models.IncidentAbsence, incident.Type)
	assert.Equal(t, models.SeveritySevere, incident.Severity)
	assert.Contains(t, incident.Description, "4 ausencias")
	assert.Contains(t, incident.Description, "1 tardanzas")
}
