package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
)

// SystemActor is recorded on the initial history entry of every incident.
const SystemActor = "system"

// DefaultResolver is used when a resolution request names nobody.
const DefaultResolver = "Director"

type incidentStore interface {
	List(ctx context.Context) []models.Incident
	Append(ctx context.Context, incident models.Incident)
	Update(ctx context.Context, id string, fn func(*models.Incident)) bool
	FindByID(ctx context.Context, id string) *models.Incident
}

// IncidentService owns the incident lifecycle: classification at intake,
// the status workflow, resolution, and the pending-derivations query.
type IncidentService struct {
	repo   incidentStore
	logger *zap.Logger
	now    func() time.Time
}

// NewIncidentService constructs the service. Field checks are written out by
// hand so every rejection names the missing or invalid field.
func NewIncidentService(repo incidentStore, logger *zap.Logger) *IncidentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IncidentService{repo: repo, logger: logger, now: time.Now}
}

// CreateIncidentRequest describes an incident submission.
type CreateIncidentRequest struct {
	StudentName string `json:"studentName"`
	Type        string `json:"tipo"`
	Subtype     string `json:"subtipo"`
	Severity    string `json:"gravedad"`
	Description string `json:"descripcion"`
	Date        string `json:"fecha"`
	Teacher     string `json:"profesor"`
	Tutor       string `json:"tutor"`
	Location    string `json:"lugar"`
	Derivation  string `json:"derivacion"`
}

// Create validates and normalizes a submission into a canonical incident,
// persists it, and returns it. Validation failures name the offending field
// and nothing is written.
func (s *IncidentService) Create(ctx context.Context, req CreateIncidentRequest) (*models.Incident, error) {
	incident, err := s.classify(req)
	if err != nil {
		return nil, err
	}
	s.repo.Append(ctx, *incident)
	s.logger.Info("incident created",
		zap.String("id", incident.ID),
		zap.String("student", incident.StudentName),
		zap.String("tipo", string(incident.Type)),
	)
	return incident, nil
}

func (s *IncidentService) classify(req CreateIncidentRequest) (*models.Incident, error) {
	required := []struct {
		field string
		value string
	}{
		{"studentName", req.StudentName},
		{"tipo", req.Type},
		{"descripcion", req.Description},
		{"fecha", req.Date},
		{"profesor", req.Teacher},
		{"tutor", req.Tutor},
		{"lugar", req.Location},
		{"gravedad", req.Severity},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, appErrors.MissingField(f.field)
		}
	}

	incidentType := models.IncidentType(req.Type)
	if !incidentType.Valid() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid tipo: %s", req.Type))
	}

	severity := models.Severity(req.Severity)
	if !severity.Valid() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid gravedad: %s", req.Severity))
	}

	derivation := models.DerivationTarget(req.Derivation)
	if req.Derivation == "" {
		derivation = models.DerivationNone
	} else if !derivation.Valid() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid derivacion: %s", req.Derivation))
	}

	subtype := models.IncidentSubtype(req.Subtype)
	if allowed := models.SubtypesFor(incidentType); allowed != nil {
		if req.Subtype == "" {
			return nil, appErrors.MissingField("subtipo")
		}
		valid := false
		for _, candidate := range allowed {
			if candidate == subtype {
				valid = true
				break
			}
		}
		if !valid {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid subtipo %q for tipo %s", req.Subtype, incidentType))
		}
	} else {
		subtype = ""
	}

	now := s.now()
	return &models.Incident{
		ID:          uuid.NewString(),
		StudentName: strings.TrimSpace(req.StudentName),
		Type:        incidentType,
		Subtype:     subtype,
		Severity:    severity,
		Description: req.Description,
		Date:        req.Date,
		Teacher:     req.Teacher,
		Tutor:       req.Tutor,
		Location:    req.Location,
		Timestamp:   now.UnixMilli(),
		Derivation:  derivation,
		Status:      models.StatusPending,
		History: []models.StatusChange{
			{Status: models.StatusPending, Date: now.UTC().Format(time.RFC3339), Actor: SystemActor},
		},
	}, nil
}

// CreateFromAttendance auto-generates an absence incident for a student who
// crossed the attendance threshold. Severity follows the fixed rule: more
// tardies than absences is moderate, anything else severe.
func (s *IncidentService) CreateFromAttendance(ctx context.Context, studentName string, counts models.AttendanceCount, teacher string) (*models.Incident, error) {
	return s.Create(ctx, CreateIncidentRequest{
		StudentName: studentName,
		Type:        string(models.IncidentAbsence),
		Severity:    string(SuggestedSeverity(counts)),
		Description: fmt.Sprintf("Acumulación de inasistencias: %d ausencias y %d tardanzas registradas", counts.Absences, counts.Tardies),
		Date:        s.now().Format("2006-01-02"),
		Teacher:     teacher,
		Tutor:       teacher,
		Location:    "Registro de asistencia",
		Derivation:  string(models.DerivationNone),
	})
}

// SuggestedSeverity applies the attendance-derived severity rule. Ties favor
// the absence branch.
func SuggestedSeverity(counts models.AttendanceCount) models.Severity {
	if counts.Tardies > counts.Absences {
		return models.SeverityModerate
	}
	return models.SeveritySevere
}

// SetStatus appends a workflow stage change to an incident's history. An
// unknown id is a silent no-op: callers must not rely on error signaling
// here. The Resolved flag is never touched.
func (s *IncidentService) SetStatus(ctx context.Context, id string, status models.IncidentStatus, actor string) error {
	if !status.Valid() {
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid estado: %s", status))
	}
	now := s.now().UTC().Format(time.RFC3339)
	updated := s.repo.Update(ctx, id, func(incident *models.Incident) {
		incident.Status = status
		incident.History = append(incident.History, models.StatusChange{Status: status, Date: now, Actor: actor})
	})
	if !updated {
		s.logger.Debug("status change for unknown incident", zap.String("id", id))
	}
	return nil
}

// Resolve marks an incident operationally resolved. It is independent of the
// status workflow: neither Status nor History changes. An unknown id is a
// silent no-op.
func (s *IncidentService) Resolve(ctx context.Context, id, resolvedBy string) {
	if resolvedBy == "" {
		resolvedBy = DefaultResolver
	}
	today := s.now().Format("2006-01-02")
	updated := s.repo.Update(ctx, id, func(incident *models.Incident) {
		incident.Resolved = true
		incident.ResolvedAt = today
		incident.ResolvedBy = resolvedBy
	})
	if !updated {
		s.logger.Debug("resolve for unknown incident", zap.String("id", id))
	}
}

// PendingDerivations returns every unresolved incident, newest first. With
// no filter, incidents routed nowhere (derivacion ninguna) are still
// included: not-yet-resolved is enough, routing is optional. With a filter,
// only incidents routed to that target are returned.
func (s *IncidentService) PendingDerivations(ctx context.Context, target models.DerivationTarget) []models.Incident {
	var pending []models.Incident
	for _, incident := range s.repo.List(ctx) {
		if incident.Resolved {
			continue
		}
		if target != "" && incident.Derivation != target {
			continue
		}
		pending = append(pending, incident)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return effectiveMillis(pending[i]) > effectiveMillis(pending[j])
	})
	return pending
}

// effectiveMillis orders incidents by creation instant, falling back to the
// human-entered date when the timestamp is absent.
func effectiveMillis(incident models.Incident) int64 {
	if incident.Timestamp != 0 {
		return incident.Timestamp
	}
	if t, err := time.Parse("2006-01-02", incident.Date); err == nil {
		return t.UnixMilli()
	}
	return 0
}

// List returns incidents matching the filter, ordered by date descending.
func (s *IncidentService) List(ctx context.Context, filter models.IncidentFilter) []models.Incident {
	var result []models.Incident
	for _, incident := range s.repo.List(ctx) {
		if filter.Severity != "" && filter.Severity != "todas" && string(incident.Severity) != filter.Severity {
			continue
		}
		if filter.Type != "" && filter.Type != "todas" && string(incident.Type) != filter.Type {
			continue
		}
		if filter.StudentName != "" && !strings.Contains(strings.ToLower(incident.StudentName), strings.ToLower(filter.StudentName)) {
			continue
		}
		if filter.DateFrom != "" && incident.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && incident.Date > filter.DateTo {
			continue
		}
		result = append(result, incident)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result
}

// Get returns a single incident by id.
func (s *IncidentService) Get(ctx context.Context, id string) (*models.Incident, error) {
	incident := s.repo.FindByID(ctx, id)
	if incident == nil {
		return nil, appErrors.ErrNotFound
	}
	return incident, nil
}

// ByStudent returns a student's full incident history, newest date first.
func (s *IncidentService) ByStudent(ctx context.Context, studentName string) []models.Incident {
	var result []models.Incident
	for _, incident := range s.repo.List(ctx) {
		if incident.StudentName == studentName {
			result = append(result, incident)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result
}

// StudentSummaries aggregates incident counts per student, sorted by name.
func (s *IncidentService) StudentSummaries(ctx context.Context) []models.StudentIncidentSummary {
	byStudent := make(map[string][]models.Incident)
	for _, incident := range s.repo.List(ctx) {
		byStudent[incident.StudentName] = append(byStudent[incident.StudentName], incident)
	}
	summaries := make([]models.StudentIncidentSummary, 0, len(byStudent))
	for name, incidents := range byStudent {
		last := ""
		for _, incident := range incidents {
			if incident.Date > last {
				last = incident.Date
			}
		}
		summaries = append(summaries, models.StudentIncidentSummary{
			Name:           name,
			TotalIncidents: len(incidents),
			LastIncident:   last,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}
