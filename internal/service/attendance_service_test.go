package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/repository"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

func newAttendanceFixture(t *testing.T) (*AttendanceService, *repository.AttendanceRepository, *repository.AttendedRepository) {
	t.Helper()
	mem := store.NewMemory()
	sessions := repository.NewAttendanceRepository(mem, nil)
	attended := repository.NewAttendedRepository(mem, nil)
	return NewAttendanceService(sessions, attended, nil, nil), sessions, attended
}

func sessionRequest(date string, period int, entries map[string]models.AttendanceState) RecordSessionRequest {
	return RecordSessionRequest{
		Date:    date,
		Day:     "lunes",
		ClassID: "clase-1",
		Grade:   "1ro",
		Section: "A",
		Teacher: "Prof. García",
		Period:  period,
		Entries: entries,
	}
}

func TestRecordSessionUpsertsByComposite(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	first, err := svc.RecordSession(ctx, sessionRequest("2024-12-02", 1, map[string]models.AttendanceState{
		"Luis Martínez": models.AttendanceAbsent,
	}))
	require.NoError(t, err)

	second, err := svc.RecordSession(ctx, sessionRequest("2024-12-02", 1, map[string]models.AttendanceState{
		"Luis Martínez": models.AttendancePresent,
	}))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	sessions := svc.ListSessions(ctx, models.AttendanceSessionFilter{})
	require.Len(t, sessions, 1)
	assert.Equal(t, models.AttendancePresent, sessions[0].Entries["Luis Martínez"])

	// A different period is a new record.
	_, err = svc.RecordSession(ctx, sessionRequest("2024-12-02", 2, map[string]models.AttendanceState{
		"Luis Martínez": models.AttendanceAbsent,
	}))
	require.NoError(t, err)
	assert.Len(t, svc.ListSessions(ctx, models.AttendanceSessionFilter{}), 2)
}

func TestRecordSessionRejectsInvalidState(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)

	_, err := svc.RecordSession(context.Background(), sessionRequest("2024-12-02", 1, map[string]models.AttendanceState{
		"Luis Martínez": models.AttendanceState("justificado"),
	}))
	require.Error(t, err)
}

func TestTallyCountsAbsencesAndTardies(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	dates := []string{"2024-12-02", "2024-12-03", "2024-12-04"}
	for _, date := range dates {
		_, err := svc.RecordSession(ctx, sessionRequest(date, 1, map[string]models.AttendanceState{
			"Luis Martínez": models.AttendanceAbsent,
			"María López":   models.AttendanceTardy,
			"Ana García":    models.AttendancePresent,
		}))
		require.NoError(t, err)
	}

	counts := svc.Tally(ctx)
	assert.Equal(t, models.AttendanceCount{Absences: 3}, counts["Luis Martínez"])
	assert.Equal(t, models.AttendanceCount{Tardies: 3}, counts["María López"])
	_, ok := counts["Ana García"]
	assert.False(t, ok)
}

func TestFlaggedThresholdIsStrictlyGreaterThanThree(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	// Three absences: at the threshold, not past it.
	for i, date := range []string{"2024-12-02", "2024-12-03", "2024-12-04"} {
		_, err := svc.RecordSession(ctx, sessionRequest(date, i+1, map[string]models.AttendanceState{
			"Luis Martínez": models.AttendanceAbsent,
		}))
		require.NoError(t, err)
	}
	assert.Empty(t, svc.Flagged(ctx))

	_, err := svc.RecordSession(ctx, sessionRequest("2024-12-05", 1, map[string]models.AttendanceState{
		"Luis Martínez": models.AttendanceAbsent,
	}))
	require.NoError(t, err)

	flagged := svc.Flagged(ctx)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Luis Martínez", flagged[0].Name)
	assert.Equal(t, models.IncidentAbsence, flagged[0].SuggestedType)
	assert.Equal(t, models.SeveritySevere, flagged[0].SuggestedSeverity)
}

func TestFlaggedSuggestsModerateForTardies(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)
	ctx := context.Background()

	for i, date := range []string{"2024-12-02", "2024-12-03", "2024-12-04", "2024-12-05"} {
		_, err := svc.RecordSession(ctx, sessionRequest(date, i+1, map[string]models.AttendanceState{
			"María López": models.AttendanceTardy,
		}))
		require.NoError(t, err)
	}

	flagged := svc.Flagged(ctx)
	require.Len(t, flagged, 1)
	assert.Equal(t, models.SeverityModerate, flagged[0].SuggestedSeverity)
}

func TestFlaggedSuppressedByAttendedTodayOnly(t *testing.T) {
	svc, _, attended := newAttendanceFixture(t)
	ctx := context.Background()

	for i, date := range []string{"2024-12-02", "2024-12-03", "2024-12-04", "2024-12-05"} {
		_, err := svc.RecordSession(ctx, sessionRequest(date, i+1, map[string]models.AttendanceState{
			"Luis Martínez": models.AttendanceAbsent,
		}))
		require.NoError(t, err)
	}

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	attended.Upsert(ctx, models.AttendedMarker{Name: "Luis Martínez", Date: yesterday, Teacher: "Prof. García"})
	require.Len(t, svc.Flagged(ctx), 1)

	today := time.Now().Format("2006-01-02")
	attended.Upsert(ctx, models.AttendedMarker{Name: "Luis Martínez", Date: today, Teacher: "Prof. Torres"})
	assert.Empty(t, svc.Flagged(ctx))
}

func TestFlaggedRankedByCombinedCount(t *testing.T) {
	svc, sessions, _ := newAttendanceFixture(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		sessions.Upsert(ctx, models.AttendanceSession{
			Date:    time.Date(2024, 12, 2+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			ClassID: "clase-1",
			Period:  1,
			Entries: map[string]models.AttendanceState{
				"Luis Martínez": models.AttendanceAbsent,
			},
		})
	}
	for i := 0; i < 4; i++ {
		sessions.Upsert(ctx, models.AttendanceSession{
			Date:    time.Date(2024, 12, 2+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			ClassID: "clase-2",
			Period:  1,
			Entries: map[string]models.AttendanceState{
				"María López": models.AttendanceTardy,
			},
		})
	}

	flagged := svc.Flagged(ctx)
	require.Len(t, flagged, 2)
	assert.Equal(t, "Luis Martínez", flagged[0].Name)
	assert.Equal(t, "María López", flagged[1].Name)
}
