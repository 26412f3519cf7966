package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/repository"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *repository.IncidentRepository, *repository.AttendedRepository) {
	t.Helper()
	mem := store.NewMemory()
	incidents := repository.NewIncidentRepository(mem, nil)
	sessions := repository.NewAttendanceRepository(mem, nil)
	attended := repository.NewAttendedRepository(mem, nil)
	seen := repository.NewSeenRepository(mem, nil)
	attendance := NewAttendanceService(sessions, attended, nil, nil)
	return NewNotificationService(incidents, attendance, seen, attended, nil), incidents, attended
}

func TestDirectorSurfaceExcludesSeenAndCaps(t *testing.T) {
	svc, incidents, _ := newNotificationFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		incidents.Append(ctx, models.Incident{
			ID:        fmt.Sprintf("inc-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour).UnixMilli(),
		})
	}

	surface := svc.DirectorSurface(ctx)
	require.Len(t, surface, DirectorFeedLimit)
	assert.Equal(t, "inc-11", surface[0].ID)
	assert.Equal(t, "inc-2", surface[len(surface)-1].ID)

	svc.MarkSeen(ctx, "inc-11")
	surface = svc.DirectorSurface(ctx)
	require.Len(t, surface, DirectorFeedLimit)
	assert.Equal(t, "inc-10", surface[0].ID)
	assert.Equal(t, "inc-1", surface[len(surface)-1].ID)
}

func TestMarkAllSeenDrainsTheSurface(t *testing.T) {
	svc, incidents, _ := newNotificationFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		incidents.Append(ctx, models.Incident{ID: fmt.Sprintf("inc-%d", i), Timestamp: int64(1000 + i)})
	}

	marked := svc.MarkAllSeen(ctx)
	assert.Equal(t, 3, marked)
	assert.Empty(t, svc.DirectorSurface(ctx))
}

func TestMarkSeenNeverTouchesResolution(t *testing.T) {
	svc, incidents, _ := newNotificationFixture(t)
	ctx := context.Background()

	incidents.Append(ctx, models.Incident{ID: "inc-1", Status: models.StatusPending})
	svc.MarkSeen(ctx, "inc-1")

	stored := incidents.FindByID(ctx, "inc-1")
	require.NotNil(t, stored)
	assert.False(t, stored.Resolved)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestIsAttendedMatchesStudentTeacherAndDate(t *testing.T) {
	svc, _, _ := newNotificationFixture(t)
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	svc.MarkAttended(ctx, "Luis Martínez", "", "Prof. García")

	assert.True(t, svc.IsAttended(ctx, "Luis Martínez", "Prof. García", ""))
	assert.True(t, svc.IsAttended(ctx, "Luis Martínez", "Prof. García", today))
	assert.False(t, svc.IsAttended(ctx, "Luis Martínez", "Prof. Torres", ""))
	assert.False(t, svc.IsAttended(ctx, "María López", "Prof. García", ""))
}

func TestCleanupAttendedDropsOldMarkers(t *testing.T) {
	svc, _, attended := newNotificationFixture(t)
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	recent := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	attended.Upsert(ctx, models.AttendedMarker{Name: "Luis Martínez", Date: old, Teacher: "Prof. García"})
	attended.Upsert(ctx, models.AttendedMarker{Name: "María López", Date: recent, Teacher: "Prof. García"})

	dropped := svc.CleanupAttended(ctx, 7)
	assert.Equal(t, 1, dropped)

	markers := attended.List(ctx)
	require.Len(t, markers, 1)
	assert.Equal(t, "María López", markers[0].Name)
}
