package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/repository"
)

// DirectorFeedLimit caps the director surface at the most recent incidents.
const DirectorFeedLimit = 10

type seenStore interface {
	Set(ctx context.Context) map[string]struct{}
	Add(ctx context.Context, ids ...string)
}

type attendedMarkerStore interface {
	List(ctx context.Context) []models.AttendedMarker
	Upsert(ctx context.Context, marker models.AttendedMarker)
	Prune(ctx context.Context, cutoff string) int
}

type incidentReader interface {
	List(ctx context.Context) []models.Incident
}

// NotificationService computes the attention surfaces. Both are read-only
// views rebuilt from store contents on every call: there is no cached or
// pushed notification state, only the marker sets.
type NotificationService struct {
	incidents  incidentReader
	attendance *AttendanceService
	seen       seenStore
	attended   attendedMarkerStore
	logger     *zap.Logger
	now        func() time.Time
}

// NewNotificationService constructs the service.
func NewNotificationService(incidents incidentReader, attendance *AttendanceService, seen seenStore, attended attendedMarkerStore, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		incidents:  incidents,
		attendance: attendance,
		seen:       seen,
		attended:   attended,
		logger:     logger,
		now:        time.Now,
	}
}

// TeacherSurface returns the ranked flagged-student list with suggested
// incident classifications, for one-click registration.
func (s *NotificationService) TeacherSurface(ctx context.Context) []models.FlaggedStudent {
	return s.attendance.Flagged(ctx)
}

// DirectorSurface returns the newest unacknowledged incidents, capped at
// DirectorFeedLimit. Acknowledgement is display-only: it never touches the
// resolved flag or the status workflow.
func (s *NotificationService) DirectorSurface(ctx context.Context) []models.Incident {
	seen := s.seen.Set(ctx)
	var fresh []models.Incident
	for _, incident := range s.incidents.List(ctx) {
		if _, ok := seen[incident.ID]; ok {
			continue
		}
		fresh = append(fresh, incident)
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return effectiveMillis(fresh[i]) > effectiveMillis(fresh[j])
	})
	if len(fresh) > DirectorFeedLimit {
		fresh = fresh[:DirectorFeedLimit]
	}
	return fresh
}

// MarkSeen acknowledges a single incident id.
func (s *NotificationService) MarkSeen(ctx context.Context, id string) {
	s.seen.Add(ctx, id)
}

// MarkAllSeen acknowledges every incident currently on the director
// surface.
func (s *NotificationService) MarkAllSeen(ctx context.Context) int {
	listed := s.DirectorSurface(ctx)
	ids := make([]string, 0, len(listed))
	for _, incident := range listed {
		ids = append(ids, incident.ID)
	}
	s.seen.Add(ctx, ids...)
	return len(ids)
}

// MarkAttended records that a teacher acted on a flagged student today,
// suppressing the flag for everyone until tomorrow.
func (s *NotificationService) MarkAttended(ctx context.Context, name, date, teacher string) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	s.attended.Upsert(ctx, models.AttendedMarker{Name: name, Date: date, Teacher: teacher})
}

// MarkManyAttended records markers for several students at once.
func (s *NotificationService) MarkManyAttended(ctx context.Context, names []string, date, teacher string) {
	for _, name := range names {
		s.MarkAttended(ctx, name, date, teacher)
	}
}

// IsAttended reports whether a (student, teacher) pair already has a marker
// for the given date, defaulting to today.
func (s *NotificationService) IsAttended(ctx context.Context, name, teacher, date string) bool {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	for _, marker := range s.attended.List(ctx) {
		if marker.Name == name && marker.Teacher == teacher && marker.Date == date {
			return true
		}
	}
	return false
}

// CleanupAttended drops markers older than the retention window.
func (s *NotificationService) CleanupAttended(ctx context.Context, retentionDays int) int {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	cutoff := repository.CutoffDate(s.now(), retentionDays)
	dropped := s.attended.Prune(ctx, cutoff)
	if dropped > 0 {
		s.logger.Info("pruned stale attended markers", zap.Int("dropped", dropped), zap.String("cutoff", cutoff))
	}
	return dropped
}
