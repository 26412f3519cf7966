package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

// AttendanceRepository manages class attendance sessions.
type AttendanceRepository struct {
	collection[models.AttendanceSession]
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(s store.Store, logger *zap.Logger) *AttendanceRepository {
	return &AttendanceRepository{newCollection[models.AttendanceSession](s, store.KeyAttendance, logger)}
}

// Upsert writes a session keyed by (date, class, period). A second
// submission for the same composite replaces the prior record, keeping its
// id; it never accumulates.
func (r *AttendanceRepository) Upsert(ctx context.Context, session models.AttendanceSession) models.AttendanceSession {
	sessions := r.List(ctx)
	session.Timestamp = time.Now().UnixMilli()

	for i := range sessions {
		if sessions[i].Date == session.Date && sessions[i].ClassID == session.ClassID && sessions[i].Period == session.Period {
			session.ID = sessions[i].ID
			sessions[i] = session
			r.Replace(ctx, sessions)
			return session
		}
	}

	session.ID = uuid.NewString()
	sessions = append(sessions, session)
	r.Replace(ctx, sessions)
	return session
}

// Find returns the session for one (date, class, period) composite, or nil.
func (r *AttendanceRepository) Find(ctx context.Context, date, classID string, period int) *models.AttendanceSession {
	for _, session := range r.List(ctx) {
		if session.Date == date && session.ClassID == classID && session.Period == period {
			found := session
			return &found
		}
	}
	return nil
}

// AttendedRepository manages attended-today suppression markers.
type AttendedRepository struct {
	collection[models.AttendedMarker]
}

// NewAttendedRepository constructs the repository.
func NewAttendedRepository(s store.Store, logger *zap.Logger) *AttendedRepository {
	return &AttendedRepository{newCollection[models.AttendedMarker](s, store.KeyAttendedStudents, logger)}
}

// Upsert records that a teacher acted on a student. Markers are keyed by
// (student, teacher): a newer marker supersedes the old one.
func (r *AttendedRepository) Upsert(ctx context.Context, marker models.AttendedMarker) {
	markers := r.List(ctx)
	kept := markers[:0]
	for _, m := range markers {
		if m.Name == marker.Name && m.Teacher == marker.Teacher {
			continue
		}
		kept = append(kept, m)
	}
	kept = append(kept, marker)
	r.Replace(ctx, kept)
}

// Prune removes markers older than the cutoff date (YYYY-MM-DD, lexically
// comparable). Returns how many were dropped.
func (r *AttendedRepository) Prune(ctx context.Context, cutoff string) int {
	markers := r.List(ctx)
	kept := make([]models.AttendedMarker, 0, len(markers))
	for _, m := range markers {
		if m.Date >= cutoff {
			kept = append(kept, m)
		}
	}
	dropped := len(markers) - len(kept)
	if dropped > 0 {
		r.Replace(ctx, kept)
	}
	return dropped
}

// CutoffDate formats today-minus-n-days as YYYY-MM-DD.
func CutoffDate(now time.Time, days int) string {
	return now.AddDate(0, 0, -days).Format("2006-01-02")
}
