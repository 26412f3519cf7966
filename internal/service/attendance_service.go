package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
)

// FlagThreshold is the attendance attention threshold: a student is flagged
// when absences or tardies exceed it (strictly greater, so four or more).
const FlagThreshold = 3

type attendanceStore interface {
	List(ctx context.Context) []models.AttendanceSession
	Upsert(ctx context.Context, session models.AttendanceSession) models.AttendanceSession
	Find(ctx context.Context, date, classID string, period int) *models.AttendanceSession
}

type attendedStore interface {
	List(ctx context.Context) []models.AttendedMarker
}

// AttendanceService records class sessions and derives per-student tallies
// and the flagged-student set.
type AttendanceService struct {
	sessions  attendanceStore
	attended  attendedStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(sessions attendanceStore, attended attendedStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AttendanceService{sessions: sessions, attended: attended, validator: validate, logger: logger, now: time.Now}
	svc.validator.RegisterValidation("attendance_state", func(fl validator.FieldLevel) bool {
		return models.AttendanceState(fl.Field().String()).Valid()
	})
	return svc
}

// RecordSessionRequest describes one class attendance submission.
type RecordSessionRequest struct {
	Date     string                            `json:"fecha" validate:"required"`
	Day      string                            `json:"dia" validate:"required"`
	ClassID  string                            `json:"claseId" validate:"required"`
	Grade    string                            `json:"grado" validate:"required"`
	Section  string                            `json:"seccion" validate:"required"`
	Teacher  string                            `json:"profesor" validate:"required"`
	Period   int                               `json:"periodo" validate:"required,min=1"`
	Location string                            `json:"lugar"`
	Entries  map[string]models.AttendanceState `json:"entries" validate:"required"`
}

// RecordSession upserts a session keyed by (date, class, period) and returns
// the stored record.
func (s *AttendanceService) RecordSession(ctx context.Context, req RecordSessionRequest) (*models.AttendanceSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance session")
	}
	for student, state := range req.Entries {
		if !state.Valid() {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid attendance state %q for %s", state, student))
		}
	}

	session := s.sessions.Upsert(ctx, models.AttendanceSession{
		Date:     req.Date,
		Day:      models.Weekday(req.Day),
		ClassID:  req.ClassID,
		Grade:    req.Grade,
		Section:  req.Section,
		Teacher:  req.Teacher,
		Period:   req.Period,
		Location: req.Location,
		Entries:  req.Entries,
	})
	s.logger.Info("attendance session recorded",
		zap.String("fecha", session.Date),
		zap.String("clase", session.ClassID),
		zap.Int("periodo", session.Period),
	)
	return &session, nil
}

// ListSessions filters stored sessions, ordered by period then timestamp.
func (s *AttendanceService) ListSessions(ctx context.Context, filter models.AttendanceSessionFilter) []models.AttendanceSession {
	var result []models.AttendanceSession
	for _, session := range s.sessions.List(ctx) {
		if filter.Date != "" && session.Date != filter.Date {
			continue
		}
		if filter.ClassID != "" && session.ClassID != filter.ClassID {
			continue
		}
		if filter.Teacher != "" && !strings.EqualFold(session.Teacher, filter.Teacher) {
			continue
		}
		if filter.Grade != "" && session.Grade != filter.Grade {
			continue
		}
		if filter.Section != "" && session.Section != filter.Section {
			continue
		}
		if filter.Day != "" && session.Day != filter.Day {
			continue
		}
		if filter.Period != nil && session.Period != *filter.Period {
			continue
		}
		result = append(result, session)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Period != result[j].Period {
			return result[i].Period < result[j].Period
		}
		return result[i].Timestamp < result[j].Timestamp
	})
	return result
}

// Tally recomputes per-student absence/tardy counts over the full session
// set. Present entries contribute nothing. Sessions are already
// upsert-deduplicated by composite key, so each counts once.
func (s *AttendanceService) Tally(ctx context.Context) map[string]models.AttendanceCount {
	counts := make(map[string]models.AttendanceCount)
	for _, session := range s.sessions.List(ctx) {
		for student, state := range session.Entries {
			c := counts[student]
			switch state {
			case models.AttendanceAbsent:
				c.Absences++
			case models.AttendanceTardy:
				c.Tardies++
			default:
				continue
			}
			counts[student] = c
		}
	}
	return counts
}

// Flagged returns the students past the attention threshold, minus those
// with an attended-today marker for the current date (any teacher counts:
// once someone acted today, the flag is suppressed for everyone until
// tomorrow). Results are ranked by combined count descending and annotated
// with the suggested incident classification.
func (s *AttendanceService) Flagged(ctx context.Context) []models.FlaggedStudent {
	today := s.now().Format("2006-01-02")
	attendedToday := make(map[string]struct{})
	for _, marker := range s.attended.List(ctx) {
		if marker.Date == today {
			attendedToday[marker.Name] = struct{}{}
		}
	}

	var flagged []models.FlaggedStudent
	for student, counts := range s.Tally(ctx) {
		if counts.Absences <= FlagThreshold && counts.Tardies <= FlagThreshold {
			continue
		}
		if _, ok := attendedToday[student]; ok {
			continue
		}
		flagged = append(flagged, models.FlaggedStudent{
			Name:              student,
			Counts:            counts,
			SuggestedType:     models.IncidentAbsence,
			SuggestedSeverity: SuggestedSeverity(counts),
		})
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		if flagged[i].Counts.Total() != flagged[j].Counts.Total() {
			return flagged[i].Counts.Total() > flagged[j].Counts.Total()
		}
		return flagged[i].Name < flagged[j].Name
	})
	return flagged
}
