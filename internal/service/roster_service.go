package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/repository"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
)

// StudentFilter narrows the roster listing. Name matches are
// case-insensitive substrings.
type StudentFilter struct {
	Grade   string
	Section string
	Name    string
}

// RosterService serves the student, tutor, class and mark collections plus
// the grade/section catalogs.
type RosterService struct {
	students *repository.StudentRepository
	tutors   *repository.TutorRepository
	classes  *repository.ClassRepository
	grades   *repository.GradeRepository
	catalog  *repository.CatalogRepository
	logger   *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(
	students *repository.StudentRepository,
	tutors *repository.TutorRepository,
	classes *repository.ClassRepository,
	grades *repository.GradeRepository,
	catalog *repository.CatalogRepository,
	logger *zap.Logger,
) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		students: students,
		tutors:   tutors,
		classes:  classes,
		grades:   grades,
		catalog:  catalog,
		logger:   logger,
	}
}

// Students lists roster entries matching the filter, sorted by name.
func (s *RosterService) Students(ctx context.Context, filter StudentFilter) []models.Student {
	var result []models.Student
	for _, student := range s.students.List(ctx) {
		if filter.Grade != "" && student.Grade != filter.Grade {
			continue
		}
		if filter.Section != "" && student.Section != filter.Section {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(student.Name), strings.ToLower(filter.Name)) {
			continue
		}
		result = append(result, student)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Student returns one roster entry by exact name.
func (s *RosterService) Student(ctx context.Context, name string) (*models.Student, error) {
	student := s.students.FindByName(ctx, name)
	if student == nil {
		return nil, appErrors.ErrNotFound
	}
	return student, nil
}

// SaveStudent upserts a roster entry keyed by name.
func (s *RosterService) SaveStudent(ctx context.Context, student models.Student) error {
	if strings.TrimSpace(student.Name) == "" {
		return appErrors.MissingField("nombre")
	}
	roster := s.students.List(ctx)
	for i := range roster {
		if roster[i].Name == student.Name {
			roster[i] = student
			s.students.Replace(ctx, roster)
			return nil
		}
	}
	roster = append(roster, student)
	s.students.Replace(ctx, roster)
	return nil
}

// Tutors lists tutors, optionally filtered by a case-insensitive name
// substring, sorted by name.
func (s *RosterService) Tutors(ctx context.Context, nameFilter string) []models.Tutor {
	var result []models.Tutor
	for _, tutor := range s.tutors.List(ctx) {
		if nameFilter != "" && !strings.Contains(strings.ToLower(tutor.Name), strings.ToLower(nameFilter)) {
			continue
		}
		result = append(result, tutor)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// AddTutor appends a tutor with a fresh id.
func (s *RosterService) AddTutor(ctx context.Context, tutor models.Tutor) (*models.Tutor, error) {
	if strings.TrimSpace(tutor.Name) == "" {
		return nil, appErrors.MissingField("nombre")
	}
	tutor.ID = uuid.NewString()
	tutors := s.tutors.List(ctx)
	tutors = append(tutors, tutor)
	s.tutors.Replace(ctx, tutors)
	return &tutor, nil
}

// ClassFilter narrows the class listing.
type ClassFilter struct {
	Teacher string
	Grade   string
	Section string
}

// Classes lists class definitions matching the filter.
func (s *RosterService) Classes(ctx context.Context, filter ClassFilter) []models.Class {
	var result []models.Class
	for _, class := range s.classes.List(ctx) {
		if filter.Teacher != "" && !strings.EqualFold(class.Teacher, filter.Teacher) {
			continue
		}
		if filter.Grade != "" && class.Grade != filter.Grade {
			continue
		}
		if filter.Section != "" && class.Section != filter.Section {
			continue
		}
		result = append(result, class)
	}
	return result
}

// AddClass appends a class definition.
func (s *RosterService) AddClass(ctx context.Context, class models.Class) (*models.Class, error) {
	if strings.TrimSpace(class.Name) == "" {
		return nil, appErrors.MissingField("nombre")
	}
	stored := s.classes.Append(ctx, class)
	return &stored, nil
}

// Grades lists academic marks, optionally scoped to one student, ordered
// by academic period then subject.
func (s *RosterService) Grades(ctx context.Context, studentName string) []models.Grade {
	var result []models.Grade
	for _, grade := range s.grades.List(ctx) {
		if studentName != "" && grade.StudentName != studentName {
			continue
		}
		result = append(result, grade)
	}
	periodOrder := map[string]int{"Q1": 1, "Q2": 2, "Q3": 3, "Q4": 4}
	sort.SliceStable(result, func(i, j int) bool {
		if periodOrder[result[i].Period] != periodOrder[result[j].Period] {
			return periodOrder[result[i].Period] < periodOrder[result[j].Period]
		}
		return result[i].Subject < result[j].Subject
	})
	return result
}

// AddGrade appends a mark with a fresh id.
func (s *RosterService) AddGrade(ctx context.Context, grade models.Grade) (*models.Grade, error) {
	if strings.TrimSpace(grade.StudentName) == "" {
		return nil, appErrors.MissingField("studentName")
	}
	if strings.TrimSpace(grade.Subject) == "" {
		return nil, appErrors.MissingField("materia")
	}
	grade.ID = uuid.NewString()
	grades := s.grades.List(ctx)
	grades = append(grades, grade)
	s.grades.Replace(ctx, grades)
	return &grade, nil
}

// GradeCatalog returns the configured grade levels.
func (s *RosterService) GradeCatalog(ctx context.Context) []string {
	return s.catalog.Grades(ctx)
}

// SectionCatalog returns the configured sections.
func (s *RosterService) SectionCatalog(ctx context.Context) []string {
	return s.catalog.Sections(ctx)
}

// HomeroomTutors lists per-(grade, section) tutor assignments.
func (s *RosterService) HomeroomTutors(ctx context.Context) []models.HomeroomTutor {
	return s.catalog.HomeroomTutors(ctx)
}

// AssignHomeroomTutor upserts the tutor for one (grade, section) pair.
func (s *RosterService) AssignHomeroomTutor(ctx context.Context, assignment models.HomeroomTutor) error {
	if assignment.Grade == "" {
		return appErrors.MissingField("grado")
	}
	if assignment.Section == "" {
		return appErrors.MissingField("seccion")
	}
	s.catalog.SetHomeroomTutor(ctx, assignment)
	return nil
}

// UnassignHomeroomTutor drops the assignment for one (grade, section) pair.
func (s *RosterService) UnassignHomeroomTutor(ctx context.Context, grade, section string) {
	s.catalog.RemoveHomeroomTutor(ctx, grade, section)
}
