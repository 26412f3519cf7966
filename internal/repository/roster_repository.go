package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

// StudentRepository manages the student roster.
type StudentRepository struct {
	collection[models.Student]
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(s store.Store, logger *zap.Logger) *StudentRepository {
	return &StudentRepository{newCollection[models.Student](s, store.KeyStudents, logger)}
}

// FindByName returns the first roster entry with an exact name match.
func (r *StudentRepository) FindByName(ctx context.Context, name string) *models.Student {
	for _, student := range r.List(ctx) {
		if student.Name == name {
			found := student
			return &found
		}
	}
	return nil
}

// TutorRepository manages the tutor roster.
type TutorRepository struct {
	collection[models.Tutor]
}

// NewTutorRepository constructs the repository.
func NewTutorRepository(s store.Store, logger *zap.Logger) *TutorRepository {
	return &TutorRepository{newCollection[models.Tutor](s, store.KeyTutors, logger)}
}

// ClassRepository manages class definitions.
type ClassRepository struct {
	collection[models.Class]
}

// NewClassRepository constructs the repository.
func NewClassRepository(s store.Store, logger *zap.Logger) *ClassRepository {
	return &ClassRepository{newCollection[models.Class](s, store.KeyClasses, logger)}
}

// Append adds a class with a fresh id and returns it.
func (r *ClassRepository) Append(ctx context.Context, class models.Class) models.Class {
	class.ID = uuid.NewString()
	classes := r.List(ctx)
	classes = append(classes, class)
	r.Replace(ctx, classes)
	return class
}

// GradeRepository manages academic marks.
type GradeRepository struct {
	collection[models.Grade]
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(s store.Store, logger *zap.Logger) *GradeRepository {
	return &GradeRepository{newCollection[models.Grade](s, store.KeyGrades, logger)}
}
