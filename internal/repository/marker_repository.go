package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

// SeenRepository manages the set of incident ids a director has
// acknowledged. It is purely a display-suppression set.
type SeenRepository struct {
	collection[string]
}

// NewSeenRepository constructs the repository.
func NewSeenRepository(s store.Store, logger *zap.Logger) *SeenRepository {
	return &SeenRepository{newCollection[string](s, store.KeySeenIncidents, logger)}
}

// Set returns the seen ids as a membership set.
func (r *SeenRepository) Set(ctx context.Context) map[string]struct{} {
	ids := r.List(ctx)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add appends ids to the seen set, skipping duplicates.
func (r *SeenRepository) Add(ctx context.Context, ids ...string) {
	existing := r.List(ctx)
	set := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		set[id] = struct{}{}
	}
	changed := false
	for _, id := range ids {
		if _, ok := set[id]; ok {
			continue
		}
		set[id] = struct{}{}
		existing = append(existing, id)
		changed = true
	}
	if changed {
		r.Replace(ctx, existing)
	}
}

// CatalogRepository manages grade/section catalogs and homeroom tutor
// assignments.
type CatalogRepository struct {
	grades   collection[string]
	sections collection[string]
	tutors   collection[models.HomeroomTutor]
}

// Catalog defaults used when nothing has been stored yet.
var (
	DefaultGrades   = []string{"1ro", "2do", "3ro", "4to", "5to"}
	DefaultSections = []string{"A", "B", "C"}
)

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(s store.Store, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		grades:   newCollection[string](s, store.KeyGradeCatalog, logger),
		sections: newCollection[string](s, store.KeySectionCatalog, logger),
		tutors:   newCollection[models.HomeroomTutor](s, store.KeyHomeroomTutors, logger),
	}
}

// Grades returns the stored grade catalog, falling back to defaults.
func (r *CatalogRepository) Grades(ctx context.Context) []string {
	if grades := r.grades.List(ctx); len(grades) > 0 {
		return grades
	}
	return DefaultGrades
}

// Sections returns the stored section catalog, falling back to defaults.
func (r *CatalogRepository) Sections(ctx context.Context) []string {
	if sections := r.sections.List(ctx); len(sections) > 0 {
		return sections
	}
	return DefaultSections
}

// HomeroomTutors lists the per-(grade, section) tutor assignments.
func (r *CatalogRepository) HomeroomTutors(ctx context.Context) []models.HomeroomTutor {
	return r.tutors.List(ctx)
}

// SetHomeroomTutor upserts the tutor for one (grade, section) pair.
func (r *CatalogRepository) SetHomeroomTutor(ctx context.Context, assignment models.HomeroomTutor) {
	assignments := r.tutors.List(ctx)
	for i := range assignments {
		if assignments[i].Grade == assignment.Grade && assignments[i].Section == assignment.Section {
			assignments[i] = assignment
			r.tutors.Replace(ctx, assignments)
			return
		}
	}
	assignments = append(assignments, assignment)
	r.tutors.Replace(ctx, assignments)
}

// RemoveHomeroomTutor drops the assignment for one (grade, section) pair.
func (r *CatalogRepository) RemoveHomeroomTutor(ctx context.Context, grade, section string) {
	assignments := r.tutors.List(ctx)
	kept := assignments[:0]
	for _, a := range assignments {
		if a.Grade == grade && a.Section == section {
			continue
		}
		kept = append(kept, a)
	}
	r.tutors.Replace(ctx, kept)
}
