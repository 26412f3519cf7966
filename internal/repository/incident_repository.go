package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

// IncidentRepository manages the incident collection.
type IncidentRepository struct {
	collection[models.Incident]
}

// NewIncidentRepository constructs the repository.
func NewIncidentRepository(s store.Store, logger *zap.Logger) *IncidentRepository {
	return &IncidentRepository{newCollection[models.Incident](s, store.KeyIncidents, logger)}
}

// Append adds one incident to the collection.
func (r *IncidentRepository) Append(ctx context.Context, incident models.Incident) {
	incidents := r.List(ctx)
	incidents = append(incidents, incident)
	r.Replace(ctx, incidents)
}

// Update applies fn to the incident with the given id and persists the
// collection. A missing id is a silent no-op: the modified flag only tells
// the caller whether anything was written.
func (r *IncidentRepository) Update(ctx context.Context, id string, fn func(*models.Incident)) bool {
	incidents := r.List(ctx)
	for i := range incidents {
		if incidents[i].ID == id {
			fn(&incidents[i])
			r.Replace(ctx, incidents)
			return true
		}
	}
	return false
}

// FindByID returns the incident with the given id, or nil.
func (r *IncidentRepository) FindByID(ctx context.Context, id string) *models.Incident {
	for _, incident := range r.List(ctx) {
		if incident.ID == id {
			found := incident
			return &found
		}
	}
	return nil
}
