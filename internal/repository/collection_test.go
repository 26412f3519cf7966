package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string, v interface{}) error {
	return errors.New("backend down")
}

func (failingStore) Put(ctx context.Context, key string, v interface{}) error {
	return errors.New("backend down")
}

func TestCollectionDegradesOnStoreFailure(t *testing.T) {
	repo := NewIncidentRepository(failingStore{}, nil)
	ctx := context.Background()

	assert.Empty(t, repo.List(ctx))
	// Writes are dropped, not surfaced.
	repo.Append(ctx, models.Incident{ID: "inc-1"})
	assert.Empty(t, repo.List(ctx))
}

func TestIncidentUpdateReportsMisses(t *testing.T) {
	repo := NewIncidentRepository(store.NewMemory(), nil)
	ctx := context.Background()

	repo.Append(ctx, models.Incident{ID: "inc-1"})

	ok := repo.Update(ctx, "inc-1", func(inc *models.Incident) { inc.Resolved = true })
	assert.True(t, ok)
	require.NotNil(t, repo.FindByID(ctx, "inc-1"))
	assert.True(t, repo.FindByID(ctx, "inc-1").Resolved)

	assert.False(t, repo.Update(ctx, "missing", func(inc *models.Incident) { inc.Resolved = true }))
}

func TestAttendedUpsertKeyedByStudentAndTeacher(t *testing.T) {
	repo := NewAttendedRepository(store.NewMemory(), nil)
	ctx := context.Background()

	repo.Upsert(ctx, models.AttendedMarker{Name: "Luis Martínez", Date: "2024-12-01", Teacher: "Prof. García"})
	repo.Upsert(ctx, models.AttendedMarker{Name: "Luis Martínez", Date: "2024-12-02", Teacher: "Prof. García"})
	repo.Upsert(ctx, models.AttendedMarker{Name: "Luis Martínez", Date: "2024-12-02", Teacher: "Prof. Torres"})

	markers := repo.List(ctx)
	require.Len(t, markers, 2)
}

func TestSeenAddDeduplicates(t *testing.T) {
	repo := NewSeenRepository(store.NewMemory(), nil)
	ctx := context.Background()

	repo.Add(ctx, "a", "b")
	repo.Add(ctx, "b", "c")

	set := repo.Set(ctx)
	assert.Len(t, set, 3)
}

func TestCatalogDefaults(t *testing.T) {
	repo := NewCatalogRepository(store.NewMemory(), nil)
	ctx := context.Background()

	assert.Equal(t, DefaultGrades, repo.Grades(ctx))
	assert.Equal(t, DefaultSections, repo.Sections(ctx))

	repo.SetHomeroomTutor(ctx, models.HomeroomTutor{Grade: "1ro", Section: "A", TutorID: "t1", TutorName: "Prof. García"})
	repo.SetHomeroomTutor(ctx, models.HomeroomTutor{Grade: "1ro", Section: "A", TutorID: "t2", TutorName: "Prof. Torres"})

	assignments := repo.HomeroomTutors(ctx)
	require.Len(t, assignments, 1)
	assert.Equal(t, "t2", assignments[0].TutorID)
}
