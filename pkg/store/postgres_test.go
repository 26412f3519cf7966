package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS record_collections")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	pg, err := NewPostgres(sqlx.NewDb(db, "sqlmock"))
	require.NoError(t, err)
	return pg, mock
}

func TestPostgresGetNotFound(t *testing.T) {
	pg, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM record_collections WHERE key = $1")).
		WithArgs(KeyIncidents).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	var got []string
	err := pg.Get(context.Background(), KeyIncidents, &got)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetDecodesRow(t *testing.T) {
	pg, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM record_collections WHERE key = $1")).
		WithArgs(KeyStudents).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`["Ana García"]`)))

	var got []string
	require.NoError(t, pg.Get(context.Background(), KeyStudents, &got))
	assert.Equal(t, []string{"Ana García"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPutUpserts(t *testing.T) {
	pg, mock := newPostgresMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO record_collections")).
		WithArgs(KeyTutors, []byte(`["Prof. García"]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, pg.Put(context.Background(), KeyTutors, []string{"Prof. García"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
