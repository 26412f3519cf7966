package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/tutoria-escolar/tutoria-api/pkg/config"
)

// Postgres persists each collection as one JSONB row in a single table.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgresDB returns a configured PostgreSQL client.
func NewPostgresDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// NewPostgres wraps a database handle as a collection Store and ensures the
// backing table exists.
func NewPostgres(db *sqlx.DB) (*Postgres, error) {
	schema := `CREATE TABLE IF NOT EXISTS record_collections (
    key TEXT PRIMARY KEY,
    data JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure record_collections: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Get decodes the collection stored under key into v.
func (p *Postgres) Get(ctx context.Context, key string, v interface{}) error {
	var raw []byte
	err := p.db.GetContext(ctx, &raw, "SELECT data FROM record_collections WHERE key = $1", key)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select collection %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode collection %s: %w", key, err)
	}
	return nil
}

// Put replaces the collection stored under key.
func (p *Postgres) Put(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	query := `INSERT INTO record_collections (key, data, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := p.db.ExecContext(ctx, query, key, raw); err != nil {
		return fmt.Errorf("upsert collection %s: %w", key, err)
	}
	return nil
}
