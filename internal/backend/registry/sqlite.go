package registry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteRegistry struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteRegistry(connectionString string) (*SQLiteRegistry, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("sqlite connection string cannot be empty")
	}
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	registry := &SQLiteRegistry{
		db:               db,
		connectionString: connectionString,
	}
	if err := registry.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return registry, nil
}

func (s *SQLiteRegistry) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS reserved_names (
		name TEXT PRIMARY KEY,
		reserved_at INTEGER NOT NULL
	)`)
	return err
}

func (s *SQLiteRegistry) Reserve(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO reserved_names (name, reserved_at) VALUES (?, ?)",
		name, time.Now().UnixNano())
	if err != nil {
		return false, fmt.Errorf("failed to reserve name %s: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read reservation result for %s: %w", name, err)
	}
	return affected == 1, nil
}

func (s *SQLiteRegistry) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
