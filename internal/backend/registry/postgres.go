package registry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRegistry struct {
	pool *pgxpool.Pool
}

func NewPostgresRegistry(ctx context.Context, connectionString string) (*PostgresRegistry, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("postgres connection string cannot be empty")
	}
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS reserved_names (
		name TEXT PRIMARY KEY,
		reserved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresRegistry{pool: pool}, nil
}

func (p *PostgresRegistry) Reserve(ctx context.Context, name string) (bool, error) {
	tag, err := p.pool.Exec(ctx,
		"INSERT INTO reserved_names (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
	if err != nil {
		return false, fmt.Errorf("failed to reserve name %s: %w", name, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *PostgresRegistry) Close() error {
	p.pool.Close()
	return nil
}
