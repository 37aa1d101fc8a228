package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	TypeMemory   = "memory"
	TypeSQLite   = "sqlite"
	TypeRedis    = "redis"
	TypePostgres = "postgres"
)

// SupportedTypes lists every registry type accepted by New.
var SupportedTypes = []string{TypeMemory, TypeSQLite, TypeRedis, TypePostgres}

func IsSupported(registryType string) bool {
	for _, t := range SupportedTypes {
		if t == registryType {
			return true
		}
	}
	return false
}

// New creates the registry of the given type. ttl only applies to
// backends that expire claims (redis).
func New(ctx context.Context, registryType, connectionString string, ttl time.Duration) (registry Registry, err error) {
	switch registryType {
	case "", TypeMemory:
		registry = NewMemoryRegistry(ttl)
	case TypeSQLite:
		registry, err = NewSQLiteRegistry(connectionString)
	case TypeRedis:
		registry, err = NewRedisRegistry(ctx, connectionString, ttl)
	case TypePostgres:
		registry, err = NewPostgresRegistry(ctx, connectionString)
	default:
		return nil, fmt.Errorf("unsupported name registry type: %s", registryType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s name registry: %w", registryType, err)
	}

	slog.Info("name registry initialized", "type", registryType)
	return registry, nil
}
