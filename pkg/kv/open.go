package kv

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and parameterizes a Store backend.
type Options struct {
	Driver      string
	FilePath    string
	PostgresDSN string
	RedisURL    string
}

// Open builds the configured backend and verifies it is reachable.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemStore(), nil

	case DriverFile, "":
		s := NewFileStore(opts.FilePath)
		if err := s.Ping(ctx); err != nil {
			return nil, err
		}
		return s, nil

	case DriverPostgres:
		db, err := sql.Open("pgx", opts.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s := NewPostgresStore(db)
		if err := s.Ping(ctx); err != nil {
			return nil, err
		}
		return s, nil

	case DriverRedis:
		return NewRedisStore(ctx, opts.RedisURL)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
