package backend

import (
	"context"

	"financas/internal/config"
	"financas/internal/store"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result is a ready store plus its readiness probe and cleanup.
type Result struct {
	Store   store.Store
	Ping    func(context.Context) error
	Cleanup CleanupFunc
}

// Close runs Cleanup when set.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

type Type string

const (
	MemoryBackend   Type = config.BackendMemory
	SQLiteBackend   Type = config.BackendSQLite
	PostgresBackend Type = config.BackendPostgres
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}

// Config selects and configures the transaction store.
type Config struct {
	Type Type

	SQLiteDBPath string
	PostgresURL  string
	// Migrate applies pending Postgres migrations before connecting. SQLite
	// always migrates on open.
	Migrate bool

	// Events are published when AMQPURL is set.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig maps the application config onto a backend config.
func FromAppConfig(c *config.Config) Config {
	return Config{
		Type:         Type(c.DataBackend),
		SQLiteDBPath: c.SQLiteDBPath,
		PostgresURL:  c.PostgresURL,
		Migrate:      true,
		AMQPURL:      c.AMQPURL,
		AMQPExchange: c.AMQPExchange,
		AMQPQueue:    c.AMQPQueue,
	}
}
