package backend

import (
	"context"
	"errors"
	"fmt"

	"financas/internal/amqp"
	"financas/internal/log"
	"financas/internal/services"
	"financas/internal/storage"
	"financas/internal/storage/postgres"
	"financas/internal/store/memory"
)

type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch config.Type {
	case MemoryBackend:
		res = f.createMemoryBackend()
	case SQLiteBackend:
		res, err = f.createSQLiteBackend(config)
	case PostgresBackend:
		res, err = f.createPostgresBackend(ctx, config)
	default:
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}
	return f.withEvents(res, config), nil
}

func (f *DefaultFactory) createMemoryBackend() *Result {
	f.logger.Info("Initialized memory backend")
	return &Result{
		Store: memory.New(),
		Ping:  func(context.Context) error { return nil },
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	// The SQLite repository migrates on open.
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &Result{Store: repo, Ping: repo.Ping, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createPostgresBackend(ctx context.Context, config Config) (*Result, error) {
	if config.Migrate {
		if err := postgres.RunMigrations(config.PostgresURL); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
	}
	pool, err := postgres.NewPool(ctx, config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres pool: %w", err)
	}
	repo := postgres.NewRepository(pool)

	f.logger.Info("Initialized Postgres backend")
	return &Result{Store: repo, Ping: repo.Ping, Cleanup: repo.Close}, nil
}

// withEvents wraps the store so writes publish events. A broker that cannot
// be reached at startup disables events instead of failing.
func (f *DefaultFactory) withEvents(res *Result, config Config) *Result {
	if config.AMQPURL == "" {
		return res
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without sync", log.FieldError, err)
		return res
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	cleanup := res.Cleanup
	return &Result{
		Store: services.NewTransactionService(res.Store, client, f.logger),
		Ping:  res.Ping,
		Cleanup: func() error {
			var errs []error
			errs = append(errs, client.Close())
			if cleanup != nil {
				errs = append(errs, cleanup())
			}
			return errors.Join(errs...)
		},
	}
}
