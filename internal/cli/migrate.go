package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"financas/internal/config"
	"financas/internal/log"
	"financas/internal/storage"
	"financas/internal/storage/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadAndValidateConfig()
			if err != nil {
				return err
			}
			logger := SetupLogger(cfg.LogLevel).WithComponent(log.ComponentStorage)
			if err := runMigrate(cfg); err != nil {
				return err
			}
			logger.Info("Migrations applied", log.FieldBackend, cfg.DataBackend, log.FieldOperation, log.OpMigrate)
			return nil
		},
	}
}

func runMigrate(cfg *config.Config) error {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
		return repo.Close()
	case config.BackendPostgres:
		return postgres.RunMigrations(cfg.PostgresURL)
	default:
		return nil
	}
}
