package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"vibe-cart/internal/config"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return goose.DialectSQLite3, nil
	case config.DriverPostgres:
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// newMigrationProvider builds a goose provider bound to db. Each provider
// carries its own dialect and filesystem, so callers never share goose state.
func newMigrationProvider(db *sql.DB, driver string, migrationsFS fs.FS) (*goose.Provider, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}

	provider, err := goose.NewProvider(dialect, db, migrationsFS)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// RunMigrations executes all pending migrations found in migrationsFS
func RunMigrations(ctx context.Context, db *sql.DB, driver string, migrationsFS fs.FS, logger *zap.Logger) error {
	provider, err := newMigrationProvider(db, driver, migrationsFS)
	if err != nil {
		return err
	}

	logger.Info("Checking for pending migrations...", zap.String("driver", driver))

	results, err := provider.Up(ctx)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, result := range results {
		logger.Debug("Applied migration",
			zap.Int64("version", result.Source.Version),
			zap.Duration("duration", result.Duration),
		)
	}

	logger.Info("Migrations completed successfully", zap.Int("applied", len(results)))
	return nil
}

// MigrationVersion returns the current schema version
func MigrationVersion(ctx context.Context, db *sql.DB, driver string, migrationsFS fs.FS) (int64, error) {
	provider, err := newMigrationProvider(db, driver, migrationsFS)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}
