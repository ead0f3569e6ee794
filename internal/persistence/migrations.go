package persistence

import (
	"context"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/persistence/migrations"
)

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, pg *Postgres, logger *zap.Logger) error {
	if pg == nil || pg.SQLDB == nil {
		logger.Warn("no database connection available; skipping migrations")
		return nil
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, pg.SQLDB, "."); err != nil {
		return err
	}

	logger.Info("migrations applied")
	return nil
}
