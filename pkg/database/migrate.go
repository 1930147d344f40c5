package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/duccv/auth-service/config"
	"github.com/duccv/auth-service/migrations"
)

// RunMigrations applies the embedded schema migrations against the write
// host. It opens its own short-lived database/sql connection because goose
// does not speak pgxpool.
func RunMigrations(ctx context.Context, cfg *config.PostgresConfig) error {
	p := NewPostgresDB(cfg)
	host, port := p.writeHostPort()

	db, err := sql.Open("pgx", p.BuildDSN(host, port))
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	zap.L().Info("Database migrations applied")
	return nil
}
