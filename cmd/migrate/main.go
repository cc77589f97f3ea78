// Command migrate applies the directory schema migrations to the configured
// PostgreSQL database.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ovasiljeva/accountdir/internal/config"
	"github.com/ovasiljeva/accountdir/internal/logging"
	"github.com/ovasiljeva/accountdir/internal/stores/storemanager"
)

func main() {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "db open error", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	m, err := storemanager.NewPostgresStoreManager(db)
	if err != nil {
		logger.Error(ctx, "store manager init error", "error", err)
		os.Exit(1)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		logger.Error(ctx, "migration error", "error", err)
		os.Exit(1)
	}

	logger.Info(ctx, "schema is up to date")
}
