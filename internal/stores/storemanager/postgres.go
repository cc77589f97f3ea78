// Package storemanager provides a concrete StoreManager for PostgreSQL,
// wiring together the store constructors and database migrations (via goose).
package storemanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ovasiljeva/accountdir/internal/dbx"
	"github.com/ovasiljeva/accountdir/internal/migrations"
	"github.com/ovasiljeva/accountdir/internal/stores/roles"
	"github.com/ovasiljeva/accountdir/internal/stores/users"
)

// PostgresStoreManager vends PostgreSQL-backed directory stores.
type PostgresStoreManager struct{}

// Roles returns a roles.Store bound to the provided DBTX.
func (m *PostgresStoreManager) Roles(db dbx.DBTX) roles.Store {
	return roles.NewPostgresStore(db)
}

// Users returns a users.Directory bound to the provided DBTX.
func (m *PostgresStoreManager) Users(db dbx.DBTX) users.Directory {
	return users.NewPostgresStore(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresStoreManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresStoreManager constructs a PostgreSQL-backed StoreManager.
func NewPostgresStoreManager(db *sql.DB) (StoreManager, error) {
	return &PostgresStoreManager{}, nil
}
