package storemanager

import (
	"context"
	"database/sql"

	"github.com/ovasiljeva/accountdir/internal/dbx"
	"github.com/ovasiljeva/accountdir/internal/stores/roles"
	"github.com/ovasiljeva/accountdir/internal/stores/users"
)

// StoreManager vends directory stores bound to a DBTX and exposes a schema
// migration hook.
type StoreManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Roles(db dbx.DBTX) roles.Store
	Users(db dbx.DBTX) users.Directory
}
