// Package roles implements the role directory: CRUD and lookup for role
// entities plus the pure accessors the authentication framework calls.
package roles

import (
	"context"

	"github.com/ovasiljeva/accountdir/internal/identity"
	"github.com/ovasiljeva/accountdir/internal/models"
)

// Store is the role-directory contract. Mutations report zero-affected-row
// outcomes through the identity.Result; storage-engine failures come back on
// the error channel unmodified. Lookups return (nil, nil) when nothing
// matches.
type Store interface {
	Create(ctx context.Context, role *models.Role) (identity.Result, error)
	Update(ctx context.Context, role *models.Role) (identity.Result, error)
	Delete(ctx context.Context, role *models.Role) (identity.Result, error)
	FindByID(ctx context.Context, roleID string) (*models.Role, error)
	FindByName(ctx context.Context, normalizedName string) (*models.Role, error)

	GetRoleID(ctx context.Context, role *models.Role) (string, error)
	GetRoleName(ctx context.Context, role *models.Role) (string, error)
	GetNormalizedRoleName(ctx context.Context, role *models.Role) (string, error)
	SetRoleName(ctx context.Context, role *models.Role, name string) error
	SetNormalizedRoleName(ctx context.Context, role *models.Role, normalizedName string) error
}
