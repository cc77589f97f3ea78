// Package users implements the account directory: CRUD and lookup for user
// entities, password-hash and email accessors, and role-membership
// operations. The contract is split into four narrow capability interfaces so
// an alternate backend can implement a subset; PostgresStore implements all
// of them.
package users

import (
	"context"

	"github.com/ovasiljeva/accountdir/internal/identity"
	"github.com/ovasiljeva/accountdir/internal/models"
)

// Store covers user CRUD, lookup, and user-name accessors. Mutations report
// zero-affected-row outcomes through the identity.Result; lookups return
// (nil, nil) when nothing matches.
type Store interface {
	Create(ctx context.Context, user *models.User) (identity.Result, error)
	Update(ctx context.Context, user *models.User) (identity.Result, error)
	Delete(ctx context.Context, user *models.User) (identity.Result, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByNormalizedUserName(ctx context.Context, normalizedUserName string) (*models.User, error)

	GetUserID(ctx context.Context, user *models.User) (string, error)
	GetUserName(ctx context.Context, user *models.User) (string, error)
	GetNormalizedUserName(ctx context.Context, user *models.User) (string, error)
	SetUserName(ctx context.Context, user *models.User, userName string) error
	SetNormalizedUserName(ctx context.Context, user *models.User, normalizedName string) error
}

// EmailStore covers email lookup and accessors.
type EmailStore interface {
	FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error)

	GetEmail(ctx context.Context, user *models.User) (string, error)
	GetEmailConfirmed(ctx context.Context, user *models.User) (bool, error)
	GetNormalizedEmail(ctx context.Context, user *models.User) (string, error)
	SetEmail(ctx context.Context, user *models.User, email string) error
	SetEmailConfirmed(ctx context.Context, user *models.User, confirmed bool) error
	SetNormalizedEmail(ctx context.Context, user *models.User, normalizedEmail string) error
}

// PasswordStore covers the opaque password-hash accessors. The stores never
// hash anything; hashes arrive pre-computed from the framework.
type PasswordStore interface {
	GetPasswordHash(ctx context.Context, user *models.User) (string, error)
	SetPasswordHash(ctx context.Context, user *models.User, passwordHash string) error
	HasPassword(ctx context.Context, user *models.User) (bool, error)
}

// RoleMembershipStore covers the user/role join operations.
type RoleMembershipStore interface {
	AddToRole(ctx context.Context, user *models.User, roleName string) error
	RemoveFromRole(ctx context.Context, user *models.User, roleName string) error
	IsInRole(ctx context.Context, user *models.User, roleName string) (bool, error)
	IsInRoleNamed(ctx context.Context, user *models.User, roleName string) (bool, error)
	GetRoles(ctx context.Context, user *models.User) ([]string, error)
	GetUsersInRole(ctx context.Context, roleName string) ([]*models.User, error)
}

// Directory combines the four capability contracts implemented by the
// Postgres-backed account directory.
type Directory interface {
	Store
	EmailStore
	PasswordStore
	RoleMembershipStore
}
