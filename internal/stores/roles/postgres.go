package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ovasiljeva/accountdir/internal/common"
	"github.com/ovasiljeva/accountdir/internal/dbx"
	"github.com/ovasiljeva/accountdir/internal/identity"
	"github.com/ovasiljeva/accountdir/internal/models"
)

// PostgresStore is the PostgreSQL-backed role directory.
type PostgresStore struct {
	db dbx.DBTX
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore returns a role store bound to the provided DBTX.
func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// guard performs the shared precondition checks: an already-cancelled context
// fails immediately with no side effect, an absent role fails with
// common.ErrorInvalidArgument.
func guard(ctx context.Context, role *models.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if role == nil {
		return common.ErrorInvalidArgument
	}
	return nil
}

// Create inserts the role, generating an id when the caller supplied none.
// A duplicate key surfaces as a zero-row insert and therefore as a failed
// result, not as a driver error.
func (s *PostgresStore) Create(ctx context.Context, role *models.Role) (identity.Result, error) {
	if err := guard(ctx, role); err != nil {
		return identity.Result{}, err
	}

	if role.ID == "" {
		role.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO roles (id, name)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 `

	res, err := s.db.ExecContext(ctx, query, role.ID, role.Name)
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return identity.Failed(identity.Error{Code: "120", Description: "cannot create role"}), nil
	}

	return identity.Success(), nil
}

// Delete removes the role row by id.
func (s *PostgresStore) Delete(ctx context.Context, role *models.Role) (identity.Result, error) {
	if err := guard(ctx, role); err != nil {
		return identity.Result{}, err
	}

	query := `DELETE FROM roles WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, role.ID)
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return identity.Failed(identity.Error{Code: "120", Description: "cannot update role"}), nil
	}

	return identity.Success(), nil
}

// Update rewrites the name column by id.
func (s *PostgresStore) Update(ctx context.Context, role *models.Role) (identity.Result, error) {
	if err := guard(ctx, role); err != nil {
		return identity.Result{}, err
	}

	query :=
		`UPDATE roles SET name = $2
		 WHERE id = $1
		 `

	res, err := s.db.ExecContext(ctx, query, role.ID, role.Name)
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return identity.Failed(identity.Error{Code: "120", Description: "cannot update role"}), nil
	}

	return identity.Success(), nil
}

// FindByID returns the role with the given id, or (nil, nil) when absent.
func (s *PostgresStore) FindByID(ctx context.Context, roleID string) (*models.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `SELECT id, name FROM roles WHERE id = $1`

	role := &models.Role{}
	err := s.db.QueryRowContext(ctx, query, roleID).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return role, nil
}

// FindByName upper-cases the input and compares it against the upper-cased
// name column, so any casing of the stored display name matches.
func (s *PostgresStore) FindByName(ctx context.Context, normalizedName string) (*models.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `SELECT id, name FROM roles WHERE UPPER(name) = $1`

	role := &models.Role{}
	err := s.db.QueryRowContext(ctx, query, strings.ToUpper(normalizedName)).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return role, nil
}

// GetRoleID returns the role id.
func (s *PostgresStore) GetRoleID(ctx context.Context, role *models.Role) (string, error) {
	if err := guard(ctx, role); err != nil {
		return "", err
	}
	return role.ID, nil
}

// GetRoleName returns the display name.
func (s *PostgresStore) GetRoleName(ctx context.Context, role *models.Role) (string, error) {
	if err := guard(ctx, role); err != nil {
		return "", err
	}
	return role.Name, nil
}

// GetNormalizedRoleName returns the upper-cased display name, not the
// NormalizedName field.
func (s *PostgresStore) GetNormalizedRoleName(ctx context.Context, role *models.Role) (string, error) {
	if err := guard(ctx, role); err != nil {
		return "", err
	}
	return strings.ToUpper(role.Name), nil
}

// SetRoleName mutates the in-memory entity only; persisting requires Update.
func (s *PostgresStore) SetRoleName(ctx context.Context, role *models.Role, name string) error {
	if err := guard(ctx, role); err != nil {
		return err
	}
	role.Name = name
	return nil
}

// SetNormalizedRoleName mutates the in-memory entity only.
func (s *PostgresStore) SetNormalizedRoleName(ctx context.Context, role *models.Role, normalizedName string) error {
	if err := guard(ctx, role); err != nil {
		return err
	}
	role.NormalizedName = normalizedName
	return nil
}
