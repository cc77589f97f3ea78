package users

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

// userColumns is the column list shared by every user SELECT, in scanUser
// order.
const userColumns = `id, user_name, normalized_user_name, email, normalized_email, email_confirmed,
		password_hash, security_stamp, concurrency_stamp, phone_number, phone_number_confirmed,
		two_factor_enabled, lockout_end, lockout_enabled, access_failed_count`

// PostgresStore is the PostgreSQL-backed account directory.
type PostgresStore struct {
	db dbx.DBTX
}

var _ Directory = (*PostgresStore)(nil)

// NewPostgresStore returns an account store bound to the provided DBTX.
func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// guard performs the shared precondition checks: an already-cancelled context
// fails immediately with no side effect, an absent user fails with
// common.ErrorInvalidArgument.
func guard(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return common.ErrorInvalidArgument
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var email, normalizedEmail, passwordHash, securityStamp, concurrencyStamp, phoneNumber sql.NullString
	var lockoutEnd sql.NullTime

	err := row.Scan(
		&u.ID, &u.UserName, &u.NormalizedUserName, &email, &normalizedEmail, &u.EmailConfirmed,
		&passwordHash, &securityStamp, &concurrencyStamp, &phoneNumber, &u.PhoneNumberConfirmed,
		&u.TwoFactorEnabled, &lockoutEnd, &u.LockoutEnabled, &u.AccessFailedCount,
	)
	if err != nil {
		return nil, err
	}

	u.Email = email.String
	u.NormalizedEmail = normalizedEmail.String
	u.PasswordHash = passwordHash.String
	u.SecurityStamp = securityStamp.String
	u.ConcurrencyStamp = concurrencyStamp.String
	u.PhoneNumber = phoneNumber.String
	if lockoutEnd.Valid {
		t := lockoutEnd.Time
		u.LockoutEnd = &t
	}

	return &u, nil
}

// Create inserts the full column set. The normalized email is derived here as
// the upper-cased email (NULL when the email is blank); the normalized user
// name is taken as supplied, since the framework sets it before calling
// Create. A duplicate key surfaces as a zero-row insert and therefore as a
// failed result.
func (s *PostgresStore) Create(ctx context.Context, user *models.User) (identity.Result, error) {
	if err := guard(ctx, user); err != nil {
		return identity.Result{}, err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	var normalizedEmail sql.NullString
	if user.Email != "" {
		normalizedEmail = sql.NullString{String: strings.ToUpper(user.Email), Valid: true}
	}

	query :=
		`INSERT INTO users (` + userColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT DO NOTHING
		 `

	res, err := s.db.ExecContext(ctx, query,
		user.ID, user.UserName, user.NormalizedUserName, user.Email, normalizedEmail, user.EmailConfirmed,
		user.PasswordHash, user.SecurityStamp, user.ConcurrencyStamp, user.PhoneNumber, user.PhoneNumberConfirmed,
		user.TwoFactorEnabled, user.LockoutEnd, user.LockoutEnabled, user.AccessFailedCount,
	)
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return identity.Failed(identity.Error{Code: "120", Description: "cannot create user"}), nil
	}

	return identity.Success(), nil
}

// Update persists the credential, security and lockout columns only. The name
// and email columns are written exclusively at creation time.
func (s *PostgresStore) Update(ctx context.Context, user *models.User) (identity.Result, error) {
	if err := guard(ctx, user); err != nil {
		return identity.Result{}, err
	}

	query :=
		`UPDATE users SET
		    password_hash = $2,
		    security_stamp = $3,
		    concurrency_stamp = $4,
		    two_factor_enabled = $5,
		    lockout_end = $6,
		    lockout_enabled = $7,
		    access_failed_count = $8
		 WHERE id = $1
		 `

	res, err := s.db.ExecContext(ctx, query,
		user.ID, user.PasswordHash, user.SecurityStamp, user.ConcurrencyStamp,
		user.TwoFactorEnabled, user.LockoutEnd, user.LockoutEnabled, user.AccessFailedCount,
	)
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return identity.Failed(identity.Error{Code: "120", Description: "cannot update user"}), nil
	}

	return identity.Success(), nil
}

// Delete removes the user row by id.
func (s *PostgresStore) Delete(ctx context.Context, user *models.User) (identity.Result, error) {
	if err := guard(ctx, user); err != nil {
		return identity.Result{}, err
	}

	query := `DELETE FROM users WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, user.ID)
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return identity.Result{}, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return identity.Failed(identity.Error{Code: "120", Description: "cannot update user"}), nil
	}

	return identity.Success(), nil
}

// FindByID returns the user with the given id, or (nil, nil) when absent.
func (s *PostgresStore) FindByID(ctx context.Context, userID string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// FindByNormalizedUserName compares the input against the normalized column
// as supplied; normalization is the caller's responsibility here.
func (s *PostgresStore) FindByNormalizedUserName(ctx context.Context, normalizedUserName string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE normalized_user_name = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, normalizedUserName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// FindByNormalizedEmail upper-cases the input before the comparison, so any
// casing of the same address matches.
func (s *PostgresStore) FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE normalized_email = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, strings.ToUpper(normalizedEmail)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// AddToRole joins the user to the first role whose display name matches
// roleName. When no such role exists the subquery yields nothing to insert
// and the call still succeeds.
func (s *PostgresStore) AddToRole(ctx context.Context, user *models.User, roleName string) error {
	if err := guard(ctx, user); err != nil {
		return err
	}

	query :=
		`INSERT INTO user_roles (user_id, role_id)
		 SELECT $1, id FROM roles WHERE name = $2 LIMIT 1
		 `

	if _, err := s.db.ExecContext(ctx, query, user.ID, roleName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// RemoveFromRole deletes the user's membership rows whose role id resolves
// from roleName.
func (s *PostgresStore) RemoveFromRole(ctx context.Context, user *models.User, roleName string) error {
	if err := guard(ctx, user); err != nil {
		return err
	}

	query :=
		`DELETE FROM user_roles
		 WHERE user_id = $1
		 AND role_id IN (SELECT id FROM roles WHERE name = $2)
		 `

	if _, err := s.db.ExecContext(ctx, query, user.ID, roleName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// IsInRole reports whether the user has any membership row at all. The
// roleName argument does not participate in the filter; IsInRoleNamed applies
// it.
func (s *PostgresStore) IsInRole(ctx context.Context, user *models.User, roleName string) (bool, error) {
	if err := guard(ctx, user); err != nil {
		return false, err
	}

	query :=
		`SELECT COUNT(*) FROM user_roles
		 INNER JOIN roles ON roles.id = user_roles.role_id
		 WHERE user_roles.user_id = $1
		 `

	var count int
	if err := s.db.QueryRowContext(ctx, query, user.ID).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return count > 0, nil
}

// IsInRoleNamed reports whether the user is a member of the named role.
func (s *PostgresStore) IsInRoleNamed(ctx context.Context, user *models.User, roleName string) (bool, error) {
	if err := guard(ctx, user); err != nil {
		return false, err
	}

	query :=
		`SELECT COUNT(*) FROM user_roles
		 INNER JOIN roles ON roles.id = user_roles.role_id
		 WHERE user_roles.user_id = $1 AND roles.name = $2
		 `

	var count int
	if err := s.db.QueryRowContext(ctx, query, user.ID, roleName).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return count > 0, nil
}

// GetRoles returns the names of the roles the user belongs to. When the user
// has no memberships the result is a nil slice, not an empty one; callers
// must treat absent and empty identically.
func (s *PostgresStore) GetRoles(ctx context.Context, user *models.User) ([]string, error) {
	if err := guard(ctx, user); err != nil {
		return nil, err
	}

	query :=
		`SELECT roles.name FROM users
		 INNER JOIN user_roles ON users.id = user_roles.user_id
		 INNER JOIN roles ON roles.id = user_roles.role_id
		 WHERE users.id = $1
		 `

	rows, err := s.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return names, nil
}

// GetUsersInRole returns all users joined to the named role, nil when none.
func (s *PostgresStore) GetUsersInRole(ctx context.Context, roleName string) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query :=
		`SELECT users.id, users.user_name, users.normalized_user_name, users.email, users.normalized_email, users.email_confirmed,
		    users.password_hash, users.security_stamp, users.concurrency_stamp, users.phone_number, users.phone_number_confirmed,
		    users.two_factor_enabled, users.lockout_end, users.lockout_enabled, users.access_failed_count
		 FROM users
		 INNER JOIN user_roles ON users.id = user_roles.user_id
		 INNER JOIN roles ON roles.id = user_roles.role_id
		 WHERE roles.name = $1
		 `

	rows, err := s.db.QueryContext(ctx, query, roleName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// GetUserID returns the user id.
func (s *PostgresStore) GetUserID(ctx context.Context, user *models.User) (string, error) {
	if err := guard(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// GetUserName returns the display name.
func (s *PostgresStore) GetUserName(ctx context.Context, user *models.User) (string, error) {
	if err := guard(ctx, user); err != nil {
		return "", err
	}
	return user.UserName, nil
}

// GetNormalizedUserName returns the upper-cased display name, not the
// NormalizedUserName field.
func (s *PostgresStore) GetNormalizedUserName(ctx context.Context, user *models.User) (string, error) {
	if err := guard(ctx, user); err != nil {
		return "", err
	}
	return strings.ToUpper(user.UserName), nil
}

// SetUserName mutates the in-memory entity only; persisting requires Update.
func (s *PostgresStore) SetUserName(ctx context.Context, user *models.User, userName string) error {
	if err := guard(ctx, user); err != nil {
		return err
	}
	user.UserName = userName
	return nil
}

// SetNormalizedUserName mutates the in-memory entity only.
func (s *PostgresStore) SetNormalizedUserName(ctx context.Context, user *models.User, normalizedName string) error {
	if err := guard(ctx, user); err != nil {
		return err
	}
	user.NormalizedUserName = normalizedName
	return nil
}

// GetEmail returns the contact address.
func (s *PostgresStore) GetEmail(ctx context.Context, user *models.User) (string, error) {
	if err := guard(ctx, user); err != nil {
		return "", err
	}
	return user.Email, nil
}

// GetEmailConfirmed reports the confirmation flag.
func (s *PostgresStore) GetEmailConfirmed(ctx context.Context, user *models.User) (bool, error) {
	if err := guard(ctx, user); err != nil {
		return false, err
	}
	return user.EmailConfirmed, nil
}

// GetNormalizedEmail returns the upper-cased email, not the NormalizedEmail
// field.
func (s *PostgresStore) GetNormalizedEmail(ctx context.Context, user *models.User) (string, error) {
	if err := guard(ctx, user); err != nil {
		return "", err
	}
	return strings.ToUpper(user.Email), nil
}

// SetEmail mutates the in-memory entity only.
func (s *PostgresStore) SetEmail(ctx context.Context, user *models.User, email string) error {
	if err := guard(ctx, user); err != nil {
		return err
	}
	user.Email = email
	return nil
}

// SetEmailConfirmed mutates the in-memory entity only.
func (s *PostgresStore) SetEmailConfirmed(ctx context.Context, user *models.User, confirmed bool) error {
	if err := guard(ctx, user); err != nil {
		return err
	}
	user.EmailConfirmed = confirmed
	return nil
}

// SetNormalizedEmail mutates the in-memory entity only.
func (s *PostgresStore) SetNormalizedEmail(ctx context.Context, user *models.User, normalizedEmail string) error {
	if err := guard(ctx, user); err != nil {
		return err
	}
	user.NormalizedEmail = normalizedEmail
	return nil
}

// GetPasswordHash returns the stored hash string as-is.
func (s *PostgresStore) GetPasswordHash(ctx context.Context, user *models.User) (string, error) {
	if err := guard(ctx, user); err != nil {
		return "", err
	}
	return user.PasswordHash, nil
}

// SetPasswordHash mutates the in-memory entity only.
func (s *PostgresStore) SetPasswordHash(ctx context.Context, user *models.User, passwordHash string) error {
	if err := guard(ctx, user); err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return nil
}

// HasPassword reports whether a non-blank password hash is set. It never
// touches storage.
func (s *PostgresStore) HasPassword(ctx context.Context, user *models.User) (bool, error) {
	if err := guard(ctx, user); err != nil {
		return false, err
	}
	return strings.TrimSpace(user.PasswordHash) != "", nil
}
