package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mind0bender/phew/internal/models"
)

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `user_id, name, email, password, salt, role, is_verified, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Salt, &u.Role, &u.IsVerified, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user with the given hashed credentials and
// returns the stored record. A taken name or email surfaces as ErrConflict.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, name, email, hash, salt string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (user_id, name, email, password, salt)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		uuid.NewString(), name, email, hash, salt,
	)
	user, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	return user, err
}

// UserByName fetches a user by login name.
func (r *PostgresUserRepository) UserByName(ctx context.Context, name string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE name = $1
	`, name)
	return scanUser(row)
}

// UserByID fetches a user by id.
func (r *PostgresUserRepository) UserByID(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE user_id = $1
	`, id)
	return scanUser(row)
}

// NameOrEmailTaken reports which of name or email already belongs to a
// user. Both can be true at once.
func (r *PostgresUserRepository) NameOrEmailTaken(ctx context.Context, name, email string) (nameTaken, emailTaken bool, err error) {
	err = r.DB.QueryRowContext(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM users WHERE name = $1),
			EXISTS(SELECT 1 FROM users WHERE email = $2)
	`, name, email).Scan(&nameTaken, &emailTaken)
	if err != nil {
		return false, false, fmt.Errorf("NameOrEmailTaken: %w", err)
	}
	return nameTaken, emailTaken, nil
}

// SetVerified flips the verification flag for the given user.
func (r *PostgresUserRepository) SetVerified(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE users SET is_verified = TRUE WHERE user_id = $1
		RETURNING `+userColumns,
		id,
	)
	return scanUser(row)
}

// DeleteUser removes a user row. The caller must have deleted the user's
// namespace first; folders and phews do not cascade.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
