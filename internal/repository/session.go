package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mind0bender/phew/internal/models"
)

// PostgresSessionRepository stores opaque session tokens in PostgreSQL.
// The token value itself is the only thing the client ever holds.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository using
// the provided *sql.DB.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// CreateSession issues a fresh session for the user, valid for ttl.
// Issuing a second session for the same user is safe; older tokens simply
// age out.
func (r *PostgresSessionRepository) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*models.Session, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("CreateSession: %w", err)
	}
	return &session, nil
}

// SessionUser resolves a token to the owning user id. Expired or unknown
// tokens return ErrNotFound.
func (r *PostgresSessionRepository) SessionUser(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id FROM sessions WHERE token = $1 AND expires_at > now()
	`, token).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("SessionUser: %w", err)
	}
	return userID, nil
}

// DeleteSession drops a session token. Deleting an unknown token is a no-op.
func (r *PostgresSessionRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("DeleteSession: %w", err)
	}
	return nil
}
