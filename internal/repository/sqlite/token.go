package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-portal/internal/session"
)

type tokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository returns the durable token slots backing the two
// session stores.
func NewTokenRepository(db *sqlx.DB) session.TokenRepository {
	return &tokenRepository{db: db}
}

// Load returns the stored token for a role, or empty when no slot
// exists (logged out).
func (r *tokenRepository) Load(ctx context.Context, role session.Role) (string, error) {
	var token string
	query := `SELECT token FROM session_tokens WHERE role = ?`
	err := r.db.GetContext(ctx, &token, query, string(role))
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (r *tokenRepository) Save(ctx context.Context, role session.Role, token string) error {
	query := `
		INSERT INTO session_tokens (role, token, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (role) DO UPDATE
		SET token = excluded.token, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, string(role), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, role session.Role) error {
	query := `DELETE FROM session_tokens WHERE role = ?`
	if _, err := r.db.ExecContext(ctx, query, string(role)); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
