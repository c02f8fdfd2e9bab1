package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTokenRepository implements TokenRepository using pgxpool.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository backed by the given connection pool.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

// Save inserts a new refresh token record.
func (r *PostgresTokenRepository) Save(ctx context.Context, t *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (jti, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query, t.JTI, t.UserID, t.ExpiresAt).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting refresh token: %w", err)
	}

	return nil
}

// GetByJTI retrieves a refresh token record by its JTI.
func (r *PostgresTokenRepository) GetByJTI(ctx context.Context, jti uuid.UUID) (*RefreshToken, error) {
	query := `
		SELECT jti, user_id, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE jti = $1`

	var t RefreshToken
	err := r.pool.QueryRow(ctx, query, jti).Scan(&t.JTI, &t.UserID, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("querying refresh token: %w", err)
	}

	return &t, nil
}

// Revoke marks a refresh token as revoked. Revoking an already revoked token
// is a no-op.
func (r *PostgresTokenRepository) Revoke(ctx context.Context, jti uuid.UUID) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = now()
		WHERE jti = $1 AND revoked_at IS NULL`

	result, err := r.pool.Exec(ctx, query, jti)
	if err != nil {
		return fmt.Errorf("revoking refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either unknown or already revoked; callers decide via GetByJTI.
		if _, err := r.GetByJTI(ctx, jti); err != nil {
			return err
		}
	}

	return nil
}
