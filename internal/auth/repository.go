package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTokenNotFound is returned when a refresh token record is not found.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenRepository provides operations on the refresh_tokens table.
type TokenRepository interface {
	Save(ctx context.Context, token *RefreshToken) error
	GetByJTI(ctx context.Context, jti uuid.UUID) (*RefreshToken, error)
	Revoke(ctx context.Context, jti uuid.UUID) error
}
