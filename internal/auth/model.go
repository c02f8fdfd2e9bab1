package auth

import (
	"time"

	"github.com/google/uuid"
)

// Identity is stored in the request context after authentication.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// TokenPair holds an access token and its companion refresh token.
type TokenPair struct {
	Access  string
	Refresh string
}

// RefreshToken represents a row in the refresh_tokens table. A token is
// usable until it expires or is revoked by logout.
type RefreshToken struct {
	JTI       uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
