package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/user"
)

// ErrInvalidToken is returned when a token fails to parse, is expired,
// carries the wrong type, or has been revoked.
var ErrInvalidToken = errors.New("invalid or expired token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type claims struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Service issues and verifies JWT access/refresh token pairs.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	tokens     TokenRepository
}

// NewService creates a new auth Service.
func NewService(secret []byte, accessTTL, refreshTTL time.Duration, tokens TokenRepository) *Service {
	return &Service{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		tokens:     tokens,
	}
}

// IssueTokens creates a signed access/refresh pair for the given user and
// persists the refresh token's JTI so logout can revoke it.
func (s *Service) IssueTokens(ctx context.Context, u *user.User) (*TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.sign(u, tokenTypeAccess, uuid.New(), now, now.Add(s.accessTTL))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	jti := uuid.New()
	expiresAt := now.Add(s.refreshTTL)
	refresh, err := s.sign(u, tokenTypeRefresh, jti, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	if err := s.tokens.Save(ctx, &RefreshToken{
		JTI:       jti,
		UserID:    u.ID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseAccess verifies an access token and returns the caller's Identity.
func (s *Service) ParseAccess(raw string) (*Identity, error) {
	c, err := s.parse(raw, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: userID, Username: c.Username}, nil
}

// RevokeRefresh invalidates a refresh token on logout. A token that is
// unknown, expired, or already revoked yields ErrInvalidToken.
func (s *Service) RevokeRefresh(ctx context.Context, raw string) error {
	c, err := s.parse(raw, tokenTypeRefresh)
	if err != nil {
		return err
	}

	jti, err := uuid.Parse(c.ID)
	if err != nil {
		return ErrInvalidToken
	}

	stored, err := s.tokens.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if stored.RevokedAt != nil || time.Now().UTC().After(stored.ExpiresAt) {
		return ErrInvalidToken
	}

	return s.tokens.Revoke(ctx, jti)
}

func (s *Service) sign(u *user.User, tokenType string, jti uuid.UUID, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username:  u.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	return token.SignedString(s.secret)
}

func (s *Service) parse(raw, wantType string) (*claims, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if c.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return &c, nil
}
