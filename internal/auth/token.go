package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"feedgraph/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenTTL is the lifetime of an issued session token.
	TokenTTL = 24 * time.Hour

	tokenIssuer   = "feedgraph-api"
	tokenAudience = "feedgraph-client"
)

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("token signing secret is required")

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Session is the identity carried by a valid token.
type Session struct {
	UserID    uint
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and validates HS256 session tokens. It is immutable
// after construction and safe for concurrent use.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// WithClock returns a copy of s that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue signs a token for userID and email that expires TokenTTL from now.
func (s *TokenService) Issue(userID uint, email string) (string, error) {
	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature, issuer, audience and expiry. Any failure
// yields ok == false; the reason is logged and never returned.
func (s *TokenService) Validate(token string) (Session, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		middleware.Logger.Debug("token rejected", slog.Any("error", err))
		return Session{}, false
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		middleware.Logger.Debug("token rejected", slog.String("reason", "invalid subject"))
		return Session{}, false
	}

	return Session{
		UserID:    uint(userID),
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
