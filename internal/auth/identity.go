package auth

import (
	"context"
	"strings"
)

// Identity is who is asking. The zero value is anonymous. Fields are
// unexported so an Identity cannot be altered once built.
type Identity struct {
	userID uint
	email  string
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns an identity for userID.
func Authenticated(userID uint, email string) Identity {
	return Identity{userID: userID, email: email}
}

func (i Identity) IsAuthenticated() bool { return i.userID != 0 }
func (i Identity) UserID() uint          { return i.userID }
func (i Identity) Email() string         { return i.email }

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	Validate(token string) (Session, bool)
}

// BearerToken extracts the token from a header of the exact form "Bearer <token>".
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// IdentityFromHeader derives the request identity from a raw Authorization
// header. Missing, malformed or invalid credentials all yield Anonymous.
func IdentityFromHeader(header string, tokens TokenValidator) Identity {
	token, ok := BearerToken(header)
	if !ok || tokens == nil {
		return Anonymous()
	}
	session, ok := tokens.Validate(token)
	if !ok {
		return Anonymous()
	}
	return Authenticated(session.UserID, session.Email)
}

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Anonymous()
}
