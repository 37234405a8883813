package server

import (
	"context"

	"feedgraph/internal/auth"
	"feedgraph/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

const identityLocal = "identity"

// Authenticate resolves the request identity from the Authorization header.
// It never rejects a request: missing or invalid credentials are anonymous,
// and each operation decides whether it needs a user.
func (s *Server) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := auth.IdentityFromHeader(c.Get(fiber.HeaderAuthorization), s.tokens)
		c.Locals(identityLocal, id)

		ctx := auth.WithIdentity(c.UserContext(), id)
		if id.IsAuthenticated() {
			c.Locals("userID", id.UserID())
			// Sync to UserContext for logging and downstream services
			ctx = context.WithValue(ctx, middleware.UserIDKey, id.UserID())
		}
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// identityFrom returns the identity set by Authenticate, or Anonymous.
func identityFrom(c *fiber.Ctx) auth.Identity {
	if id, ok := c.Locals(identityLocal).(auth.Identity); ok {
		return id
	}
	return auth.Anonymous()
}
