package server

import (
	"time"

	"feedgraph/internal/graph"
	"feedgraph/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// operationLimit is a per-caller budget for one operation. The REST route
// and the GraphQL root field of an operation draw from the same bucket.
type operationLimit struct {
	resource string
	limit    int
	window   time.Duration
}

var operationLimits = map[string]operationLimit{
	graph.CreateUserOp{}.Field():    {resource: "signup", limit: 3, window: 10 * time.Minute},
	graph.LoginOp{}.Field():         {resource: "login", limit: 10, window: 5 * time.Minute},
	graph.CreatePostOp{}.Field():    {resource: "create_post", limit: 10, window: time.Minute},
	graph.CreateCommentOp{}.Field(): {resource: "create_comment", limit: 20, window: time.Minute},
}

// operationRateLimit guards the REST route of op.
func (s *Server) operationRateLimit(op graph.Operation) fiber.Handler {
	l := operationLimits[op.Field()]
	return middleware.RateLimit(s.redis, l.limit, l.window, l.resource)
}

// allowGraphQLOperations charges each limited root field of req, once per
// occurrence, and reports whether all of them fit their budget. A store
// failure lets the request through, as RateLimit does.
func (s *Server) allowGraphQLOperations(c *fiber.Ctx, req graph.Request) bool {
	id := middleware.RateLimitID(c)
	for _, field := range graph.RootFields(req) {
		l, ok := operationLimits[field]
		if !ok {
			continue
		}
		allowed, err := middleware.CheckRateLimit(c.UserContext(), s.redis, l.resource, id, l.limit, l.window)
		if err != nil {
			continue
		}
		if !allowed {
			return false
		}
	}
	return true
}
