package server

import (
	"feedgraph/internal/graph"

	"github.com/gofiber/fiber/v2"
)

// GraphQL handles POST /graphql. Documents rejected before execution get a
// 400 and rate-limited operations a 429; resolver failures are reported in
// the errors array with a 200.
func (s *Server) GraphQL(c *fiber.Ctx) error {
	req, err := graph.DecodeRequest(c.Body())
	if err != nil {
		resp := graph.ErrorResponse("Invalid request body", graph.CodeValidationFailed)
		return c.Status(resp.StatusCode()).JSON(resp)
	}

	if !s.allowGraphQLOperations(c, req) {
		resp := graph.ErrorResponse("rate limit exceeded", graph.CodeRateLimited)
		return c.Status(resp.StatusCode()).JSON(resp)
	}

	resp := s.executor.Execute(c.UserContext(), identityFrom(c), req)
	return c.Status(resp.StatusCode()).JSON(resp)
}

// GetSchema handles GET /api/schema.graphql
// @Summary GraphQL schema
// @Description Returns the schema definition language served at /graphql
// @Tags graphql
// @Produce plain
// @Success 200 {string} string
// @Router /schema.graphql [get]
func (s *Server) GetSchema(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/graphql; charset=utf-8")
	return c.SendString(graph.SchemaSDL())
}
