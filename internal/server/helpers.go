package server

import (
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"feedgraph/internal/graph"
	"feedgraph/internal/middleware"
	"feedgraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label:
// "id" -> "ID", "postId" -> "post ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}

// parseBody decodes the JSON body into dest. On failure it writes a 400 and
// returns errResponseWritten.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// dispatch runs op for the request identity and writes either the result
// with status or the mapped error envelope. Internal causes are logged, never
// returned.
func (s *Server) dispatch(c *fiber.Ctx, op graph.Operation, status int) error {
	result, err := s.dispatcher.Dispatch(c.UserContext(), identityFrom(c), op)
	if err != nil {
		if models.IsCode(err, models.CodeInternal) {
			middleware.Logger.ErrorContext(c.UserContext(), "operation failed",
				slog.String("operation", op.Field()),
				slog.Any("error", err),
			)
		}
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.Status(status).JSON(result)
}
