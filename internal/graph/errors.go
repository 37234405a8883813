package graph

import (
	"context"
	"fmt"
	"log/slog"

	"feedgraph/internal/middleware"
	"feedgraph/internal/models"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
)

// CodeValidationFailed marks documents rejected before any resolver ran.
const CodeValidationFailed = "GRAPHQL_VALIDATION_FAILED"

// CodeRateLimited marks requests refused by a per-operation rate limit.
const CodeRateLimited = "RATE_LIMITED"

// NewError builds a single error carrying code in its extensions.
func NewError(message, code string) *gqlerrors.QueryError {
	return &gqlerrors.QueryError{
		Message:    message,
		Extensions: map[string]interface{}{"code": code},
	}
}

// normalizeErrors rewrites the executor's errors in place. Resolver failures
// carry their AppError message and code, with internal causes logged and
// hidden. Everything else is a rejected document.
func normalizeErrors(ctx context.Context, errs []*gqlerrors.QueryError) {
	for _, e := range errs {
		if e.ResolverError == nil {
			e.Extensions = map[string]interface{}{"code": CodeValidationFailed}
			continue
		}

		appErr := models.AsAppError(e.ResolverError)
		if appErr.Code == models.CodeInternal {
			middleware.Logger.ErrorContext(ctx, "operation failed",
				slog.Any("path", e.Path),
				slog.Any("error", e.ResolverError),
			)
		}
		e.Message = appErr.Message
		e.Extensions = map[string]interface{}{"code": appErr.Code}
	}
}

// panicHandler turns a recovered resolver panic into an internal error.
type panicHandler struct{}

func (panicHandler) MakePanicError(_ context.Context, value interface{}) *gqlerrors.QueryError {
	err := models.NewInternalError(fmt.Errorf("panic: %v", value))
	return &gqlerrors.QueryError{
		Message:       err.Message,
		ResolverError: err,
	}
}

type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	middleware.Logger.ErrorContext(ctx, "graphql resolver panic", slog.Any("panic", value))
}
