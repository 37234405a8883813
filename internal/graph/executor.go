package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"feedgraph/internal/auth"

	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Response is a GraphQL result. Data is null whenever Errors is non-empty.
type Response struct {
	Data   json.RawMessage         `json:"data"`
	Errors []*gqlerrors.QueryError `json:"errors,omitempty"`
}

// ErrorResponse is a response carrying a single error and no data.
func ErrorResponse(message, code string) *Response {
	return &Response{Errors: []*gqlerrors.QueryError{NewError(message, code)}}
}

// StatusCode is the HTTP status for the response: 400 when the document was
// rejected before execution, 429 when it was rate limited, 200 otherwise.
func (r *Response) StatusCode() int {
	for _, e := range r.Errors {
		switch code, _ := e.Extensions["code"].(string); code {
		case CodeValidationFailed:
			return http.StatusBadRequest
		case CodeRateLimited:
			return http.StatusTooManyRequests
		}
	}
	return http.StatusOK
}

// Executor runs GraphQL documents against the feed schema. Every root field
// becomes a typed Operation handed to the Dispatcher.
type Executor struct {
	schema *graphql.Schema
}

func NewExecutor(dispatcher *Dispatcher) (*Executor, error) {
	schema, err := parseSchema(dispatcher)
	if err != nil {
		return nil, err
	}
	return &Executor{schema: schema}, nil
}

// DecodeRequest reads a request body. Numbers in variables are kept as
// json.Number so large IDs survive.
func DecodeRequest(body []byte) (Request, error) {
	var req Request
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode graphql request: %w", err)
	}
	return req, nil
}

// Execute runs req on behalf of id. Queries may resolve their root fields
// concurrently; mutation root fields run in document order.
func (e *Executor) Execute(ctx context.Context, id auth.Identity, req Request) *Response {
	if strings.TrimSpace(req.Query) == "" {
		return ErrorResponse("Must provide query string.", CodeValidationFailed)
	}

	ctx = auth.WithIdentity(ctx, id)
	res := e.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	if len(res.Errors) == 0 {
		return &Response{Data: res.Data}
	}

	normalizeErrors(ctx, res.Errors)
	return &Response{Errors: res.Errors}
}
