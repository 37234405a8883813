package graph

import (
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphqls
var schemaSDL string

// SchemaSDL returns the GraphQL schema served by the executor.
func SchemaSDL() string {
	return schemaSDL
}

// parseSchema binds the embedded schema to resolvers backed by d. Resolver
// signatures that do not match the schema fail here, at startup.
func parseSchema(d *Dispatcher) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, &rootResolver{dispatcher: d},
		graphql.PanicHandler(panicHandler{}),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}
