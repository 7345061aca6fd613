package config

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/client"
	"github.com/gqlgo/gqltypegen/internal/log"
	"github.com/gqlgo/gqltypegen/introspection"
)

// introspectionSchema runs the introspection query against endpoint and
// builds a schema from the result.
func introspectionSchema(ctx context.Context, httpClient *http.Client, endpoint string, header http.Header) (*ast.Schema, error) {
	log.FromContext(ctx).V(1).Info("introspecting schema", "endpoint", endpoint)

	gqlClient := client.NewClient(endpoint, client.WithHTTPClient(httpClient), client.WithHTTPHeader(header))

	var res introspection.Query
	if err := gqlClient.Post(ctx, "IntrospectionQuery", introspection.Introspection, nil, &res); err != nil {
		return nil, fmt.Errorf("introspection query failed: %w", err)
	}

	schema, err := introspection.LoadSchema(endpoint, &res)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	return schema, nil
}
