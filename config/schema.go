package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/internal/log"
	"github.com/gqlgo/gqltypegen/introspection"
	"github.com/gqlgo/gqltypegen/queryparser"
)

// LoadSchema loads the schema from the configured files or endpoint into c.Schema.
func (c *Config) LoadSchema(ctx context.Context) error {
	var (
		schema *ast.Schema
		err    error
	)

	switch {
	case c.SchemaFilename != nil:
		schema, err = loadLocalSchema(c.SchemaFilename)
	case c.Endpoint != nil:
		httpClient := c.Endpoint.Client
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		schema, err = introspectionSchema(ctx, httpClient, c.Endpoint.URL, c.Endpoint.Headers)
		if err != nil {
			err = &queryparser.LoadError{Path: c.Endpoint.URL, Err: fmt.Errorf("introspect schema failed: %w", err)}
		}
	default:
		return errors.New("neither 'schema' nor 'endpoint' specified. Use schema to load from a local file, use endpoint to load from a remote server (using introspection)")
	}
	if err != nil {
		return err
	}

	// sort Implements to ensure a deterministic output
	for _, implements := range schema.Implements {
		slices.SortFunc(implements, func(a, b *ast.Definition) int {
			return strings.Compare(a.Name, b.Name)
		})
	}

	log.FromContext(ctx).V(1).Info("schema loaded", "types", len(schema.Types))
	c.Schema = schema

	return nil
}

// loadLocalSchema reads SDL files, or a single stored introspection result
// when the only file has a .json extension.
func loadLocalSchema(filenames []string) (*ast.Schema, error) {
	if len(filenames) == 1 && strings.EqualFold(filepath.Ext(filenames[0]), ".json") {
		return loadIntrospectionFile(filenames[0])
	}

	sources := make([]*ast.Source, 0, len(filenames))
	for _, filename := range filenames {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, &queryparser.LoadError{Path: filename, Err: err}
		}
		sources = append(sources, &ast.Source{Name: filename, Input: string(content)})
	}

	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, &queryparser.LoadError{Path: strings.Join(filenames, ", "), Err: err}
	}

	return schema, nil
}

func loadIntrospectionFile(filename string) (*ast.Schema, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, &queryparser.LoadError{Path: filename, Err: err}
	}

	result, err := introspection.ParseResult(content)
	if err != nil {
		return nil, &queryparser.LoadError{Path: filename, Err: err}
	}

	schema, err := introspection.LoadSchema(filename, result)
	if err != nil {
		return nil, &queryparser.LoadError{Path: filename, Err: err}
	}

	return schema, nil
}
