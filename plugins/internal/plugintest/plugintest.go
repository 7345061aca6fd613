// Package plugintest compiles the shared fixtures for generator tests.
package plugintest

import (
	"os"
	"path/filepath"
	"testing"

	testlogr "github.com/go-logr/logr/testing"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/compiler"
	"github.com/gqlgo/gqltypegen/internal/log"
	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/queryparser"
)

// Fixture locations relative to a generator package.
const (
	FixtureDir = "../../testdata/starwars"
	// HeroFixtureDir holds an interface with a single implementation and one
	// operation narrowing it.
	HeroFixtureDir = "../../testdata/hero"
)

// Compile loads every document of the Star Wars fixture and compiles it to
// shape.
func Compile(t *testing.T, shape ir.Shape, opts compiler.Options) *ir.Document {
	t.Helper()
	return CompileDir(t, FixtureDir, shape, opts)
}

// CompileDir compiles the schema.graphqls and documents found in dir.
func CompileDir(t *testing.T, dir string, shape ir.Shape, opts compiler.Options) *ir.Document {
	t.Helper()

	schemaFile := filepath.Join(dir, "schema.graphqls")
	content, err := os.ReadFile(schemaFile)
	if err != nil {
		t.Fatal(err)
	}
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: schemaFile, Input: string(content)})
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, pattern := range []string{"*.graphql", "*.ts"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, matches...)
	}

	ctx := log.WithLogger(t.Context(), testlogr.NewTestLogger(t))

	sources, err := queryparser.LoadQuerySources(ctx, paths, "gql")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := queryparser.QueryDocument(sources)
	if err != nil {
		t.Fatal(err)
	}
	if err := queryparser.Validate(schema, doc, queryparser.ValidateOptions{}); err != nil {
		t.Fatal(err)
	}

	compiled, err := compiler.Compile(ctx, schema, doc, compiler.NewPolicy(shape, opts))
	if err != nil {
		t.Fatal(err)
	}

	return compiled
}
