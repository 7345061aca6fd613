package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/gqlgo/gqltypegen/ir"
)

func loadSchema(t *testing.T, fileName string) *ast.Schema {
	t.Helper()

	b, err := os.ReadFile(filepath.Join("testdata", fileName))
	if err != nil {
		t.Fatal(err)
	}
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: fileName, Input: string(b)})
	if err != nil {
		t.Fatal(err)
	}
	return schema
}

func parseQuery(t *testing.T, query string) *ast.QueryDocument {
	t.Helper()

	doc, err := parser.ParseQuery(&ast.Source{Name: "query.graphql", Input: query})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func fieldKeys(fields []*ir.Field) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.ResponseKey)
	}
	return keys
}
