package queryparser

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// QueryDocument parses every source and merges them into one document.
// Definitions keep their source order.
func QueryDocument(sources []*ast.Source) (*ast.QueryDocument, error) {
	var queryDocument ast.QueryDocument
	for _, source := range sources {
		query, err := parser.ParseQuery(source)
		if err != nil {
			return nil, &LoadError{Path: source.Name, Err: err}
		}

		mergeQueryDocument(&queryDocument, query)
	}

	return &queryDocument, nil
}

func mergeQueryDocument(q, other *ast.QueryDocument) {
	q.Operations = append(q.Operations, other.Operations...)
	q.Fragments = append(q.Fragments, other.Fragments...)
}
