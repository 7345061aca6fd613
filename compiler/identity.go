package compiler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// printDocument renders doc as canonical GraphQL text with two-space
// indentation and no trailing newline.
func printDocument(doc *ast.QueryDocument) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent("  ")).FormatQueryDocument(doc)
	return strings.TrimRight(buf.String(), "\n")
}

func printOperation(op *ast.OperationDefinition) string {
	return printDocument(&ast.QueryDocument{Operations: ast.OperationList{op}})
}

func printFragment(frag *ast.FragmentDefinition) string {
	return printDocument(&ast.QueryDocument{Fragments: ast.FragmentDefinitionList{frag}})
}

// sourceWithFragments appends the source of every fragment in closure order
// to the operation source.
func sourceWithFragments(source string, closure []string, fragmentSources map[string]string) string {
	parts := make([]string, 0, len(closure)+1)
	parts = append(parts, source)
	for _, name := range closure {
		parts = append(parts, fragmentSources[name])
	}
	return strings.Join(parts, "\n")
}

// operationID is the lowercase hex SHA-256 digest of the full operation
// text.
func operationID(sourceWithFragments string) string {
	sum := sha256.Sum256([]byte(sourceWithFragments))
	return hex.EncodeToString(sum[:])
}
