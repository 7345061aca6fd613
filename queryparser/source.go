package queryparser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/vektah/gqlparser/v2/ast"
)

// taggedTemplateQuery matches tag`...` expressions.
const taggedTemplateQuery = `(call_expression
  function: (identifier) @tag
  arguments: (template_string) @template)`

// LoadQuerySources reads every document path. GraphQL files yield one source
// each; JavaScript and TypeScript files yield one source per template literal
// tagged with tagName.
func LoadQuerySources(ctx context.Context, paths []string, tagName string) ([]*ast.Source, error) {
	var sources []*ast.Source
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}

		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".graphql", ".graphqls", ".gql":
			sources = append(sources, &ast.Source{Name: path, Input: string(content)})
		case ".js", ".jsx", ".ts", ".tsx":
			extracted, err := extractTaggedTemplates(ctx, path, content, language(ext), tagName)
			if err != nil {
				return nil, &LoadError{Path: path, Err: err}
			}
			sources = append(sources, extracted...)
		default:
			return nil, &LoadError{Path: path, Err: fmt.Errorf("unsupported file extension %q", ext)}
		}
	}

	return sources, nil
}

func language(ext string) *sitter.Language {
	switch ext {
	case ".ts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

func extractTaggedTemplates(ctx context.Context, path string, content []byte, lang *sitter.Language, tagName string) ([]*ast.Source, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(taggedTemplateQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var sources []*ast.Source
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}

		var tag, template *sitter.Node
		for _, c := range m.Captures {
			switch query.CaptureNameForId(c.Index) {
			case "tag":
				tag = c.Node
			case "template":
				template = c.Node
			}
		}
		if tag == nil || template == nil || tag.Content(content) != tagName {
			continue
		}

		body, err := templateBody(template, content)
		if err != nil {
			return nil, err
		}

		// Leading newlines keep GraphQL error lines aligned with the host file.
		padding := strings.Repeat("\n", int(template.StartPoint().Row))
		sources = append(sources, &ast.Source{Name: path, Input: padding + body})
	}

	return sources, nil
}

// templateBody returns the literal text of a template string with the
// backticks and every ${...} substitution removed.
func templateBody(template *sitter.Node, content []byte) (string, error) {
	start, end := template.StartByte(), template.EndByte()
	if end-start < 2 {
		return "", errors.New("malformed template literal")
	}

	var b strings.Builder
	cursor := start + 1
	for i := range int(template.NamedChildCount()) {
		child := template.NamedChild(i)
		if child.Type() != "template_substitution" {
			continue
		}
		b.Write(content[cursor:child.StartByte()])
		cursor = child.EndByte()
	}
	b.Write(content[cursor : end-1])

	return b.String(), nil
}
