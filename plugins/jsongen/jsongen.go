// Package jsongen serializes the legacy IR as a JSON document for tools
// that consume the compiled operations directly.
package jsongen

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/gqlgo/gqltypegen/ir"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Name() string { return "jsongen" }

func (g *Generator) Shape() ir.Shape { return ir.Legacy }

// output lists operations and fragments sorted by name so the artifact does
// not depend on map iteration order.
type output struct {
	Operations []*ir.Operation `json:"operations"`
	Fragments  []*ir.Fragment  `json:"fragments"`
	TypesUsed  []*ir.NamedType `json:"typesUsed"`
}

func (g *Generator) Generate(doc *ir.Document) ([]byte, error) {
	out := output{
		Operations: make([]*ir.Operation, 0, len(doc.Operations)),
		Fragments:  make([]*ir.Fragment, 0, len(doc.Fragments)),
		TypesUsed:  doc.TypesUsed,
	}
	for _, name := range doc.OperationNames() {
		out.Operations = append(out.Operations, doc.Operations[name])
	}
	for _, name := range doc.FragmentNames() {
		out.Fragments = append(out.Fragments, doc.Fragments[name])
	}
	if out.TypesUsed == nil {
		out.TypesUsed = []*ir.NamedType{}
	}

	b, err := json.Marshal(out, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("marshal ir: %w", err)
	}

	return append(b, '\n'), nil
}
