// Package tsgen emits TypeScript and Flow type declarations from the legacy IR.
package tsgen

import (
	"fmt"
	"strings"

	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins/internal/printer"
)

type Dialect string

const (
	TypeScript Dialect = "typescript"
	Flow       Dialect = "flow"
)

type Options struct {
	Dialect                  Dialect
	PassthroughCustomScalars bool
	CustomScalarsPrefix      string
	// UseFlowExactObjects emits {| |} object types. Flow only.
	UseFlowExactObjects bool
}

type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	if opts.Dialect == "" {
		opts.Dialect = TypeScript
	}
	return &Generator{opts: opts}
}

func (g *Generator) Name() string { return "tsgen" }

func (g *Generator) Shape() ir.Shape { return ir.Legacy }

func (g *Generator) Generate(doc *ir.Document) ([]byte, error) {
	p := printer.New("  ")

	switch g.opts.Dialect {
	case Flow:
		p.Line("/* @flow */")
	case TypeScript:
		p.Line("/* tslint:disable */")
	default:
		return nil, fmt.Errorf("unknown dialect %q", g.opts.Dialect)
	}
	p.Line("//  This file was automatically generated and should not be edited.")

	for _, typ := range doc.TypesUsed {
		g.namedType(p, typ)
	}

	for _, name := range doc.OperationNames() {
		g.operation(p, doc.Operations[name])
	}

	for _, name := range doc.FragmentNames() {
		frag := doc.Fragments[name]
		p.Blank()
		p.Linef("export type %sFragment = %s;", frag.FragmentName, g.selectionSet(frag.SelectionSet, 0))
	}

	return p.Bytes(), nil
}

func (g *Generator) namedType(p *printer.Printer, typ *ir.NamedType) {
	switch typ.Kind {
	case ir.Enum:
		p.Blank()
		p.Comment("//", typ.Description)
		p.Linef("export type %s =", typ.Name)
		p.Indent(func() {
			for i, v := range typ.Values {
				sep := " |"
				if i == len(typ.Values)-1 {
					sep = ";"
				}
				line := fmt.Sprintf("%q%s", v.Name, sep)
				if v.Description != "" {
					line += " // " + firstLine(v.Description)
				}
				p.Line(line)
			}
		})

	case ir.InputObject:
		p.Blank()
		p.Comment("//", typ.Description)
		if g.opts.Dialect == Flow {
			p.Linef("export type %s = %s", typ.Name, g.objectOpen())
		} else {
			p.Linef("export interface %s {", typ.Name)
		}
		p.Indent(func() {
			for _, f := range typ.Fields {
				p.Comment("//", f.Description)
				p.Line(g.property(f.Name, f.Type))
			}
		})
		if g.opts.Dialect == Flow {
			p.Line(g.objectClose() + ";")
		} else {
			p.Line("};")
		}

	case ir.Scalar:
		if g.opts.PassthroughCustomScalars {
			return
		}
		p.Blank()
		p.Comment("//", typ.Description)
		p.Linef("export type %s = any;", typ.Name)
	}
}

func (g *Generator) operation(p *printer.Printer, op *ir.Operation) {
	typeName := op.OperationName + operationSuffix(op.OperationType)

	if len(op.Variables) > 0 {
		p.Blank()
		p.Linef("export type %sVariables = %s", typeName, g.objectOpen())
		p.Indent(func() {
			for _, v := range op.Variables {
				p.Line(g.property(v.Name, v.Type))
			}
		})
		p.Line(g.objectClose() + ";")
	}

	p.Blank()
	p.Linef("export type %s = %s;", typeName, g.selectionSet(op.SelectionSet, 0))
}

// selectionSet renders an object type literal. For an abstract parent with
// variants, it renders a union with one member per variant plus the base
// object when some possible types have no variant.
func (g *Generator) selectionSet(set *ir.SelectionSet, depth int) string {
	if len(set.Variants) == 0 {
		return g.object(set.Fields, set.PossibleTypes, depth)
	}

	var members []string
	var rest []string
	for _, typeName := range set.PossibleTypes {
		variant, ok := set.Variants[typeName]
		if !ok {
			rest = append(rest, typeName)
			continue
		}
		members = append(members, g.object(variant.Fields, variant.PossibleTypes, depth))
	}
	if len(rest) > 0 {
		members = append(members, g.object(set.Fields, rest, depth))
	}

	return "(" + strings.Join(members, " | ") + ")"
}

func (g *Generator) object(fields []*ir.Field, possibleTypes []string, depth int) string {
	var b strings.Builder
	indent := strings.Repeat("  ", depth+1)

	b.WriteString(g.objectOpen())
	b.WriteString("\n")
	for _, f := range fields {
		for _, line := range g.fieldLines(f, possibleTypes, depth+1) {
			b.WriteString(indent)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(g.objectClose())

	return b.String()
}

func (g *Generator) fieldLines(f *ir.Field, possibleTypes []string, depth int) []string {
	var lines []string
	if f.Description != "" {
		lines = append(lines, "// "+firstLine(f.Description))
	}
	if f.IsDeprecated {
		lines = append(lines, "// Deprecated: "+f.DeprecationReason)
	}

	if f.FieldName == "__typename" {
		literals := make([]string, 0, len(possibleTypes))
		for _, t := range possibleTypes {
			literals = append(literals, fmt.Sprintf("%q", t))
		}
		return append(lines, fmt.Sprintf("%s: %s,", f.ResponseKey, strings.Join(literals, " | ")))
	}

	var typ string
	if f.SelectionSet != nil {
		typ = g.wrap(f.Type, g.selectionSet(f.SelectionSet, depth))
	} else {
		typ = g.typeRef(f.Type)
	}

	optional := ""
	if f.IsConditional {
		optional = "?"
	}
	return append(lines, fmt.Sprintf("%s%s: %s,", f.ResponseKey, optional, typ))
}

// property renders an input property. Nullable inputs may be omitted.
func (g *Generator) property(name string, t *ir.TypeRef) string {
	optional := ""
	if t.Nullable() {
		optional = "?"
	}
	return fmt.Sprintf("%s%s: %s,", name, optional, g.typeRef(t))
}

func (g *Generator) typeRef(t *ir.TypeRef) string {
	return g.wrap(t, g.scalar(t.Named()))
}

// wrap applies the list and nullability wrappers of t around inner.
func (g *Generator) wrap(t *ir.TypeRef, inner string) string {
	switch t.Kind {
	case ir.NonNull:
		return g.wrapNonNull(t.OfType, inner)
	case ir.List:
		return g.nullable(fmt.Sprintf("Array< %s >", g.wrap(t.OfType, inner)))
	default:
		return g.nullable(inner)
	}
}

func (g *Generator) wrapNonNull(t *ir.TypeRef, inner string) string {
	if t.Kind == ir.List {
		return fmt.Sprintf("Array< %s >", g.wrap(t.OfType, inner))
	}
	return inner
}

func (g *Generator) nullable(t string) string {
	if g.opts.Dialect == Flow {
		return "?" + t
	}
	return t + " | null"
}

func (g *Generator) scalar(t *ir.TypeRef) string {
	switch t.Name {
	case "String", "ID":
		return "string"
	case "Int", "Float":
		return "number"
	case "Boolean":
		return "boolean"
	}
	if t.Kind == ir.Scalar && g.opts.PassthroughCustomScalars {
		return g.opts.CustomScalarsPrefix + t.Name
	}
	return t.Name
}

func (g *Generator) objectOpen() string {
	if g.opts.Dialect == Flow && g.opts.UseFlowExactObjects {
		return "{|"
	}
	return "{"
}

func (g *Generator) objectClose() string {
	if g.opts.Dialect == Flow && g.opts.UseFlowExactObjects {
		return "|}"
	}
	return "}"
}

func operationSuffix(t ir.OperationType) string {
	switch t {
	case ir.Mutation:
		return "Mutation"
	case ir.Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
