// Package flowmoderngen emits Flow types from the modern IR.
//
// Every selection set becomes a named type whose name is the path from the
// operation or fragment root, joined by underscores. Abstract selections
// become a union with one member per possible type.
package flowmoderngen

import (
	"fmt"
	"strings"

	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins/internal/printer"
)

type Options struct {
	PassthroughCustomScalars bool
	CustomScalarsPrefix      string
	UseFlowExactObjects      bool
}

type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

func (g *Generator) Name() string { return "flowmoderngen" }

func (g *Generator) Shape() ir.Shape { return ir.Modern }

func (g *Generator) Generate(doc *ir.Document) ([]byte, error) {
	p := printer.New("  ")
	p.Line("/* @flow */")
	p.Line("/* eslint-disable */")
	p.Line("// This file was automatically generated and should not be edited.")

	for _, name := range doc.OperationNames() {
		op := doc.Operations[name]
		banner(p, fmt.Sprintf("GraphQL %s operation: %s", op.OperationType, op.OperationName))
		g.declare(p, op.OperationName, op.SelectionSet)
		if len(op.Variables) > 0 {
			p.Blank()
			p.Linef("export type %sVariables = %s", op.OperationName, g.open())
			p.Indent(func() {
				for _, v := range op.Variables {
					p.Line(g.property(v.Name, v.Type))
				}
			})
			p.Line(g.close() + ";")
		}
	}

	for _, name := range doc.FragmentNames() {
		frag := doc.Fragments[name]
		banner(p, "GraphQL fragment: "+frag.FragmentName)
		g.declare(p, frag.FragmentName, frag.SelectionSet)
	}

	if len(doc.TypesUsed) > 0 {
		banner(p, "START Enums and Input Objects")
		for _, typ := range doc.TypesUsed {
			g.namedType(p, typ)
		}
		banner(p, "END Enums and Input Objects")
	}

	return p.Bytes(), nil
}

func banner(p *printer.Printer, title string) {
	p.Blank()
	p.Line("// ====================================================")
	p.Line("// " + title)
	p.Line("// ====================================================")
}

// declare emits the type called name for set, after the types of its
// nested selections.
func (g *Generator) declare(p *printer.Printer, name string, set *ir.SelectionSet) {
	if len(set.Variants) == 0 {
		g.object(p, name, set)
		return
	}

	members := make([]string, 0, len(set.Variants))
	for _, typeName := range set.PossibleTypes {
		variant, ok := set.Variants[typeName]
		if !ok {
			continue
		}
		member := name + "_" + typeName
		g.object(p, member, variant)
		members = append(members, member)
	}

	p.Blank()
	p.Linef("export type %s = %s;", name, strings.Join(members, " | "))
}

func (g *Generator) object(p *printer.Printer, name string, set *ir.SelectionSet) {
	for _, f := range set.Fields {
		if f.SelectionSet != nil {
			g.declare(p, name+"_"+f.ResponseKey, f.SelectionSet)
		}
	}

	p.Blank()
	p.Linef("export type %s = %s", name, g.open())
	p.Indent(func() {
		for _, f := range set.Fields {
			g.field(p, name, set, f)
		}
	})
	p.Line(g.close() + ";")
}

func (g *Generator) field(p *printer.Printer, parent string, set *ir.SelectionSet, f *ir.Field) {
	if f.FieldName == "__typename" {
		p.Linef("%s: %s,", f.ResponseKey, typenameLiteral(set.PossibleTypes))
		return
	}

	if f.Description != "" {
		p.Comment("//", f.Description)
	}
	if f.IsDeprecated {
		p.Line("// Deprecated: " + f.DeprecationReason)
	}

	typ := g.typeRef(f.Type)
	if f.SelectionSet != nil {
		typ = g.wrap(f.Type, parent+"_"+f.ResponseKey)
	}

	optional := ""
	if f.IsConditional {
		optional = "?"
	}
	p.Linef("%s%s: %s,", f.ResponseKey, optional, typ)
}

func typenameLiteral(possibleTypes []string) string {
	if len(possibleTypes) == 0 {
		return "string"
	}
	literals := make([]string, 0, len(possibleTypes))
	for _, t := range possibleTypes {
		literals = append(literals, fmt.Sprintf("%q", t))
	}
	return strings.Join(literals, " | ")
}

func (g *Generator) namedType(p *printer.Printer, typ *ir.NamedType) {
	switch typ.Kind {
	case ir.Enum:
		values := make([]string, 0, len(typ.Values))
		for _, v := range typ.Values {
			values = append(values, fmt.Sprintf("%q", v.Name))
		}
		p.Blank()
		p.Comment("//", typ.Description)
		p.Linef("export type %s = %s;", typ.Name, strings.Join(values, " | "))

	case ir.InputObject:
		p.Blank()
		p.Comment("//", typ.Description)
		p.Linef("export type %s = %s", typ.Name, g.open())
		p.Indent(func() {
			for _, f := range typ.Fields {
				p.Comment("//", f.Description)
				p.Line(g.property(f.Name, f.Type))
			}
		})
		p.Line(g.close() + ";")

	case ir.Scalar:
		if g.opts.PassthroughCustomScalars {
			return
		}
		p.Blank()
		p.Comment("//", typ.Description)
		p.Linef("export type %s = any;", typ.Name)
	}
}

// property renders an input property; nullable inputs may be omitted.
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

func (g *Generator) wrap(t *ir.TypeRef, inner string) string {
	nullable := true
	if t.Kind == ir.NonNull {
		nullable = false
		t = t.OfType
	}

	s := inner
	if t.Kind == ir.List {
		s = "Array<" + g.wrap(t.OfType, inner) + ">"
	}
	if nullable {
		return "?" + s
	}
	return s
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

func (g *Generator) open() string {
	if g.opts.UseFlowExactObjects {
		return "{|"
	}
	return "{"
}

func (g *Generator) close() string {
	if g.opts.UseFlowExactObjects {
		return "|}"
	}
	return "}"
}
