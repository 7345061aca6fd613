// Package scalagen emits Scala.js sources for apollo-scalajs from the legacy
// IR.
package scalagen

import (
	"fmt"
	"strings"

	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins/internal/printer"
)

type Options struct {
	// Namespace becomes the package clause.
	Namespace                string
	PassthroughCustomScalars bool
	CustomScalarsPrefix      string
}

type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

func (g *Generator) Name() string { return "scalagen" }

func (g *Generator) Shape() ir.Shape { return ir.Legacy }

func (g *Generator) Generate(doc *ir.Document) ([]byte, error) {
	p := printer.New("  ")
	p.Line("//  This file was automatically generated and should not be edited.")
	if g.opts.Namespace != "" {
		p.Blank()
		p.Line("package " + g.opts.Namespace)
	}

	for _, typ := range doc.TypesUsed {
		g.namedType(p, typ)
	}
	for _, name := range doc.OperationNames() {
		g.operation(p, doc.Operations[name])
	}
	for _, name := range doc.FragmentNames() {
		g.fragment(p, doc.Fragments[name])
	}

	return p.Bytes(), nil
}

func (g *Generator) namedType(p *printer.Printer, typ *ir.NamedType) {
	switch typ.Kind {
	case ir.Enum:
		names := make([]string, 0, len(typ.Values))
		p.Blank()
		p.Comment("//", typ.Description)
		p.Linef("sealed abstract class %s(val value: String)", typ.Name)
		p.Block(fmt.Sprintf("object %s {", typ.Name), "}", func() {
			for _, v := range typ.Values {
				p.Comment("//", v.Description)
				if v.IsDeprecated {
					p.Linef("@deprecated(%q, \"\")", v.DeprecationReason)
				}
				p.Linef("case object %s extends %s(%q)", escape(v.Name), typ.Name, v.Name)
				names = append(names, escape(v.Name))
			}
			p.Blank()
			p.Linef("val values: Seq[%s] = Seq(%s)", typ.Name, strings.Join(names, ", "))
			p.Linef("def apply(value: String): Option[%s] = values.find(_.value == value)", typ.Name)
		})

	case ir.InputObject:
		params := make([]string, 0, len(typ.Fields))
		for _, f := range typ.Fields {
			param := fmt.Sprintf("%s: %s", escape(f.Name), g.typeRef(f.Type, g.leafName(f.Type.Named())))
			if f.Type.Nullable() {
				param += " = None"
			}
			params = append(params, param)
		}
		p.Blank()
		p.Comment("//", typ.Description)
		p.Linef("case class %s(%s)", typ.Name, strings.Join(params, ", "))
	}
}

func (g *Generator) operation(p *printer.Printer, op *ir.Operation) {
	objectName, trait := op.OperationName+"Query", "GraphQLQuery"
	switch op.OperationType {
	case ir.Mutation:
		objectName, trait = op.OperationName+"Mutation", "GraphQLMutation"
	case ir.Subscription:
		objectName, trait = op.OperationName+"Subscription", "GraphQLSubscription"
	}

	p.Blank()
	p.Block(fmt.Sprintf("object %s extends com.apollographql.scalajs.%s {", objectName, trait), "}", func() {
		p.Line("val operationString =")
		p.Indent(func() {
			for _, line := range stripMargin(op.SourceWithFragments) {
				p.Line(line)
			}
		})
		p.Line("val operation = com.apollographql.scalajs.gql(operationString)")

		if len(op.Variables) > 0 {
			params := make([]string, 0, len(op.Variables))
			for _, v := range op.Variables {
				param := fmt.Sprintf("%s: %s", escape(v.Name), g.typeRef(v.Type, g.leafName(v.Type.Named())))
				if v.Type.Nullable() {
					param += " = None"
				}
				params = append(params, param)
			}
			p.Blank()
			p.Linef("case class Variables(%s)", strings.Join(params, ", "))
		}

		p.Blank()
		g.caseClass(p, "Data", op.SelectionSet)
	})
}

func (g *Generator) fragment(p *printer.Printer, frag *ir.Fragment) {
	p.Blank()
	g.caseClass(p, frag.FragmentName, frag.SelectionSet, func() {
		p.Line("val fragmentString =")
		p.Indent(func() {
			for _, line := range stripMargin(frag.Source) {
				p.Line(line)
			}
		})
	})
}

// caseClass declares a case class for set and a companion object holding
// its possible types and the classes of nested selections.
func (g *Generator) caseClass(p *printer.Printer, name string, set *ir.SelectionSet, companion ...func()) {
	params := make([]string, 0, len(set.Fields)+len(set.Variants))
	for _, f := range set.Fields {
		params = append(params, fmt.Sprintf("%s: %s", escape(f.ResponseKey), g.fieldType(name, f)))
	}
	for _, typeName := range set.VariantNames() {
		params = append(params, fmt.Sprintf("as%s: Option[%s.As%s]", typeName, name, typeName))
	}

	p.Linef("case class %s(%s)", name, strings.Join(params, ", "))
	p.Blank()
	p.Block(fmt.Sprintf("object %s {", name), "}", func() {
		for _, fn := range companion {
			fn()
		}
		p.Linef("val possibleTypes = scala.collection.Set(%s)", quoteAll(set.PossibleTypes))

		for _, f := range set.Fields {
			if f.SelectionSet == nil {
				continue
			}
			p.Blank()
			g.caseClass(p, className(f.ResponseKey), f.SelectionSet)
		}
		for _, typeName := range set.VariantNames() {
			p.Blank()
			g.caseClass(p, "As"+typeName, set.Variants[typeName])
		}
	})
}

func (g *Generator) fieldType(parent string, f *ir.Field) string {
	t := f.Type
	if f.IsConditional && t.NonNull() {
		t = t.OfType
	}
	if f.SelectionSet != nil {
		return g.typeRef(t, parent+"."+className(f.ResponseKey))
	}
	return g.typeRef(t, g.leafName(t.Named()))
}

func (g *Generator) typeRef(t *ir.TypeRef, named string) string {
	nullable := t.Kind != ir.NonNull
	if !nullable {
		t = t.OfType
	}
	s := named
	if t.Kind == ir.List {
		s = "Seq[" + g.typeRef(t.OfType, named) + "]"
	}
	if nullable {
		return "Option[" + s + "]"
	}
	return s
}

func (g *Generator) leafName(t *ir.TypeRef) string {
	switch t.Name {
	case "String", "ID":
		return "String"
	case "Int":
		return "Int"
	case "Float":
		return "Double"
	case "Boolean":
		return "Boolean"
	}
	if t.Kind == ir.Scalar {
		if g.opts.PassthroughCustomScalars {
			return g.opts.CustomScalarsPrefix + t.Name
		}
		return "String"
	}
	return t.Name
}
