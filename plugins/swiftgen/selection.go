package swiftgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins/internal/printer"
)

// selectionStruct declares a struct exposing set over a ResultMap. head,
// when set, writes extra static members first.
func (g *Generator) selectionStruct(p *printer.Printer, doc *ir.Document, name, protocol string, set *ir.SelectionSet, head func()) {
	p.Linef("public struct %s: %s {", name, protocol)
	p.Indent(func() {
		if head != nil {
			head()
		}
		p.Linef("public static let possibleTypes: [String] = [%s]", quoteAll(set.PossibleTypes))

		p.Blank()
		p.Block("public static var selections: [GraphQLSelection] {", "}", func() {
			p.Block("return [", "]", func() {
				g.selections(p, set)
			})
		})

		p.Blank()
		p.Line("public private(set) var resultMap: ResultMap")
		p.Blank()
		p.Block("public init(unsafeResultMap: ResultMap) {", "}", func() {
			p.Line("self.resultMap = unsafeResultMap")
		})

		for _, f := range set.Fields {
			p.Blank()
			g.accessor(p, f)
		}

		if len(set.FragmentSpreads) > 0 {
			p.Blank()
			g.fragments(p, doc, set)
		}

		for _, typeName := range set.VariantNames() {
			p.Blank()
			variantAccessor(p, typeName)
		}

		for _, f := range set.Fields {
			if f.SelectionSet == nil {
				continue
			}
			p.Blank()
			g.selectionStruct(p, doc, upperFirst(f.ResponseKey), "GraphQLSelectionSet", f.SelectionSet, nil)
		}

		for _, typeName := range set.VariantNames() {
			p.Blank()
			g.selectionStruct(p, doc, "As"+typeName, "GraphQLSelectionSet", set.Variants[typeName], nil)
		}
	})
	p.Line("}")
}

func (g *Generator) selections(p *printer.Printer, set *ir.SelectionSet) {
	if len(set.Variants) == 0 {
		for _, f := range set.Fields {
			p.Line(g.selectionField(f) + ",")
		}
		return
	}

	cases := make([]string, 0, len(set.Variants))
	for _, typeName := range set.VariantNames() {
		cases = append(cases, fmt.Sprintf("%q: As%s.selections", typeName, typeName))
	}
	p.Block("GraphQLTypeCase(", "),", func() {
		p.Linef("variants: [%s],", strings.Join(cases, ", "))
		p.Block("default: [", "]", func() {
			for _, f := range set.Fields {
				p.Line(g.selectionField(f) + ",")
			}
		})
	})
}

func (g *Generator) selectionField(f *ir.Field) string {
	args := []string{fmt.Sprintf("%q", f.FieldName)}
	if f.ResponseKey != f.FieldName {
		args = append(args, fmt.Sprintf("alias: %q", f.ResponseKey))
	}
	if len(f.Args) > 0 {
		entries := make([]string, 0, len(f.Args))
		for _, arg := range f.Args {
			entries = append(entries, fmt.Sprintf("%q: %s", arg.Name, argumentValue(arg.Value)))
		}
		args = append(args, fmt.Sprintf("arguments: [%s]", strings.Join(entries, ", ")))
	}

	inner := fmt.Sprintf(".scalar(%s.self)", g.leafName(f.Type.Named()))
	if f.SelectionSet != nil {
		inner = fmt.Sprintf(".object(%s.selections)", upperFirst(f.ResponseKey))
	}
	args = append(args, "type: "+selectionType(f.Type, inner))

	return fmt.Sprintf("GraphQLField(%s)", strings.Join(args, ", "))
}

// fieldType is the Swift-facing type of f. A conditional field may be
// missing from the response, so it is never non-null.
func fieldType(f *ir.Field) *ir.TypeRef {
	if f.IsConditional && f.Type.NonNull() {
		return f.Type.OfType
	}
	return f.Type
}

func (g *Generator) accessor(p *printer.Printer, f *ir.Field) {
	t := fieldType(f)
	key := f.ResponseKey

	p.Comment("///", f.Description)
	if f.IsDeprecated {
		p.Linef("@available(*, deprecated, message: %q)", f.DeprecationReason)
	}

	if f.SelectionSet != nil {
		named := upperFirst(key)
		p.Block(fmt.Sprintf("public var %s: %s {", escape(key), swiftType(t, named)), "}", func() {
			p.Block("get {", "}", func() {
				if t.NonNull() {
					p.Line("return " + fromResultMap(t, fmt.Sprintf("(resultMap[%q]! as! %s)", key, swiftType(t, "ResultMap")), named))
				} else {
					p.Line("return " + fromResultMap(t, fmt.Sprintf("(resultMap[%q] as? %s)", key, swiftType(ir.NonNullOf(t), "ResultMap")), named))
				}
			})
			p.Block("set {", "}", func() {
				p.Linef("resultMap.updateValue(%s, forKey: %q)", toResultMap(t, "newValue", named), key)
			})
		})
		return
	}

	leaf := g.leafName(t.Named())
	p.Block(fmt.Sprintf("public var %s: %s {", escape(key), swiftType(t, leaf)), "}", func() {
		p.Block("get {", "}", func() {
			if t.NonNull() {
				p.Linef("return resultMap[%q]! as! %s", key, swiftType(t, leaf))
			} else {
				p.Linef("return resultMap[%q] as? %s", key, swiftType(ir.NonNullOf(t), leaf))
			}
		})
		p.Block("set {", "}", func() {
			p.Linef("resultMap.updateValue(newValue, forKey: %q)", key)
		})
	})
}

func (g *Generator) fragments(p *printer.Printer, doc *ir.Document, set *ir.SelectionSet) {
	p.Block("public var fragments: Fragments {", "}", func() {
		p.Block("get {", "}", func() {
			p.Line("return Fragments(unsafeResultMap: resultMap)")
		})
		p.Block("set {", "}", func() {
			p.Line("resultMap += newValue.resultMap")
		})
	})

	p.Blank()
	p.Block("public struct Fragments {", "}", func() {
		p.Line("public private(set) var resultMap: ResultMap")
		p.Blank()
		p.Block("public init(unsafeResultMap: ResultMap) {", "}", func() {
			p.Line("self.resultMap = unsafeResultMap")
		})

		for _, name := range set.FragmentSpreads {
			frag, ok := doc.Fragments[name]
			if !ok {
				continue
			}
			p.Blank()
			if covers(frag.PossibleTypes, set.PossibleTypes) {
				p.Block(fmt.Sprintf("public var %s: %s {", escape(lowerFirst(name)), name), "}", func() {
					p.Block("get {", "}", func() {
						p.Linef("return %s(unsafeResultMap: resultMap)", name)
					})
					p.Block("set {", "}", func() {
						p.Line("resultMap += newValue.resultMap")
					})
				})
				continue
			}
			p.Block(fmt.Sprintf("public var %s: %s? {", escape(lowerFirst(name)), name), "}", func() {
				p.Block("get {", "}", func() {
					p.Linef(`if !%s.possibleTypes.contains(resultMap["__typename"]! as! String) { return nil }`, name)
					p.Linef("return %s(unsafeResultMap: resultMap)", name)
				})
				p.Block("set {", "}", func() {
					p.Line("guard let newValue = newValue else { return }")
					p.Line("resultMap += newValue.resultMap")
				})
			})
		}
	})
}

func variantAccessor(p *printer.Printer, typeName string) {
	name := "As" + typeName
	p.Block(fmt.Sprintf("public var as%s: %s? {", typeName, name), "}", func() {
		p.Block("get {", "}", func() {
			p.Linef("if !%s.possibleTypes.contains(__typename) { return nil }", name)
			p.Linef("return %s(unsafeResultMap: resultMap)", name)
		})
		p.Block("set {", "}", func() {
			p.Line("guard let newValue = newValue else { return }")
			p.Line("resultMap = newValue.resultMap")
		})
	})
}

// covers reports whether every type in types is one of fragmentTypes.
func covers(fragmentTypes, types []string) bool {
	for _, t := range types {
		if !slices.Contains(fragmentTypes, t) {
			return false
		}
	}
	return true
}

func quoteAll(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}
	return strings.Join(quoted, ", ")
}
