// Package swiftgen emits Swift sources for the Apollo iOS runtime from the
// modern IR.
package swiftgen

import (
	"fmt"
	"strings"

	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins/internal/printer"
)

type Options struct {
	// Namespace wraps every declaration in a public enum of that name.
	Namespace                string
	PassthroughCustomScalars bool
	CustomScalarsPrefix      string
	// OperationIdentifiers embeds the persisted operation id in every
	// operation class.
	OperationIdentifiers bool
}

type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

func (g *Generator) Name() string { return "swiftgen" }

func (g *Generator) Shape() ir.Shape { return ir.Modern }

func (g *Generator) Generate(doc *ir.Document) ([]byte, error) {
	p := printer.New("  ")
	p.Line("//  This file was automatically generated and should not be edited.")
	p.Blank()
	p.Line("import Apollo")

	body := func() {
		for _, typ := range doc.TypesUsed {
			g.namedType(p, typ)
		}
		for _, name := range doc.OperationNames() {
			g.operation(p, doc, doc.Operations[name])
		}
		for _, name := range doc.FragmentNames() {
			g.fragment(p, doc, doc.Fragments[name])
		}
	}

	if g.opts.Namespace == "" {
		body()
	} else {
		p.Blank()
		p.Linef("public enum %s {", g.opts.Namespace)
		p.Indent(body)
		p.Line("}")
	}

	return p.Bytes(), nil
}

func (g *Generator) namedType(p *printer.Printer, typ *ir.NamedType) {
	switch typ.Kind {
	case ir.Enum:
		g.enum(p, typ)
	case ir.InputObject:
		g.inputObject(p, typ)
	case ir.Scalar:
		if g.opts.PassthroughCustomScalars {
			return
		}
		p.Blank()
		p.Comment("///", typ.Description)
		p.Linef("public typealias %s = String", typ.Name)
	}
}

func (g *Generator) enum(p *printer.Printer, typ *ir.NamedType) {
	p.Blank()
	p.Comment("///", typ.Description)
	p.Linef("public enum %s: RawRepresentable, Equatable, Hashable, CaseIterable, Apollo.JSONDecodable, Apollo.JSONEncodable {", typ.Name)
	p.Indent(func() {
		p.Line("public typealias RawValue = String")
		for _, v := range typ.Values {
			p.Comment("///", v.Description)
			if v.IsDeprecated {
				p.Linef("@available(*, deprecated, message: %q)", v.DeprecationReason)
			}
			p.Line("case " + enumCaseName(v.Name))
		}
		p.Line("/// Auto generated constant for unknown enum values")
		p.Line("case __unknown(RawValue)")

		p.Blank()
		p.Block("public init?(rawValue: RawValue) {", "}", func() {
			p.Block("switch rawValue {", "}", func() {
				for _, v := range typ.Values {
					p.Linef("case %q: self = .%s", v.Name, enumCaseName(v.Name))
				}
				p.Line("default: self = .__unknown(rawValue)")
			})
		})

		p.Blank()
		p.Block("public var rawValue: RawValue {", "}", func() {
			p.Block("switch self {", "}", func() {
				for _, v := range typ.Values {
					p.Linef("case .%s: return %q", enumCaseName(v.Name), v.Name)
				}
				p.Line("case .__unknown(let value): return value")
			})
		})

		p.Blank()
		p.Block(fmt.Sprintf("public static var allCases: [%s] {", typ.Name), "}", func() {
			p.Block("return [", "]", func() {
				for _, v := range typ.Values {
					p.Linef(".%s,", enumCaseName(v.Name))
				}
			})
		})
	})
	p.Line("}")
}

func (g *Generator) inputObject(p *printer.Printer, typ *ir.NamedType) {
	params := make([]string, 0, len(typ.Fields))
	entries := make([]string, 0, len(typ.Fields))
	for _, f := range typ.Fields {
		params = append(params, g.parameter(f.Name, f.Type))
		entries = append(entries, fmt.Sprintf("%q: %s", f.Name, escape(f.Name)))
	}

	p.Blank()
	p.Comment("///", typ.Description)
	p.Linef("public struct %s: GraphQLMapConvertible {", typ.Name)
	p.Indent(func() {
		p.Line("public var graphQLMap: GraphQLMap")
		p.Blank()
		p.Block(fmt.Sprintf("public init(%s) {", strings.Join(params, ", ")), "}", func() {
			p.Linef("graphQLMap = [%s]", mapLiteral(entries))
		})

		for _, f := range typ.Fields {
			typeName := g.inputType(f.Type)
			p.Blank()
			p.Comment("///", f.Description)
			p.Block(fmt.Sprintf("public var %s: %s {", escape(f.Name), typeName), "}", func() {
				p.Block("get {", "}", func() {
					if f.Type.Nullable() {
						p.Linef("return graphQLMap[%q] as? %s ?? %s.none", f.Name, typeName, typeName)
					} else {
						p.Linef("return graphQLMap[%q] as! %s", f.Name, typeName)
					}
				})
				p.Block("set {", "}", func() {
					p.Linef("graphQLMap.updateValue(newValue, forKey: %q)", f.Name)
				})
			})
		}
	})
	p.Line("}")
}

// inputType distinguishes an absent input field from an explicit null with
// a double optional.
func (g *Generator) inputType(t *ir.TypeRef) string {
	if t.Nullable() {
		return fmt.Sprintf("Swift.Optional<%s>", swiftType(t, g.leafName(t.Named())))
	}
	return swiftType(t, g.leafName(t.Named()))
}

func (g *Generator) parameter(name string, t *ir.TypeRef) string {
	param := fmt.Sprintf("%s: %s", escape(name), g.inputType(t))
	if t.Nullable() {
		param += " = nil"
	}
	return param
}

func mapLiteral(entries []string) string {
	if len(entries) == 0 {
		return ":"
	}
	return strings.Join(entries, ", ")
}

func (g *Generator) operation(p *printer.Printer, doc *ir.Document, op *ir.Operation) {
	className, protocol := op.OperationName+"Query", "GraphQLQuery"
	switch op.OperationType {
	case ir.Mutation:
		className, protocol = op.OperationName+"Mutation", "GraphQLMutation"
	case ir.Subscription:
		className, protocol = op.OperationName+"Subscription", "GraphQLSubscription"
	}

	p.Blank()
	p.Linef("public final class %s: %s {", className, protocol)
	p.Indent(func() {
		p.Line("/// The raw GraphQL definition of this operation.")
		p.Line("public let operationDefinition: String =")
		p.Indent(func() {
			for _, line := range multilineString(op.Source) {
				p.Line(line)
			}
		})
		p.Blank()
		p.Linef("public let operationName: String = %q", op.OperationName)

		if g.opts.OperationIdentifiers {
			p.Blank()
			p.Linef("public let operationIdentifier: String? = %q", op.OperationID)
		}

		if len(op.FragmentsReferenced) > 0 {
			doc := "operationDefinition"
			for _, name := range op.FragmentsReferenced {
				doc += fmt.Sprintf(".appending(\"\\n\" + %s.fragmentDefinition)", name)
			}
			p.Blank()
			p.Linef("public var queryDocument: String { return %s }", doc)
		}

		g.variables(p, op.Variables)

		p.Blank()
		g.selectionStruct(p, doc, "Data", "GraphQLSelectionSet", op.SelectionSet, nil)
	})
	p.Line("}")
}

func (g *Generator) variables(p *printer.Printer, vars []*ir.Variable) {
	params := make([]string, 0, len(vars))
	entries := make([]string, 0, len(vars))
	for _, v := range vars {
		params = append(params, g.variableParameter(v))
		entries = append(entries, fmt.Sprintf("%q: %s", v.Name, escape(v.Name)))
	}

	for _, v := range vars {
		p.Blank()
		p.Linef("public var %s: %s", escape(v.Name), swiftType(v.Type, g.leafName(v.Type.Named())))
	}

	p.Blank()
	p.Block(fmt.Sprintf("public init(%s) {", strings.Join(params, ", ")), "}", func() {
		for _, v := range vars {
			p.Linef("self.%s = %s", v.Name, escape(v.Name))
		}
	})

	if len(vars) == 0 {
		return
	}
	p.Blank()
	p.Block("public var variables: GraphQLMap? {", "}", func() {
		p.Linef("return [%s]", strings.Join(entries, ", "))
	})
}

func (g *Generator) variableParameter(v *ir.Variable) string {
	param := fmt.Sprintf("%s: %s", escape(v.Name), swiftType(v.Type, g.leafName(v.Type.Named())))
	if v.Type.Nullable() {
		param += " = nil"
	}
	return param
}

func (g *Generator) fragment(p *printer.Printer, doc *ir.Document, frag *ir.Fragment) {
	p.Blank()
	g.selectionStruct(p, doc, frag.FragmentName, "GraphQLFragment", frag.SelectionSet, func() {
		p.Line("/// The raw GraphQL definition of this fragment.")
		p.Line("public static let fragmentDefinition: String =")
		p.Indent(func() {
			for _, line := range multilineString(frag.Source) {
				p.Line(line)
			}
		})
		p.Blank()
	})
}
