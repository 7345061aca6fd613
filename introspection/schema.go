package introspection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

var builtinScalars = map[string]bool{
	"Int":     true,
	"Float":   true,
	"String":  true,
	"Boolean": true,
	"ID":      true,
}

var builtinDirectives = map[string]bool{
	"include":     true,
	"skip":        true,
	"deprecated":  true,
	"specifiedBy": true,
	"defer":       true,
	"oneOf":       true,
}

// ParseResult decodes a stored introspection result. Both the full response
// ({"data": {"__schema": ...}}) and the bare data member are accepted.
func ParseResult(b []byte) (*Query, error) {
	var envelope struct {
		Data   *Query         `json:"data"`
		Schema jsontext.Value `json:"__schema"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, fmt.Errorf("decode introspection result: %w", err)
	}
	if envelope.Data != nil {
		return envelope.Data, nil
	}
	if len(envelope.Schema) == 0 {
		return nil, errors.New("decode introspection result: no __schema member found")
	}

	var q Query
	if err := json.Unmarshal(b, &q); err != nil {
		return nil, fmt.Errorf("decode introspection result: %w", err)
	}
	return &q, nil
}

// SchemaFromIntrospection converts an introspection result into a schema
// document. Built-in scalars, directives and introspection types are left
// out so the document can be merged with the gqlparser prelude.
func SchemaFromIntrospection(sourceName string, q *Query) *ast.SchemaDocument {
	pos := &ast.Position{Src: &ast.Source{Name: sourceName}}
	doc := &ast.SchemaDocument{}

	schemaDef := &ast.SchemaDefinition{Position: pos}
	addRoot := func(op ast.Operation, ref *namedRef) {
		if ref == nil || ref.Name == nil {
			return
		}
		schemaDef.OperationTypes = append(schemaDef.OperationTypes, &ast.OperationTypeDefinition{
			Operation: op,
			Type:      *ref.Name,
			Position:  pos,
		})
	}
	addRoot(ast.Query, q.Schema.QueryType)
	addRoot(ast.Mutation, q.Schema.MutationType)
	addRoot(ast.Subscription, q.Schema.SubscriptionType)
	if len(schemaDef.OperationTypes) > 0 {
		doc.Schema = append(doc.Schema, schemaDef)
	}

	for _, typ := range q.Schema.Types {
		name := typ.TypeName()
		if strings.HasPrefix(name, "__") || builtinScalars[name] {
			continue
		}
		doc.Definitions = append(doc.Definitions, definition(typ, pos))
	}

	for _, dir := range q.Schema.Directives {
		if builtinDirectives[dir.Name] {
			continue
		}
		def := &ast.DirectiveDefinition{
			Name:        dir.Name,
			Description: deref(dir.Description),
			Arguments:   argumentDefinitions(dir.Args, pos),
			Position:    pos,
		}
		for _, loc := range dir.Locations {
			def.Locations = append(def.Locations, ast.DirectiveLocation(loc))
		}
		doc.Directives = append(doc.Directives, def)
	}

	return doc
}

// LoadSchema converts q and validates it together with the prelude.
func LoadSchema(sourceName string, q *Query) (*ast.Schema, error) {
	prelude, err := parser.ParseSchema(validator.Prelude)
	if err != nil {
		return nil, fmt.Errorf("parse prelude: %w", err)
	}
	prelude.Merge(SchemaFromIntrospection(sourceName, q))

	schema, err := validator.ValidateSchemaDocument(prelude)
	if err != nil {
		return nil, fmt.Errorf("validate introspected schema: %w", err)
	}
	return schema, nil
}

func definition(typ *FullType, pos *ast.Position) *ast.Definition {
	def := &ast.Definition{
		Kind:        ast.DefinitionKind(typ.Kind),
		Name:        typ.TypeName(),
		Description: deref(typ.Description),
		Position:    pos,
	}

	switch typ.Kind {
	case TypeKindObject, TypeKindInterface:
		for _, f := range typ.Fields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        f.Name,
				Description: deref(f.Description),
				Arguments:   argumentDefinitions(f.Args, pos),
				Type:        astType(&f.Type, pos),
				Directives:  deprecatedDirective(f.IsDeprecated, f.DeprecationReason, pos),
				Position:    pos,
			})
		}
		for _, intf := range typ.Interfaces {
			def.Interfaces = append(def.Interfaces, deref(intf.Name))
		}
	case TypeKindInputObject:
		for _, f := range typ.InputFields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        f.Name,
				Description: deref(f.Description),
				Type:        astType(&f.Type, pos),
				Position:    pos,
			})
		}
	case TypeKindEnum:
		for _, v := range typ.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
				Name:        v.Name,
				Description: deref(v.Description),
				Directives:  deprecatedDirective(v.IsDeprecated, v.DeprecationReason, pos),
				Position:    pos,
			})
		}
	case TypeKindUnion:
		for _, t := range typ.PossibleTypes {
			def.Types = append(def.Types, deref(t.Name))
		}
	}

	return def
}

// argumentDefinitions converts arguments. Default values are not carried
// over: they are printed GraphQL literals and nothing downstream reads
// argument defaults.
func argumentDefinitions(args []*InputValue, pos *ast.Position) ast.ArgumentDefinitionList {
	var out ast.ArgumentDefinitionList
	for _, arg := range args {
		out = append(out, &ast.ArgumentDefinition{
			Name:        arg.Name,
			Description: deref(arg.Description),
			Type:        astType(&arg.Type, pos),
			Position:    pos,
		})
	}
	return out
}

func astType(ref *TypeRef, pos *ast.Position) *ast.Type {
	switch ref.Kind {
	case TypeKindNonNull:
		inner := astType(ref.OfType, pos)
		inner.NonNull = true
		return inner
	case TypeKindList:
		return &ast.Type{Elem: astType(ref.OfType, pos), Position: pos}
	default:
		return &ast.Type{NamedType: deref(ref.Name), Position: pos}
	}
}

func deprecatedDirective(deprecated bool, reason *string, pos *ast.Position) ast.DirectiveList {
	if !deprecated {
		return nil
	}
	dir := &ast.Directive{Name: "deprecated", Position: pos}
	if reason != nil {
		dir.Arguments = ast.ArgumentList{{
			Name:     "reason",
			Value:    &ast.Value{Kind: ast.StringValue, Raw: *reason, Position: pos},
			Position: pos,
		}}
	}
	return ast.DirectiveList{dir}
}
