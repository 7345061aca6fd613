package compiler

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/ir"
)

var builtinScalars = map[string]bool{
	"Int":     true,
	"Float":   true,
	"String":  true,
	"Boolean": true,
	"ID":      true,
}

// resolveType converts a schema type reference, wrappers included, into
// its IR form.
func (c *compiler) resolveType(t *ast.Type) (*ir.TypeRef, error) {
	var ref *ir.TypeRef
	if t.Elem != nil {
		inner, err := c.resolveType(t.Elem)
		if err != nil {
			return nil, err
		}
		ref = ir.ListOf(inner)
	} else {
		def, ok := c.schema.Types[t.NamedType]
		if !ok {
			return nil, &UnknownTypeError{Name: t.NamedType, Position: t.Position}
		}
		ref = ir.NamedOf(ir.TypeKind(def.Kind), def.Name)
	}

	if t.NonNull {
		return ir.NonNullOf(ref), nil
	}
	return ref, nil
}

func (c *compiler) typeDefinition(name string, pos *ast.Position) (*ast.Definition, error) {
	def, ok := c.schema.Types[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name, Position: pos}
	}
	return def, nil
}

// possibleTypes lists the object types def can resolve to at runtime,
// sorted by name.
func (c *compiler) possibleTypes(def *ast.Definition) []string {
	switch def.Kind {
	case ast.Object:
		return []string{def.Name}
	case ast.Interface, ast.Union:
		var names []string
		for _, t := range c.schema.GetPossibleTypes(def) {
			if t != nil && t.Kind == ast.Object {
				names = append(names, t.Name)
			}
		}
		slices.Sort(names)
		return slices.Compact(names)
	default:
		return nil
	}
}

// useOutputType records enums and custom scalars selected as leaf fields.
func (c *compiler) useOutputType(def *ast.Definition) {
	switch def.Kind {
	case ast.Enum:
		c.typesUsed[def.Name] = def
	case ast.Scalar:
		if !builtinScalars[def.Name] {
			c.typesUsed[def.Name] = def
		}
	}
}

// useInputType records the types a variable needs declared, descending
// into input object fields.
func (c *compiler) useInputType(def *ast.Definition) {
	if _, seen := c.typesUsed[def.Name]; seen {
		return
	}
	switch def.Kind {
	case ast.Enum:
		c.typesUsed[def.Name] = def
	case ast.Scalar:
		if !builtinScalars[def.Name] {
			c.typesUsed[def.Name] = def
		}
	case ast.InputObject:
		c.typesUsed[def.Name] = def
		for _, f := range def.Fields {
			if child, ok := c.schema.Types[f.Type.Name()]; ok {
				c.useInputType(child)
			}
		}
	}
}

func (c *compiler) namedTypes() ([]*ir.NamedType, error) {
	names := make([]string, 0, len(c.typesUsed))
	for name := range c.typesUsed {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]*ir.NamedType, 0, len(names))
	for _, name := range names {
		def := c.typesUsed[name]
		nt := &ir.NamedType{
			Kind:        ir.TypeKind(def.Kind),
			Name:        def.Name,
			Description: def.Description,
		}
		switch def.Kind {
		case ast.Enum:
			for _, v := range def.EnumValues {
				deprecated, reason := deprecation(v.Directives)
				nt.Values = append(nt.Values, &ir.EnumValue{
					Name:              v.Name,
					Description:       v.Description,
					IsDeprecated:      deprecated,
					DeprecationReason: reason,
				})
			}
		case ast.InputObject:
			for _, f := range def.Fields {
				typ, err := c.resolveType(f.Type)
				if err != nil {
					return nil, err
				}
				field := &ir.InputFieldType{
					Name:        f.Name,
					Description: f.Description,
					Type:        typ,
				}
				if f.DefaultValue != nil {
					field.DefaultValue = f.DefaultValue.String()
				}
				nt.Fields = append(nt.Fields, field)
			}
		}
		out = append(out, nt)
	}
	return out, nil
}

const defaultDeprecationReason = "No longer supported"

func deprecation(directives ast.DirectiveList) (bool, string) {
	dir := directives.ForName("deprecated")
	if dir == nil {
		return false, ""
	}
	if arg := dir.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return true, arg.Value.Raw
	}
	return true, defaultDeprecationReason
}
