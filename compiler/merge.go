package compiler

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/ir"
)

// selection is one field occurrence after spreads and inline fragments
// have been inlined.
type selection struct {
	field *ast.Field
	// types narrows the occurrence to these possible types of the parent.
	// nil means it applies to every possible type.
	types []string
	// conditional is set when the occurrence sits under @skip or @include.
	conditional bool
}

func (s selection) appliesTo(typeName string) bool {
	return s.types == nil || slices.Contains(s.types, typeName)
}

type collected struct {
	selections []selection
	spreads    []string
}

// collect flattens set, selecting from parent, into out. types and
// conditional carry the narrowing of the enclosing fragments.
func (c *compiler) collect(parent *ast.Definition, possible []string, set ast.SelectionSet, types []string, conditional bool, out *collected) error {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			out.selections = append(out.selections, selection{
				field:       sel,
				types:       types,
				conditional: conditional || isConditional(sel.Directives),
			})

		case *ast.InlineFragment:
			narrowed, ok := types, true
			if sel.TypeCondition != "" {
				var err error
				narrowed, ok, err = c.narrow(parent, possible, types, sel.TypeCondition, sel.Position)
				if err != nil {
					return err
				}
			}
			if !ok {
				continue
			}
			if err := c.collect(parent, possible, sel.SelectionSet, narrowed, conditional || isConditional(sel.Directives), out); err != nil {
				return err
			}

		case *ast.FragmentSpread:
			frag, ok := c.fragments[sel.Name]
			if !ok {
				return &UnknownFragmentError{Name: sel.Name, Position: sel.Position}
			}
			if !slices.Contains(out.spreads, sel.Name) {
				out.spreads = append(out.spreads, sel.Name)
			}
			narrowed, ok, err := c.narrow(parent, possible, types, frag.TypeCondition, frag.Position)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := c.collect(parent, possible, frag.SelectionSet, narrowed, conditional || isConditional(sel.Directives), out); err != nil {
				return err
			}
		}
	}
	return nil
}

// narrow applies a type condition to the current narrowing. A condition the
// parent itself satisfies keeps the narrowing as is, so its fields are read
// from the parent. Any other condition yields the possible types it shares
// with the narrowing, even when that is all of them, since its fields may
// exist on the concrete types only. ok is false when nothing is left.
func (c *compiler) narrow(parent *ast.Definition, possible, types []string, condition string, pos *ast.Position) ([]string, bool, error) {
	def, err := c.typeDefinition(condition, pos)
	if err != nil {
		return nil, false, err
	}
	conditionTypes := c.possibleTypes(def)

	if !parent.IsAbstractType() {
		if !slices.Contains(conditionTypes, parent.Name) {
			return nil, false, nil
		}
		return types, true, nil
	}
	if def.Name == parent.Name || slices.Contains(parent.Interfaces, def.Name) {
		return types, true, nil
	}

	base := types
	if base == nil {
		base = possible
	}
	var res []string
	for _, t := range base {
		if slices.Contains(conditionTypes, t) {
			res = append(res, t)
		}
	}
	if len(res) == 0 {
		return nil, false, nil
	}
	return res, true, nil
}

func isConditional(directives ast.DirectiveList) bool {
	return directives.ForName("skip") != nil || directives.ForName("include") != nil
}

type fieldGroup struct {
	key     string
	members []selection
}

// groupByResponseKey groups selections sharing a response key, keeping the
// order in which each key was first seen.
func groupByResponseKey(sels []selection) []*fieldGroup {
	var groups []*fieldGroup
	byKey := make(map[string]*fieldGroup)
	for _, s := range sels {
		key := responseKey(s.field)
		g, ok := byKey[key]
		if !ok {
			g = &fieldGroup{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, s)
	}
	return groups
}

// checkMergeable verifies that every member of g can be merged into a single
// field.
func checkMergeable(parent *ast.Definition, g *fieldGroup) error {
	first := g.members[0].field
	for _, m := range g.members[1:] {
		other := m.field
		reason := ""
		switch {
		case first.Name != other.Name:
			reason = "they select different fields"
		case !sameArguments(first.Arguments, other.Arguments):
			reason = "they have differing arguments"
		case (len(first.SelectionSet) == 0) != (len(other.SelectionSet) == 0):
			reason = "they mix leaf and composite selections"
		}
		if reason != "" {
			return &FieldMergeConflictError{
				ResponseKey: g.key,
				FieldNames:  [2]string{first.Name, other.Name},
				ParentType:  parent.Name,
				Reason:      reason,
				Positions:   [2]*ast.Position{first.Position, other.Position},
			}
		}
	}
	return nil
}

// sameArguments compares argument lists by name and printed value,
// ignoring order.
func sameArguments(a, b ast.ArgumentList) bool {
	if len(a) != len(b) {
		return false
	}
	for _, arg := range a {
		other := b.ForName(arg.Name)
		if other == nil {
			return false
		}
		if arg.Value.String() != other.Value.String() {
			return false
		}
	}
	return true
}

// compileSelectionSet merges sets, all selecting from parent, into one IR
// selection set. Selections narrowed to some possible types stay out of
// the base fields and end up in the matching variants.
func (c *compiler) compileSelectionSet(parent *ast.Definition, sets ...ast.SelectionSet) (*ir.SelectionSet, error) {
	possible := c.possibleTypes(parent)

	col := &collected{}
	for _, set := range sets {
		if err := c.collect(parent, possible, set, nil, false, col); err != nil {
			return nil, err
		}
	}

	out := &ir.SelectionSet{
		ParentType:      parent.Name,
		PossibleTypes:   possible,
		FragmentSpreads: col.spreads,
	}

	var base []selection
	for _, s := range col.selections {
		if s.types == nil {
			base = append(base, s)
		}
	}
	fields, err := c.compileFields(parent, base)
	if err != nil {
		return nil, err
	}
	out.Fields = fields

	if !parent.IsAbstractType() {
		return out, nil
	}

	for _, typeName := range possible {
		var effective []selection
		touched := false
		for _, s := range col.selections {
			if s.appliesTo(typeName) {
				effective = append(effective, s)
				touched = touched || s.types != nil
			}
		}
		if !touched && !c.policy.exhaustiveVariants() {
			continue
		}

		concrete, err := c.typeDefinition(typeName, nil)
		if err != nil {
			return nil, err
		}
		fields, err := c.compileFields(concrete, effective)
		if err != nil {
			return nil, err
		}
		if out.Variants == nil {
			out.Variants = make(map[string]*ir.SelectionSet)
		}
		out.Variants[typeName] = &ir.SelectionSet{
			ParentType:    typeName,
			PossibleTypes: []string{typeName},
			Fields:        fields,
		}
	}

	return out, nil
}

func (c *compiler) compileFields(parent *ast.Definition, sels []selection) ([]*ir.Field, error) {
	groups := groupByResponseKey(sels)
	fields := make([]*ir.Field, 0, len(groups))
	for _, g := range groups {
		if err := checkMergeable(parent, g); err != nil {
			return nil, err
		}
		f, err := c.compileField(parent, g)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (c *compiler) compileField(parent *ast.Definition, g *fieldGroup) (*ir.Field, error) {
	first := g.members[0].field
	conditional := true
	for _, m := range g.members {
		conditional = conditional && m.conditional
	}

	if first.Name == typenameField {
		return &ir.Field{
			ResponseKey:   g.key,
			FieldName:     typenameField,
			Type:          ir.NonNullOf(ir.NamedOf(ir.Scalar, "String")),
			IsConditional: conditional,
		}, nil
	}

	def := parent.Fields.ForName(first.Name)
	if def == nil {
		return nil, &UnknownFieldError{TypeName: parent.Name, FieldName: first.Name, Position: first.Position}
	}
	typ, err := c.resolveType(def.Type)
	if err != nil {
		return nil, err
	}
	deprecated, reason := deprecation(def.Directives)

	field := &ir.Field{
		ResponseKey:       g.key,
		FieldName:         first.Name,
		Type:              typ,
		Description:       def.Description,
		IsConditional:     conditional,
		IsDeprecated:      deprecated,
		DeprecationReason: reason,
	}
	for _, arg := range first.Arguments {
		field.Args = append(field.Args, &ir.Argument{Name: arg.Name, Value: arg.Value.String()})
	}

	named, err := c.typeDefinition(def.Type.Name(), first.Position)
	if err != nil {
		return nil, err
	}
	if !named.IsCompositeType() {
		c.useOutputType(named)
		return field, nil
	}

	sets := make([]ast.SelectionSet, 0, len(g.members))
	for _, m := range g.members {
		sets = append(sets, m.field.SelectionSet)
	}
	field.SelectionSet, err = c.compileSelectionSet(named, sets...)
	if err != nil {
		return nil, err
	}
	return field, nil
}
