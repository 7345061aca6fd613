package compiler

import (
	"github.com/vektah/gqlparser/v2/ast"
)

const typenameField = "__typename"

// withTypename returns a copy of set in which __typename has been added
// wherever the policy asks for it. The input is never modified; untouched
// fragment spreads are shared with the original.
func (c *compiler) withTypename(parent *ast.Definition, set ast.SelectionSet, site selectionSite) ast.SelectionSet {
	inject := c.policy.injectTypename(parent, site)

	out := make(ast.SelectionSet, 0, len(set)+1)
	if inject {
		out = append(out, &ast.Field{Alias: typenameField, Name: typenameField})
	}

	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			if inject && responseKey(sel) == typenameField && sel.Name == typenameField && len(sel.Directives) == 0 {
				continue
			}
			cp := *sel
			if len(sel.SelectionSet) != 0 {
				cp.SelectionSet = c.withTypename(c.fieldTypeDefinition(parent, sel), sel.SelectionSet, fieldSelection)
			}
			out = append(out, &cp)
		case *ast.InlineFragment:
			cp := *sel
			condition := parent
			if sel.TypeCondition != "" {
				condition = c.schema.Types[sel.TypeCondition]
			}
			cp.SelectionSet = c.withTypename(condition, sel.SelectionSet, inlineFragmentBody)
			out = append(out, &cp)
		default:
			out = append(out, sel)
		}
	}

	return out
}

// fieldTypeDefinition looks up the named type of field on parent, or nil
// when either is unknown. Unknown fields are reported during compilation.
func (c *compiler) fieldTypeDefinition(parent *ast.Definition, field *ast.Field) *ast.Definition {
	if parent == nil {
		return nil
	}
	def := parent.Fields.ForName(field.Name)
	if def == nil {
		return nil
	}
	return c.schema.Types[def.Type.Name()]
}

func (c *compiler) operationWithTypename(op *ast.OperationDefinition, root *ast.Definition) *ast.OperationDefinition {
	cp := *op
	cp.SelectionSet = c.withTypename(root, op.SelectionSet, operationRoot)
	return &cp
}

func (c *compiler) fragmentWithTypename(frag *ast.FragmentDefinition, condition *ast.Definition) *ast.FragmentDefinition {
	cp := *frag
	cp.SelectionSet = c.withTypename(condition, frag.SelectionSet, fragmentRoot)
	return &cp
}

func responseKey(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}
