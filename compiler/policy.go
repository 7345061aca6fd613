package compiler

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/ir"
)

type Options struct {
	// AddTypename requests __typename in every composite selection set
	// below the operation root. Modern compilation always behaves as if it
	// were set.
	AddTypename bool
}

// Policy is the immutable compilation policy shared by every stage of one
// compilation. Build it with NewPolicy.
type Policy struct {
	shape       ir.Shape
	addTypename bool
}

func NewPolicy(shape ir.Shape, opts Options) Policy {
	p := Policy{shape: shape, addTypename: opts.AddTypename}
	if shape == ir.Modern {
		p.addTypename = true
	}
	return p
}

func (p Policy) Shape() ir.Shape { return p.shape }

func (p Policy) AddTypename() bool { return p.addTypename }

type selectionSite int

const (
	operationRoot selectionSite = iota
	fragmentRoot
	fieldSelection
	inlineFragmentBody
)

// injectTypename decides whether a selection set at site, selecting from
// parent, receives a leading __typename field.
func (p Policy) injectTypename(parent *ast.Definition, site selectionSite) bool {
	if p.shape == ir.Modern {
		switch site {
		case operationRoot, fragmentRoot:
			return true
		case fieldSelection:
			return parent != nil && parent.IsAbstractType()
		default:
			return false
		}
	}

	if !p.addTypename {
		return false
	}
	return site == fragmentRoot || site == fieldSelection
}

// exhaustiveVariants reports whether every possible type of an abstract
// parent gets a variant, or only the ones narrowed by a type condition.
func (p Policy) exhaustiveVariants() bool {
	return p.shape == ir.Modern
}
