package compiler

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
)

// fragmentIndex holds every fragment definition of a document together
// with the transitive spread closure of each operation and fragment.
type fragmentIndex struct {
	defs         map[string]*ast.FragmentDefinition
	opClosure    map[string][]string
	fragClosures map[string][]string
}

type visitState int

const (
	unvisited visitState = iota
	inProgress
	done
)

// resolveFragments indexes fragment definitions and computes spread
// closures. It fails on unknown spreads and on spread cycles before any
// selection is merged.
func resolveFragments(doc *ast.QueryDocument) (*fragmentIndex, error) {
	idx := &fragmentIndex{
		defs:         make(map[string]*ast.FragmentDefinition, len(doc.Fragments)),
		opClosure:    make(map[string][]string, len(doc.Operations)),
		fragClosures: make(map[string][]string, len(doc.Fragments)),
	}
	for _, frag := range doc.Fragments {
		idx.defs[frag.Name] = frag
	}

	state := make(map[string]visitState, len(doc.Fragments))
	var stack []string

	var visit func(name string, pos *ast.Position) error
	visit = func(name string, pos *ast.Position) error {
		def, ok := idx.defs[name]
		if !ok {
			return &UnknownFragmentError{Name: name, Position: pos}
		}
		switch state[name] {
		case done:
			return nil
		case inProgress:
			start := slices.Index(stack, name)
			chain := append(slices.Clone(stack[start:]), name)
			return &FragmentCycleError{Chain: chain, Position: pos}
		}

		state[name] = inProgress
		stack = append(stack, name)
		var err error
		walkSpreads(def.SelectionSet, func(spread *ast.FragmentSpread) bool {
			err = visit(spread.Name, spread.Position)
			return err == nil
		})
		if err != nil {
			return err
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, frag := range doc.Fragments {
		if err := visit(frag.Name, frag.Position); err != nil {
			return nil, err
		}
	}
	for _, op := range doc.Operations {
		var err error
		walkSpreads(op.SelectionSet, func(spread *ast.FragmentSpread) bool {
			err = visit(spread.Name, spread.Position)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, frag := range doc.Fragments {
		idx.fragClosures[frag.Name] = idx.closure(frag.SelectionSet)
	}
	for _, op := range doc.Operations {
		idx.opClosure[op.Name] = idx.closure(op.SelectionSet)
	}

	return idx, nil
}

// closure lists the fragments reachable from set in first-seen depth-first
// order. Cycles must have been rejected already.
func (idx *fragmentIndex) closure(set ast.SelectionSet) []string {
	out := []string{}
	seen := make(map[string]bool)

	var walk func(set ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		walkSpreads(set, func(spread *ast.FragmentSpread) bool {
			if seen[spread.Name] {
				return true
			}
			seen[spread.Name] = true
			out = append(out, spread.Name)
			walk(idx.defs[spread.Name].SelectionSet)
			return true
		})
	}
	walk(set)

	return out
}

// walkSpreads calls fn for every fragment spread in set, in document order,
// descending into field sub-selections and inline fragments. It stops when
// fn returns false.
func walkSpreads(set ast.SelectionSet, fn func(*ast.FragmentSpread) bool) bool {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			if !walkSpreads(sel.SelectionSet, fn) {
				return false
			}
		case *ast.InlineFragment:
			if !walkSpreads(sel.SelectionSet, fn) {
				return false
			}
		case *ast.FragmentSpread:
			if !fn(sel) {
				return false
			}
		}
	}
	return true
}
