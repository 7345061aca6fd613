// Package compiler turns a schema and a set of operation and fragment
// definitions into the typed IR consumed by generators.
//
// Compile never modifies its inputs. Every call builds its own state, so
// Legacy and Modern compilations of the same schema and document may run
// concurrently.
package compiler

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/internal/log"
	"github.com/gqlgo/gqltypegen/ir"
)

type compiler struct {
	schema    *ast.Schema
	policy    Policy
	fragments map[string]*ast.FragmentDefinition
	typesUsed map[string]*ast.Definition
}

// CompileLegacy compiles into the Legacy shape.
func CompileLegacy(ctx context.Context, schema *ast.Schema, doc *ast.QueryDocument, opts Options) (*ir.Document, error) {
	return Compile(ctx, schema, doc, NewPolicy(ir.Legacy, opts))
}

// CompileModern compiles into the Modern shape. __typename is always
// injected regardless of opts.
func CompileModern(ctx context.Context, schema *ast.Schema, doc *ast.QueryDocument, opts Options) (*ir.Document, error) {
	return Compile(ctx, schema, doc, NewPolicy(ir.Modern, opts))
}

// Compile produces the IR of every operation and fragment in doc. It fails
// as a whole: no partial document is ever returned.
func Compile(ctx context.Context, schema *ast.Schema, doc *ast.QueryDocument, policy Policy) (*ir.Document, error) {
	logger := log.FromContext(ctx).WithValues("shape", policy.Shape())

	for _, op := range doc.Operations {
		if op.Name == "" {
			return nil, fmt.Errorf("%s: %w", withPosition(op.Position, string(op.Operation)), ErrAnonymousOperation)
		}
	}

	idx, err := resolveFragments(doc)
	if err != nil {
		return nil, err
	}

	c := &compiler{
		schema:    schema,
		policy:    policy,
		fragments: make(map[string]*ast.FragmentDefinition, len(doc.Fragments)),
		typesUsed: make(map[string]*ast.Definition),
	}

	for _, frag := range doc.Fragments {
		condition, err := c.typeDefinition(frag.TypeCondition, frag.Position)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", frag.Name, err)
		}
		c.fragments[frag.Name] = c.fragmentWithTypename(frag, condition)
	}

	out := &ir.Document{
		Shape:      policy.Shape(),
		Operations: make(map[string]*ir.Operation, len(doc.Operations)),
		Fragments:  make(map[string]*ir.Fragment, len(doc.Fragments)),
	}

	fragmentSources := make(map[string]string, len(doc.Fragments))
	for _, frag := range doc.Fragments {
		compiled, err := c.compileFragment(c.fragments[frag.Name], idx.fragClosures[frag.Name])
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", frag.Name, err)
		}
		out.Fragments[frag.Name] = compiled
		fragmentSources[frag.Name] = compiled.Source
		logger.V(1).Info("compiled fragment", "name", frag.Name)
	}

	for _, op := range doc.Operations {
		compiled, err := c.compileOperation(op, idx.opClosure[op.Name], fragmentSources)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", op.Name, err)
		}
		out.Operations[op.Name] = compiled
		logger.V(1).Info("compiled operation", "name", op.Name, "operationId", compiled.OperationID)
	}

	out.TypesUsed, err = c.namedTypes()
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *compiler) rootType(op *ast.OperationDefinition) (*ast.Definition, error) {
	var root *ast.Definition
	switch op.Operation {
	case ast.Query:
		root = c.schema.Query
	case ast.Mutation:
		root = c.schema.Mutation
	case ast.Subscription:
		root = c.schema.Subscription
	}
	if root == nil {
		return nil, &UnknownTypeError{Name: string(op.Operation) + " root", Position: op.Position}
	}
	return root, nil
}

func (c *compiler) compileOperation(op *ast.OperationDefinition, closure []string, fragmentSources map[string]string) (*ir.Operation, error) {
	root, err := c.rootType(op)
	if err != nil {
		return nil, err
	}
	op = c.operationWithTypename(op, root)

	vars := make([]*ir.Variable, 0, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		typ, err := c.resolveType(v.Type)
		if err != nil {
			return nil, err
		}
		variable := &ir.Variable{Name: v.Variable, Type: typ}
		if v.DefaultValue != nil {
			variable.DefaultValue = v.DefaultValue.String()
		}
		vars = append(vars, variable)
		c.useInputType(c.schema.Types[v.Type.Name()])
	}

	set, err := c.compileSelectionSet(root, op.SelectionSet)
	if err != nil {
		return nil, err
	}

	source := printOperation(op)
	full := sourceWithFragments(source, closure, fragmentSources)
	return &ir.Operation{
		OperationName:       op.Name,
		OperationType:       ir.OperationType(op.Operation),
		RootType:            root.Name,
		Variables:           vars,
		Source:              source,
		SourceWithFragments: full,
		OperationID:         operationID(full),
		FragmentsReferenced: closure,
		FilePath:            filePath(op.Position),
		SelectionSet:        set,
	}, nil
}

func (c *compiler) compileFragment(frag *ast.FragmentDefinition, closure []string) (*ir.Fragment, error) {
	condition, err := c.typeDefinition(frag.TypeCondition, frag.Position)
	if err != nil {
		return nil, err
	}
	set, err := c.compileSelectionSet(condition, frag.SelectionSet)
	if err != nil {
		return nil, err
	}
	return &ir.Fragment{
		FragmentName:        frag.Name,
		TypeCondition:       frag.TypeCondition,
		PossibleTypes:       c.possibleTypes(condition),
		Source:              printFragment(frag),
		FragmentsReferenced: closure,
		FilePath:            filePath(frag.Position),
		SelectionSet:        set,
	}, nil
}

func filePath(pos *ast.Position) string {
	if pos == nil || pos.Src == nil {
		return ""
	}
	return pos.Src.Name
}
