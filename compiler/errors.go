package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

var ErrAnonymousOperation = errors.New("anonymous operations are not supported")

// FragmentCycleError reports a fragment that spreads itself, directly or
// through other fragments. Chain starts and ends with the same name.
type FragmentCycleError struct {
	Chain    []string
	Position *ast.Position
}

func (e *FragmentCycleError) Error() string {
	return withPosition(e.Position, fmt.Sprintf("fragment cycle detected: %s", strings.Join(e.Chain, " -> ")))
}

type UnknownFragmentError struct {
	Name     string
	Position *ast.Position
}

func (e *UnknownFragmentError) Error() string {
	return withPosition(e.Position, fmt.Sprintf("unknown fragment %q", e.Name))
}

type UnknownTypeError struct {
	Name     string
	Position *ast.Position
}

func (e *UnknownTypeError) Error() string {
	return withPosition(e.Position, fmt.Sprintf("unknown type %q", e.Name))
}

type UnknownFieldError struct {
	TypeName  string
	FieldName string
	Position  *ast.Position
}

func (e *UnknownFieldError) Error() string {
	return withPosition(e.Position, fmt.Sprintf("cannot query field %q on type %q", e.FieldName, e.TypeName))
}

// FieldMergeConflictError reports two selections sharing a response key
// that cannot be merged into one field.
type FieldMergeConflictError struct {
	ResponseKey string
	FieldNames  [2]string
	ParentType  string
	Reason      string
	Positions   [2]*ast.Position
}

func (e *FieldMergeConflictError) Error() string {
	msg := fmt.Sprintf("fields %q conflict because %s (%s and %s on %s)",
		e.ResponseKey, e.Reason, e.FieldNames[0], e.FieldNames[1], e.ParentType)
	return withPosition(e.Positions[1], msg)
}

func withPosition(pos *ast.Position, msg string) string {
	if pos == nil {
		return msg
	}
	if pos.Src != nil && pos.Src.Name != "" {
		return fmt.Sprintf("%s:%d:%d: %s", pos.Src.Name, pos.Line, pos.Column, msg)
	}
	return fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, msg)
}
