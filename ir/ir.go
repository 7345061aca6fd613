// Package ir defines the typed intermediate representation produced by the
// compiler and consumed by every generator.
//
// Values in this package are built once per compilation and must be treated
// as read-only afterwards. Generating for another target recompiles from the
// same schema and documents instead of modifying an existing Document.
package ir

import (
	"maps"
	"slices"
)

// Shape selects which of the two IR layouts a compilation produces.
type Shape string

const (
	// Legacy keeps the flatter layout: discriminator injection is opt-in and
	// variants exist only for possible types narrowed by a type condition.
	Legacy Shape = "legacy"
	// Modern always injects __typename and emits one variant per possible type.
	Modern Shape = "modern"
)

type Document struct {
	Shape      Shape                 `json:"shape"`
	Operations map[string]*Operation `json:"operations"`
	Fragments  map[string]*Fragment  `json:"fragments"`
	TypesUsed  []*NamedType          `json:"typesUsed"`
}

// OperationNames returns operation names in sorted order.
func (d *Document) OperationNames() []string {
	return slices.Sorted(maps.Keys(d.Operations))
}

// FragmentNames returns fragment names in sorted order.
func (d *Document) FragmentNames() []string {
	return slices.Sorted(maps.Keys(d.Fragments))
}

// OperationIDs builds the persisted-query map keyed by operation id.
func (d *Document) OperationIDs() OperationIDMap {
	ids := make(OperationIDMap, len(d.Operations))
	for _, op := range d.Operations {
		ids[op.OperationID] = OperationIDEntry{
			Name:   op.OperationName,
			Source: op.SourceWithFragments,
		}
	}
	return ids
}

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

type Operation struct {
	OperationName       string        `json:"operationName"`
	OperationType       OperationType `json:"operationType"`
	RootType            string        `json:"rootType"`
	Variables           []*Variable   `json:"variables"`
	Source              string        `json:"source"`
	SourceWithFragments string        `json:"sourceWithFragments"`
	OperationID         string        `json:"operationId"`
	FragmentsReferenced []string      `json:"fragmentsReferenced"`
	FilePath            string        `json:"filePath,omitempty"`
	SelectionSet        *SelectionSet `json:"selectionSet"`
}

type Fragment struct {
	FragmentName        string        `json:"fragmentName"`
	TypeCondition       string        `json:"typeCondition"`
	PossibleTypes       []string      `json:"possibleTypes"`
	Source              string        `json:"source"`
	FragmentsReferenced []string      `json:"fragmentsReferenced"`
	FilePath            string        `json:"filePath,omitempty"`
	SelectionSet        *SelectionSet `json:"selectionSet"`
}

type Variable struct {
	Name         string   `json:"name"`
	Type         *TypeRef `json:"type"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

// SelectionSet is one node of the selection tree.
//
// Fields holds the base selection, valid for every possible type. When the
// parent type is an interface or union, Variants maps a concrete type name to
// the effective selection for that type (base fields merged with the fields
// selected under type conditions that apply to it).
type SelectionSet struct {
	ParentType      string                   `json:"parentType"`
	PossibleTypes   []string                 `json:"possibleTypes"`
	Fields          []*Field                 `json:"fields"`
	FragmentSpreads []string                 `json:"fragmentSpreads,omitempty"`
	Variants        map[string]*SelectionSet `json:"variants,omitempty"`
}

// VariantNames returns the keys of Variants in sorted order.
func (s *SelectionSet) VariantNames() []string {
	return slices.Sorted(maps.Keys(s.Variants))
}

// Field returns the field with the given response key, or nil.
func (s *SelectionSet) Field(responseKey string) *Field {
	for _, f := range s.Fields {
		if f.ResponseKey == responseKey {
			return f
		}
	}
	return nil
}

type Field struct {
	ResponseKey       string        `json:"responseName"`
	FieldName         string        `json:"fieldName"`
	Args              []*Argument   `json:"args,omitempty"`
	Type              *TypeRef      `json:"type"`
	Description       string        `json:"description,omitempty"`
	IsConditional     bool          `json:"isConditional,omitzero"`
	IsDeprecated      bool          `json:"isDeprecated,omitzero"`
	DeprecationReason string        `json:"deprecationReason,omitempty"`
	SelectionSet      *SelectionSet `json:"selectionSet,omitempty"`
}

type Argument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NamedType describes a schema type a generator has to declare on its own:
// enums, input objects and custom scalars.
type NamedType struct {
	Kind        TypeKind          `json:"kind"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Values      []*EnumValue      `json:"values,omitempty"`
	Fields      []*InputFieldType `json:"fields,omitempty"`
}

type EnumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	IsDeprecated      bool   `json:"isDeprecated,omitzero"`
	DeprecationReason string `json:"deprecationReason,omitempty"`
}

type InputFieldType struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Type         *TypeRef `json:"type"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

// OperationIDMap is the persisted-query artifact written next to the
// generated sources.
type OperationIDMap map[string]OperationIDEntry

type OperationIDEntry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}
