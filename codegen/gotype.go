package codegen

import (
	"fmt"
	gotypes "go/types"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/99designs/gqlgen/codegen/templates"

	"github.com/gqlgo/gqltypegen/ir"
)

const jsontextPath = "github.com/go-json-experiment/json/jsontext"

type Options struct {
	PassthroughCustomScalars bool
	CustomScalarsPrefix      string
}

// GoTypes is the Go model of a compiled document.
type GoTypes struct {
	Enums   []*Enum
	// Scalars are aliases of jsontext.Value.
	Scalars []*gotypes.Alias
	// Inputs holds input objects and operation variables; they are encoded
	// only and never get an UnmarshalJSON.
	Inputs     []gotypes.Type
	Responses  []gotypes.Type
	Operations []*Operation
}

type Enum struct {
	Named       *gotypes.Named
	Description string
	Values      []*EnumValue
}

type EnumValue struct {
	ConstName   string
	Value       string
	Description string
	Deprecated  string
}

type Operation struct {
	Name        string
	TypeName    string
	Document    string
	OperationID string
	Variables   gotypes.Type
}

type GoTypeGenerator struct {
	pkg       *gotypes.Package
	opts      Options
	doc       *ir.Document
	typesUsed map[string]*ir.NamedType

	types     map[string]gotypes.Type
	inputs    map[string]gotypes.Type
	named     map[string]gotypes.Type
	fragments map[string]*gotypes.Named
	enums     []*Enum
	scalars   []*gotypes.Alias
}

func NewGoTypeGenerator(pkg *gotypes.Package, opts Options) *GoTypeGenerator {
	return &GoTypeGenerator{
		pkg:       pkg,
		opts:      opts,
		typesUsed: map[string]*ir.NamedType{},
		types:     map[string]gotypes.Type{},
		inputs:    map[string]gotypes.Type{},
		named:     map[string]gotypes.Type{},
		fragments: map[string]*gotypes.Named{},
	}
}

func (g *GoTypeGenerator) CreateGoTypes(doc *ir.Document) *GoTypes {
	g.doc = doc
	for _, t := range doc.TypesUsed {
		g.typesUsed[t.Name] = t
	}

	for _, name := range doc.FragmentNames() {
		g.fragmentType(name)
	}

	var operations []*Operation
	for _, name := range doc.OperationNames() {
		op := doc.Operations[name]
		rootName := op.OperationName + operationSuffix(op.OperationType)

		t := g.newFields(rootName, op.SelectionSet).goStructType()
		g.newGoNamedType(rootName, true, t)

		operation := &Operation{
			Name:        op.OperationName,
			TypeName:    rootName,
			Document:    op.SourceWithFragments,
			OperationID: op.OperationID,
		}
		if len(op.Variables) > 0 {
			operation.Variables = g.variablesType(rootName+"Variables", op.Variables)
		}
		operations = append(operations, operation)
	}

	// Enums, scalars and inputs not reachable from any selection still
	// belong to the document.
	for _, t := range doc.TypesUsed {
		g.namedType(t.Name)
	}

	slices.SortFunc(g.enums, func(a, b *Enum) int {
		return strings.Compare(a.Named.Obj().Name(), b.Named.Obj().Name())
	})
	slices.SortFunc(g.scalars, func(a, b *gotypes.Alias) int {
		return strings.Compare(a.Obj().Name(), b.Obj().Name())
	})

	return &GoTypes{
		Enums:      g.enums,
		Scalars:    g.scalars,
		Inputs:     sortedTypes(g.inputs),
		Responses:  sortedTypes(g.types),
		Operations: operations,
	}
}

func sortedTypes(m map[string]gotypes.Type) []gotypes.Type {
	return slices.SortedFunc(maps.Values(m), func(a, b gotypes.Type) int {
		return strings.Compare(strings.TrimPrefix(a.String(), "*"), strings.TrimPrefix(b.String(), "*"))
	})
}

func operationSuffix(t ir.OperationType) string {
	switch t {
	case ir.Mutation:
		return "Mutation"
	case ir.Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}

func (g *GoTypeGenerator) fragmentType(name string) *gotypes.Named {
	if t, ok := g.fragments[name]; ok {
		return t
	}
	frag := g.doc.Fragments[name]
	typeName := templates.ToGo(name) + "Fragment"

	named := gotypes.NewNamed(gotypes.NewTypeName(0, g.pkg, typeName, nil), nil, nil)
	g.fragments[name] = named
	named.SetUnderlying(g.newFields(typeName, frag.SelectionSet).goStructType())
	g.types[named.String()] = named

	return named
}

func (g *GoTypeGenerator) newFields(parentTypeName string, set *ir.SelectionSet) Fields {
	fields := make(Fields, 0, len(set.Fields)+len(set.FragmentSpreads)+len(set.Variants))
	for _, f := range set.Fields {
		fields = append(fields, g.newField(parentTypeName, f))
	}

	// A fragment is embedded only when it applies to every possible type of
	// the selection. Narrower spreads are reachable through the variants.
	for _, name := range set.FragmentSpreads {
		frag, ok := g.doc.Fragments[name]
		if !ok || !covers(frag.PossibleTypes, set.PossibleTypes) {
			continue
		}
		t := g.fragmentType(name)
		fields = append(fields, newField(FragmentSpread, t, t.Obj().Name(), []string{`json:"-"`}))
	}

	for _, typeName := range set.VariantNames() {
		variantName := parentTypeName + "_On" + typeName
		structType := g.newFields(variantName, set.Variants[typeName]).goStructType()
		namedType := g.newGoNamedType(variantName, true, structType)
		tags := []string{`json:"-"`, fmt.Sprintf(`typename:"%s"`, typeName)}
		fields = append(fields, newField(InlineFragment, gotypes.NewPointer(namedType), "As"+typeName, tags))
	}

	return fields
}

func (g *GoTypeGenerator) newField(parentTypeName string, f *ir.Field) *Field {
	typ := f.Type
	// A field guarded by @skip or @include may be absent.
	if f.IsConditional && typ.NonNull() {
		typ = typ.OfType
	}
	tags := []string{fmt.Sprintf(`json:"%s"`, f.ResponseKey)}

	if f.SelectionSet == nil {
		return newField(Scalar, g.buildGoType(typ), f.ResponseKey, tags)
	}

	typeName := fieldTypeName(parentTypeName, f.ResponseKey)
	structType := g.newFields(typeName, f.SelectionSet).goStructType()
	namedType := g.newGoNamedType(typeName, true, structType)

	return newField(Object, g.wrapWithListAndNullability(namedType, typ), f.ResponseKey, tags)
}

// wrapWithListAndNullability wraps a base type according to the GraphQL
// type structure. Nullable values become pointers.
func (g *GoTypeGenerator) wrapWithListAndNullability(baseType gotypes.Type, t *ir.TypeRef) gotypes.Type {
	nonNull := t.NonNull()
	if nonNull {
		t = t.OfType
	}

	if t.Kind == ir.List {
		sliceType := gotypes.NewSlice(g.wrapWithListAndNullability(baseType, t.OfType))
		if !nonNull {
			return gotypes.NewPointer(sliceType)
		}
		return sliceType
	}

	if !nonNull {
		return gotypes.NewPointer(baseType)
	}
	return baseType
}

func (g *GoTypeGenerator) buildGoType(t *ir.TypeRef) gotypes.Type {
	return g.wrapWithListAndNullability(g.findGoType(t.Named()), t)
}

// findGoType resolves a named leaf or input type.
func (g *GoTypeGenerator) findGoType(t *ir.TypeRef) gotypes.Type {
	switch t.Name {
	case "String", "ID":
		return gotypes.Typ[gotypes.String]
	case "Int":
		return gotypes.Typ[gotypes.Int]
	case "Float":
		return gotypes.Typ[gotypes.Float64]
	case "Boolean":
		return gotypes.Typ[gotypes.Bool]
	}
	return g.namedType(t.Name)
}

func (g *GoTypeGenerator) namedType(name string) gotypes.Type {
	if t, ok := g.named[name]; ok {
		return t
	}

	def, ok := g.typesUsed[name]
	if !ok {
		// The compiler records every named leaf and input type it resolves.
		panic(fmt.Sprintf("type %s is not part of the document", name))
	}

	switch def.Kind {
	case ir.Enum:
		named := gotypes.NewNamed(gotypes.NewTypeName(0, g.pkg, name, nil), gotypes.Typ[gotypes.String], nil)
		g.named[name] = named
		enum := &Enum{Named: named, Description: def.Description}
		for _, v := range def.Values {
			value := &EnumValue{
				ConstName:   templates.ToGo(name + "_" + v.Name),
				Value:       v.Name,
				Description: v.Description,
			}
			if v.IsDeprecated {
				value.Deprecated = v.DeprecationReason
			}
			enum.Values = append(enum.Values, value)
		}
		g.enums = append(g.enums, enum)
		return named

	case ir.InputObject:
		named := gotypes.NewNamed(gotypes.NewTypeName(0, g.pkg, name, nil), nil, nil)
		g.named[name] = named
		vars := make([]*gotypes.Var, 0, len(def.Fields))
		tags := make([]string, 0, len(def.Fields))
		for _, f := range def.Fields {
			vars = append(vars, gotypes.NewField(0, nil, templates.ToGo(f.Name), g.buildGoType(f.Type), false))
			tags = append(tags, inputTag(f.Name, f.Type))
		}
		named.SetUnderlying(gotypes.NewStruct(vars, tags))
		g.inputs[named.String()] = named
		return named

	default:
		typeName := name
		if g.opts.PassthroughCustomScalars {
			typeName = g.opts.CustomScalarsPrefix + name
		}
		alias := gotypes.NewAlias(gotypes.NewTypeName(0, g.pkg, typeName, nil), jsontextValue())
		g.named[name] = alias
		if !g.opts.PassthroughCustomScalars {
			g.scalars = append(g.scalars, alias)
		}
		return alias
	}
}

func (g *GoTypeGenerator) variablesType(typeName string, vars []*ir.Variable) gotypes.Type {
	fields := make([]*gotypes.Var, 0, len(vars))
	tags := make([]string, 0, len(vars))
	for _, v := range vars {
		fields = append(fields, gotypes.NewField(0, nil, templates.ToGo(v.Name), g.buildGoType(v.Type), false))
		tags = append(tags, inputTag(v.Name, v.Type))
	}
	named := gotypes.NewNamed(gotypes.NewTypeName(0, g.pkg, typeName, nil), gotypes.NewStruct(fields, tags), nil)
	g.inputs[named.String()] = named
	return named
}

// inputTag omits nullable inputs left at their zero value so the server
// applies the default.
func inputTag(name string, t *ir.TypeRef) string {
	if t.Nullable() {
		return fmt.Sprintf(`json:"%s,omitzero"`, name)
	}
	return fmt.Sprintf(`json:"%s"`, name)
}

func jsontextValue() gotypes.Type {
	pkg := gotypes.NewPackage(jsontextPath, "jsontext")
	return gotypes.NewNamed(gotypes.NewTypeName(0, pkg, "Value", nil), gotypes.NewSlice(gotypes.Typ[gotypes.Byte]), nil)
}

func (g *GoTypeGenerator) newGoNamedType(typeName string, nonnull bool, t gotypes.Type) gotypes.Type {
	var namedType gotypes.Type
	namedType = gotypes.NewNamed(gotypes.NewTypeName(0, g.pkg, typeName, nil), t, nil)
	if !nonnull {
		namedType = gotypes.NewPointer(namedType)
	}
	g.types[namedType.String()] = namedType
	return namedType
}

func covers(fragmentTypes, types []string) bool {
	for _, t := range types {
		if !slices.Contains(fragmentTypes, t) {
			return false
		}
	}
	return true
}

func fieldTypeName(parentTypeName, fieldName string) string {
	return fmt.Sprintf("%s_%s", firstUpper(parentTypeName), templates.ToGo(fieldName))
}

func firstUpper(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

//////////////////////////////////////////////////////////////////////////////////////////////////
// Field

type TypeKind string

const (
	Scalar         TypeKind = "Scalar"
	Object         TypeKind = "Object"
	FragmentSpread TypeKind = "FragmentSpread"
	InlineFragment TypeKind = "InlineFragment"
)

type Field struct {
	Name     string
	Type     gotypes.Type
	Tags     []string
	TypeKind TypeKind
}

func newField(typeKind TypeKind, fieldType gotypes.Type, name string, tags []string) *Field {
	return &Field{
		Name:     name,
		Type:     fieldType,
		Tags:     tags,
		TypeKind: typeKind,
	}
}

func (r *Field) goVar() *gotypes.Var {
	if r.TypeKind == FragmentSpread {
		return gotypes.NewField(0, nil, r.Name, r.Type, true)
	}
	return gotypes.NewField(0, nil, templates.ToGo(r.Name), r.Type, false)
}

func (r *Field) joinTags() string {
	return strings.Join(r.Tags, " ")
}

type Fields []*Field

func (fs Fields) goStructType() *gotypes.Struct {
	// Go struct fields do not allow fields with the same name, so we remove duplicates
	fields := fs.uniqueByName()
	vars := make([]*gotypes.Var, 0, len(fields))
	for _, field := range fields {
		vars = append(vars, field.goVar())
	}
	tags := make([]string, 0, len(fields))
	for _, field := range fields {
		tags = append(tags, field.joinTags())
	}
	return gotypes.NewStruct(vars, tags)
}

func (fs Fields) uniqueByName() Fields {
	fieldMapByName := make(map[string]*Field, len(fs))
	for _, field := range fs {
		fieldMapByName[templates.ToGo(field.Name)] = field
	}
	return slices.SortedFunc(maps.Values(fieldMapByName), func(a *Field, b *Field) int {
		return strings.Compare(templates.ToGo(a.Name), templates.ToGo(b.Name))
	})
}
