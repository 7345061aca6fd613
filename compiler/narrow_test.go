package compiler

import (
	"context"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlgo/gqltypegen/ir"
)

func loadSchemaSource(t *testing.T, sdl string) *ast.Schema {
	t.Helper()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: sdl})
	if err != nil {
		t.Fatal(err)
	}
	return schema
}

func typenameIRField() *ir.Field {
	return &ir.Field{
		ResponseKey: "__typename",
		FieldName:   "__typename",
		Type:        ir.NonNullOf(ir.NamedOf(ir.Scalar, "String")),
	}
}

func TestCompile_SingleImplementation(t *testing.T) {
	t.Parallel()

	schema := loadSchemaSource(t, heredoc.Doc(`
		type Query { hero: Character }
		interface Character { name: String! }
		type Human implements Character { name: String! homePlanet: String }
	`))
	query := `query Hero { hero { name ... on Human { homePlanet } } }`

	name := &ir.Field{ResponseKey: "name", FieldName: "name", Type: ir.NonNullOf(ir.NamedOf(ir.Scalar, "String"))}
	homePlanet := &ir.Field{ResponseKey: "homePlanet", FieldName: "homePlanet", Type: ir.NamedOf(ir.Scalar, "String")}

	hero := func(fields ...*ir.Field) *ir.Field {
		return &ir.Field{ResponseKey: "hero", FieldName: "hero", Type: ir.NamedOf(ir.Interface, "Character"), SelectionSet: &ir.SelectionSet{
			ParentType:    "Character",
			PossibleTypes: []string{"Human"},
			Fields:        fields,
		}}
	}

	legacyHero := hero(name)
	legacyHero.SelectionSet.Variants = map[string]*ir.SelectionSet{
		"Human": {ParentType: "Human", PossibleTypes: []string{"Human"}, Fields: []*ir.Field{name, homePlanet}},
	}
	modernHero := hero(typenameIRField(), name)
	modernHero.SelectionSet.Variants = map[string]*ir.SelectionSet{
		"Human": {ParentType: "Human", PossibleTypes: []string{"Human"}, Fields: []*ir.Field{typenameIRField(), name, homePlanet}},
	}

	tests := []struct {
		name   string
		policy Policy
		want   *ir.SelectionSet
	}{
		{
			name:   "legacy",
			policy: NewPolicy(ir.Legacy, Options{}),
			want: &ir.SelectionSet{
				ParentType:    "Query",
				PossibleTypes: []string{"Query"},
				Fields:        []*ir.Field{legacyHero},
			},
		},
		{
			name:   "modern",
			policy: NewPolicy(ir.Modern, Options{}),
			want: &ir.SelectionSet{
				ParentType:    "Query",
				PossibleTypes: []string{"Query"},
				Fields:        []*ir.Field{typenameIRField(), modernHero},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compile(context.Background(), schema, parseQuery(t, query), tt.policy)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got.Operations["Hero"].SelectionSet, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestCompile_TypeConditionNarrowing(t *testing.T) {
	t.Parallel()

	type want struct {
		base     []string
		variants map[string][]string
	}
	tests := []struct {
		name   string
		schema string
		query  string
		want   want
	}{
		{
			name: "parent type condition survives an interface without implementations",
			schema: heredoc.Doc(`
				type Query { hero: Character }
				interface Character { name: String! }
			`),
			query: heredoc.Doc(`
				query Hero { hero { ... on Character { name } ...F } }
				fragment F on Character { name }
			`),
			want: want{base: []string{"name"}, variants: map[string][]string{}},
		},
		{
			name: "fields missing on the parent go to the concrete variants",
			schema: heredoc.Doc(`
				type Query { hero: Character }
				interface Node { id: ID! }
				interface Character { name: String! }
				type Human implements Character & Node { id: ID! name: String! }
			`),
			query: `query Hero { hero { name ... on Node { id } } }`,
			want: want{
				base:     []string{"name"},
				variants: map[string][]string{"Human": {"name", "id"}},
			},
		},
		{
			name: "interface implemented by the parent stays in the base",
			schema: heredoc.Doc(`
				type Query { hero: Character }
				interface Node { id: ID! }
				interface Character implements Node { id: ID! name: String! }
				type Human implements Character & Node { id: ID! name: String! }
				type Droid implements Character & Node { id: ID! name: String! }
			`),
			query: `query Hero { hero { name ... on Node { id } } }`,
			want: want{base: []string{"name", "id"}, variants: map[string][]string{}},
		},
		{
			name: "object parent drops conditions it does not satisfy",
			schema: heredoc.Doc(`
				type Query { human: Human }
				interface Character { name: String! }
				type Human implements Character { name: String! homePlanet: String }
				type Droid implements Character { name: String! primaryFunction: String }
			`),
			query: `query Human { human { ... on Character { name } ... on Human { homePlanet } ... on Droid { primaryFunction } } }`,
			want: want{base: []string{"name", "homePlanet"}, variants: map[string][]string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schema := loadSchemaSource(t, tt.schema)
			got, err := CompileLegacy(context.Background(), schema, parseQuery(t, tt.query), Options{})
			if err != nil {
				t.Fatal(err)
			}

			var root *ir.SelectionSet
			for _, op := range got.Operations {
				root = op.SelectionSet
			}
			set := root.Fields[0].SelectionSet

			g := want{base: fieldKeys(set.Fields), variants: map[string][]string{}}
			for name, v := range set.Variants {
				g.variants[name] = fieldKeys(v.Fields)
			}
			if diff := cmp.Diff(tt.want, g, cmp.AllowUnexported(want{})); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}
