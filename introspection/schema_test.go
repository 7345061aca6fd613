package introspection

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestParseResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "full response",
			input: `{"data":{"__schema":{"queryType":{"name":"Query"},"types":[]}}}`,
			want:  "Query",
		},
		{
			name:  "bare data member",
			input: `{"__schema":{"queryType":{"name":"Root"},"types":[]}}`,
			want:  "Root",
		},
		{
			name:    "not an introspection result",
			input:   `{"foo":1}`,
			wantErr: true,
		},
		{
			name:    "broken json",
			input:   `{"data":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseResult([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResult() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, *got.Schema.QueryType.Name); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	b, err := os.ReadFile("testdata/introspection.json")
	if err != nil {
		t.Fatal(err)
	}
	q, err := ParseResult(b)
	if err != nil {
		t.Fatal(err)
	}

	schema, err := LoadSchema("introspection.json", q)
	if err != nil {
		t.Fatal(err)
	}

	if schema.Query == nil || schema.Query.Name != "Query" {
		t.Fatalf("unexpected query root %v", schema.Query)
	}
	if schema.Mutation != nil {
		t.Errorf("unexpected mutation root %v", schema.Mutation)
	}

	var possible []string
	for _, def := range schema.GetPossibleTypes(schema.Types["SearchResult"]) {
		possible = append(possible, def.Name)
	}
	if diff := cmp.Diff([]string{"Human", "Droid"}, possible); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
	if got := len(schema.GetPossibleTypes(schema.Types["Character"])); got != 2 {
		t.Errorf("want 2 implementations of Character, got %d", got)
	}

	search := schema.Query.Fields.ForName("search")
	if diff := cmp.Diff("[SearchResult]!", search.Type.String()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}

	mass := schema.Types["Human"].Fields.ForName("mass")
	dir := mass.Directives.ForName("deprecated")
	if dir == nil || dir.Arguments.ForName("reason").Value.Raw != "Use weight" {
		t.Errorf("mass must carry its deprecation reason, got %v", mass.Directives)
	}

	holiday := schema.Types["Episode"].EnumValues.ForName("HOLIDAY")
	if holiday.Directives.ForName("deprecated") == nil {
		t.Error("HOLIDAY must be deprecated")
	}

	if schema.Types["DateTime"].Kind != ast.Scalar {
		t.Errorf("DateTime must be a scalar")
	}
	if schema.Types["ReviewInput"].Kind != ast.InputObject {
		t.Errorf("ReviewInput must be an input object")
	}
	if schema.Types["String"].Description == "Built-in String" {
		t.Error("built-in scalars must come from the prelude")
	}
	if schema.Directives["cached"] == nil {
		t.Error("custom directives must be kept")
	}
}
