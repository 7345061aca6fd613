package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypeRef(t *testing.T) {
	t.Parallel()

	type want struct {
		str       string
		nullable  bool
		listDepth int
		named     string
		leaf      bool
		abstract  bool
	}

	tests := []struct {
		name string
		typ  *TypeRef
		want want
	}{
		{
			name: "nullable scalar",
			typ:  NamedOf(Scalar, "String"),
			want: want{str: "String", nullable: true, named: "String", leaf: true},
		},
		{
			name: "non-null list of non-null scalars",
			typ:  NonNullOf(ListOf(NonNullOf(NamedOf(Scalar, "String")))),
			want: want{str: "[String!]!", listDepth: 1, named: "String", leaf: true},
		},
		{
			name: "nested list of interfaces",
			typ:  ListOf(ListOf(NamedOf(Interface, "Character"))),
			want: want{str: "[[Character]]", nullable: true, listDepth: 2, named: "Character", abstract: true},
		},
		{
			name: "non-null enum",
			typ:  NonNullOf(NamedOf(Enum, "Episode")),
			want: want{str: "Episode!", named: "Episode", leaf: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := want{
				str:       tt.typ.String(),
				nullable:  tt.typ.Nullable(),
				listDepth: tt.typ.ListDepth(),
				named:     tt.typ.Named().Name,
				leaf:      tt.typ.IsLeaf(),
				abstract:  tt.typ.IsAbstract(),
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(want{})); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestDocument_OperationIDs(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Operations: map[string]*Operation{
			"Hero": {OperationName: "Hero", OperationID: "abc", SourceWithFragments: "query Hero { hero { name } }"},
			"Droid": {OperationName: "Droid", OperationID: "def", SourceWithFragments: "query Droid { droid { id } }"},
		},
	}

	want := OperationIDMap{
		"abc": {Name: "Hero", Source: "query Hero { hero { name } }"},
		"def": {Name: "Droid", Source: "query Droid { droid { id } }"},
	}
	if diff := cmp.Diff(want, doc.OperationIDs()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
	if diff := cmp.Diff([]string{"Droid", "Hero"}, doc.OperationNames()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}
