package querygen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/gqlgo/gqltypegen/compiler"
	"github.com/gqlgo/gqltypegen/internal/testutils"
	"github.com/gqlgo/gqltypegen/plugins/internal/plugintest"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	type want struct {
		contains    []string
		notContains []string
	}

	tests := []struct {
		name string
		opts Options
		want want
	}{
		{
			name: "starwarsのオペレーションからGoの型を生成する",
			opts: Options{Package: "starwars"},
			want: want{
				contains: []string{
					"// Code generated by gqltypegen, DO NOT EDIT.\n\npackage starwars\n",
					"\t\"github.com/go-json-experiment/json\"\n",
					"\t\"github.com/go-json-experiment/json/jsontext\"\n",
					"type Episode string\n",
					"type DateTime = jsontext.Value\n",
					"type ReviewInput struct {\n",
					"type HeroAndFriendsQueryVariables struct {\n",
					"const HeroAndFriendsQueryDocument = `query HeroAndFriends",
					"const CreateReviewMutationDocument = `mutation CreateReview",
					"func (t *HeroAndFriendsQuery_Hero) UnmarshalJSON(data []byte) error {\n",
					"\tHeroDetailsFragment ",
					"\tcase \"Human\":\n",
					"func (t *HeroAndFriendsQuery_Hero) GetHeroDetailsFragment() HeroDetailsFragment {\n",
				},
				notContains: []string{
					"func (t *HeroDetailsFragment) UnmarshalJSON",
					"OperationID",
				},
			},
		},
		{
			name: "カスタムスカラーをそのまま参照する",
			opts: Options{Package: "starwars", PassthroughCustomScalars: true, CustomScalarsPrefix: "My"},
			want: want{
				contains: []string{
					"*MyDateTime",
				},
				notContains: []string{
					"type DateTime",
					"type MyDateTime",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New(tt.opts)
			doc := plugintest.Compile(t, g.Shape(), compiler.Options{})

			b, err := g.Generate(doc)
			if err != nil {
				t.Fatal(err)
			}
			got := string(b)
			for _, s := range tt.want.contains {
				if !strings.Contains(got, s) {
					t.Errorf("output does not contain %q:\n%s", s, got)
				}
			}
			for _, s := range tt.want.notContains {
				if strings.Contains(got, s) {
					t.Errorf("output contains %q", s)
				}
			}
		})
	}
}

func TestGenerator_Generate_Golden(t *testing.T) {
	t.Parallel()

	g := New(Options{})
	doc := plugintest.CompileDir(t, plugintest.HeroFixtureDir, g.Shape(), compiler.Options{})

	b, err := g.Generate(doc)
	if err != nil {
		t.Fatal(err)
	}
	testutils.CheckGoldenFile(t, b, "testdata/hero.go.txt")
}

func TestGenerator_OperationIDs(t *testing.T) {
	t.Parallel()

	g := New(Options{OperationIDs: true})
	doc := plugintest.Compile(t, g.Shape(), compiler.Options{})

	b, err := g.Generate(doc)
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)

	if !strings.HasPrefix(got, "// Code generated by gqltypegen, DO NOT EDIT.\n\npackage generated\n") {
		t.Errorf("unexpected header:\n%s", got)
	}
	want := `const HeroAndFriendsQueryOperationID = "` + doc.Operations["HeroAndFriends"].OperationID + `"`
	if !strings.Contains(got, want) {
		t.Errorf("output does not contain %q", want)
	}
}

func TestGoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "raw文字列リテラルにする", in: "query Q {\n  a\n}", want: "`query Q {\n  a\n}`"},
		{name: "バッククォートを含む場合は通常の文字列リテラルにする", in: "query Q { a(s: \"`\") }", want: "\"query Q { a(s: \\\"`\\\") }\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := goString(tt.in); got != tt.want {
				t.Errorf("goString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerator_TypeCheck(t *testing.T) {
	t.Parallel()

	g := New(Options{Package: "starwars", OperationIDs: true})
	doc := plugintest.Compile(t, g.Shape(), compiler.Options{})

	b, err := g.Generate(doc)
	if err != nil {
		t.Fatal(err)
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "starwars.go", b, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse generated code: %v\n%s", err, b)
	}

	conf := types.Config{Importer: jsonImporter{}}
	pkg, err := conf.Check("starwars", fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatalf("type check generated code: %v\n%s", err, b)
	}

	dateTime, ok := pkg.Scope().Lookup("DateTime").(*types.TypeName)
	if !ok {
		t.Fatal("DateTime is not declared")
	}
	if !dateTime.IsAlias() {
		t.Errorf("DateTime must be an alias of jsontext.Value, got %s", dateTime.Type())
	}
}

// jsonImporter provides the parts of json and jsontext the generated code
// refers to.
type jsonImporter struct{}

func (jsonImporter) Import(path string) (*types.Package, error) {
	switch path {
	case jsontextPath:
		pkg := types.NewPackage(jsontextPath, "jsontext")
		value := types.NewTypeName(token.NoPos, pkg, "Value", nil)
		types.NewNamed(value, types.NewSlice(types.Typ[types.Byte]), nil)
		pkg.Scope().Insert(value)
		pkg.MarkComplete()
		return pkg, nil

	case jsonPath:
		pkg := types.NewPackage(jsonPath, "json")
		options := types.NewTypeName(token.NoPos, pkg, "Options", nil)
		types.NewNamed(options, types.NewInterfaceType(nil, nil).Complete(), nil)
		pkg.Scope().Insert(options)

		params := types.NewTuple(
			types.NewParam(token.NoPos, pkg, "in", types.NewSlice(types.Typ[types.Byte])),
			types.NewParam(token.NoPos, pkg, "out", types.NewInterfaceType(nil, nil).Complete()),
			types.NewParam(token.NoPos, pkg, "opts", types.NewSlice(options.Type())),
		)
		results := types.NewTuple(types.NewParam(token.NoPos, pkg, "", types.Universe.Lookup("error").Type()))
		pkg.Scope().Insert(types.NewFunc(token.NoPos, pkg, "Unmarshal", types.NewSignatureType(nil, nil, nil, params, results, true)))
		pkg.MarkComplete()
		return pkg, nil
	}
	return nil, fmt.Errorf("unexpected import %q", path)
}
