package swiftgen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gqlgo/gqltypegen/compiler"
	"github.com/gqlgo/gqltypegen/internal/testutils"
	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/plugins/internal/plugintest"
)

func TestGenerator_Generate_Golden(t *testing.T) {
	t.Parallel()

	g := New(Options{})
	doc := plugintest.CompileDir(t, plugintest.HeroFixtureDir, g.Shape(), compiler.Options{})

	b, err := g.Generate(doc)
	if err != nil {
		t.Fatal(err)
	}
	testutils.CheckGoldenFile(t, b, "testdata/hero.swift")
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	g := New(Options{})
	doc := plugintest.Compile(t, g.Shape(), compiler.Options{})

	b, err := g.Generate(doc)
	if err != nil {
		t.Fatal(err)
	}

	got := string(b)
	for _, s := range []string{
		"import Apollo",
		"public final class HeroAndFriendsQuery: GraphQLQuery {",
		"public final class CreateReviewMutation: GraphQLMutation {",
		`public let operationName: String = "HeroAndFriends"`,
		`public var queryDocument: String { return operationDefinition.appending("\n" + HeroDetails.fragmentDefinition) }`,
		"public init(episode: Episode? = nil) {",
		"public init(episode: Episode? = nil, review: ReviewInput) {",
		`return ["episode": episode, "review": review]`,
		"public struct HeroDetails: GraphQLFragment {",
		"public var asHuman: AsHuman? {",
		"public struct AsDroid: GraphQLSelectionSet {",
		`GraphQLField("hero", arguments: ["episode": GraphQLVariable("episode")], type: .object(Hero.selections)),`,
		`GraphQLField("height", arguments: ["unit": "FOOT"], type: .scalar(Double.self)),`,
		`GraphQLField("human", alias: "luke", arguments: ["id": GraphQLVariable("id")], type: .object(Luke.selections)),`,
		`GraphQLField("appearsIn", type: .nonNull(.list(.scalar(Episode.self)))),`,
		"public var heroDetails: HeroDetails {",
		"case newhope",
		`case "NEWHOPE": self = .newhope`,
		"public struct ReviewInput: GraphQLMapConvertible {",
		"public init(stars: Int, commentary: Swift.Optional<String?> = nil, favoriteColor: Swift.Optional<ColorInput?> = nil) {",
		"public typealias DateTime = String",
		`@available(*, deprecated, message: "Use weight")`,
		`return (resultMap["friends"] as? [ResultMap?]).flatMap { (value: [ResultMap?]) -> [Friends?] in value.map { (value: ResultMap?) -> Friends? in value.flatMap { (value: ResultMap) -> Friends in Friends(unsafeResultMap: value) } } }`,
	} {
		if !strings.Contains(got, s) {
			t.Errorf("output does not contain %q", s)
		}
	}

	if strings.Contains(got, "operationIdentifier") {
		t.Error("operationIdentifier emitted without being requested")
	}
}

func TestGenerator_OperationIdentifiers(t *testing.T) {
	t.Parallel()

	g := New(Options{OperationIdentifiers: true, Namespace: "StarWars"})
	doc := plugintest.Compile(t, g.Shape(), compiler.Options{})

	b, err := g.Generate(doc)
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)

	for _, name := range doc.OperationNames() {
		want := `    public let operationIdentifier: String? = "` + doc.Operations[name].OperationID + `"`
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if !strings.Contains(got, "public enum StarWars {\n") {
		t.Error("namespace enum missing")
	}
	if !strings.HasSuffix(got, "  }\n}\n") {
		t.Errorf("namespace enum is not closed at the end of the file")
	}
}

func TestEnumCaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  string
	}{
		{value: "NEWHOPE", want: "newhope"},
		{value: "NEW_HOPE", want: "newHope"},
		{value: "_PRIVATE_VALUE", want: "privateValue"},
		{value: "DEFAULT", want: "`default`"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, enumCaseName(tt.value)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestArgumentValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  string
	}{
		{value: "$episode", want: `GraphQLVariable("episode")`},
		{value: "FOOT", want: `"FOOT"`},
		{value: `"luke"`, want: `"luke"`},
		{value: "-1.5", want: "-1.5"},
		{value: "true", want: "true"},
		{value: "null", want: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, argumentValue(tt.value)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestSwiftType(t *testing.T) {
	t.Parallel()

	got := swiftType(ir.NonNullOf(ir.ListOf(ir.NamedOf(ir.Object, "Friend"))), "Friend")
	if diff := cmp.Diff("[Friend?]", got); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}
