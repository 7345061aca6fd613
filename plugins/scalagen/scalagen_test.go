package scalagen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gqlgo/gqltypegen/compiler"
	"github.com/gqlgo/gqltypegen/internal/testutils"
	"github.com/gqlgo/gqltypegen/plugins/internal/plugintest"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	type want struct {
		contains []string
	}

	tests := []struct {
		name string
		opts Options
		want want
	}{
		{
			name: "default",
			opts: Options{},
			want: want{
				contains: []string{
					"object HeroAndFriendsQuery extends com.apollographql.scalajs.GraphQLQuery {",
					"object CreateReviewMutation extends com.apollographql.scalajs.GraphQLMutation {",
					"  case class Variables(episode: Option[Episode] = None)",
					"  case class Data(hero: Option[Data.Hero])",
					`    """query HeroAndFriends($episode: Episode) {`,
					"    case class Hero(name: String, appearsIn: Seq[Option[Episode]], friends: Option[Seq[Option[Hero.Friends]]], asDroid: Option[Hero.AsDroid], asHuman: Option[Hero.AsHuman])",
					"    case class CreateReview(episode: Option[Episode], stars: Int, commentary: Option[String], createdAt: Option[String])",
					"sealed abstract class Episode(val value: String)",
					`  case object NEWHOPE extends Episode("NEWHOPE")`,
					"case class ReviewInput(stars: Int, commentary: Option[String] = None, favoriteColor: Option[ColorInput] = None)",
					"case class HeroDetails(name: String, appearsIn: Seq[Option[Episode]], asDroid: Option[HeroDetails.AsDroid], asHuman: Option[HeroDetails.AsHuman])",
					"  val fragmentString =",
					`  val possibleTypes = scala.collection.Set("Droid", "Human")`,
				},
			},
		},
		{
			name: "namespace and passthrough scalars",
			opts: Options{Namespace: "starwars", PassthroughCustomScalars: true, CustomScalarsPrefix: "My"},
			want: want{
				contains: []string{
					"//  This file was automatically generated and should not be edited.\n\npackage starwars\n",
					"createdAt: Option[MyDateTime]",
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
	testutils.CheckGoldenFile(t, b, "testdata/hero.scala")
}

func TestStripMargin(t *testing.T) {
	t.Parallel()

	got := stripMargin("query Q {\n  a\n}")
	want := []string{
		`"""query Q {`,
		`  |  a`,
		`  |}""".stripMargin`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}
