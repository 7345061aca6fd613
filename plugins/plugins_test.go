package plugins

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gqlgo/gqltypegen/config"
	"github.com/gqlgo/gqltypegen/ir"
	"github.com/gqlgo/gqltypegen/queryparser"
)

func TestNew(t *testing.T) {
	t.Parallel()

	type want struct {
		name  string
		shape ir.Shape
	}

	tests := []struct {
		target config.Target
		want   want
	}{
		{target: config.TargetJSON, want: want{name: "jsongen", shape: ir.Legacy}},
		{target: config.TargetTS, want: want{name: "tsgen", shape: ir.Legacy}},
		{target: config.TargetTypeScript, want: want{name: "tsgen", shape: ir.Legacy}},
		{target: config.TargetFlow, want: want{name: "tsgen", shape: ir.Legacy}},
		{target: config.TargetScala, want: want{name: "scalagen", shape: ir.Legacy}},
		{target: config.TargetFlowModern, want: want{name: "flowmoderngen", shape: ir.Modern}},
		{target: config.TargetSwift, want: want{name: "swiftgen", shape: ir.Modern}},
		{target: config.TargetGo, want: want{name: "querygen", shape: ir.Modern}},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			t.Parallel()

			cfg := config.New()
			cfg.Target = tt.target

			g, err := New(cfg)
			if err != nil {
				t.Fatal(err)
			}
			got := want{name: g.Name(), shape: g.Shape()}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(want{})); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestNew_UnknownTarget(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.Target = "kotlin"

	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for an unknown target")
	}
}

func TestValidateOptions(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(queryparser.ValidateOptions{ForbidExplicitTypename: true}, ValidateOptions(config.TargetSwift)); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
	if diff := cmp.Diff(queryparser.ValidateOptions{}, ValidateOptions(config.TargetGo)); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}
