package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_run(t *testing.T) {
	schema, err := filepath.Abs("testdata/starwars/schema.graphqls")
	require.NoError(t, err)
	documents, err := filepath.Abs("testdata/starwars")
	require.NoError(t, err)

	type args struct {
		args []string
	}

	type want struct {
		stdout   []string
		errorMsg string
	}

	tests := []struct {
		name string
		args args
		want want
	}{
		{
			name: "version",
			args: args{args: []string{"-version"}},
			want: want{stdout: []string{"gqltypegen v" + version + "\n"}},
		},
		{
			name: "flags only",
			args: args{args: []string{
				"-schema", schema,
				"-target", "typescript",
				filepath.Join(documents, "*.graphql"),
				filepath.Join(documents, "*.ts"),
			}},
			want: want{stdout: []string{
				"export type HeroAndFriendsQuery = {",
				"export type CreateReviewMutation = {",
			}},
		},
		{
			name: "flow-modern without typescript documents",
			args: args{args: []string{
				"-schema", schema,
				"-target", "flow-modern",
				filepath.Join(documents, "hero.graphql"),
			}},
			want: want{stdout: []string{"// GraphQL query operation: HeroAndFriends"}},
		},
		{
			name: "unknown target",
			args: args{args: []string{"-schema", schema, "-target", "kotlin", filepath.Join(documents, "hero.graphql")}},
			want: want{errorMsg: `unknown target "kotlin"`},
		},
		{
			name: "missing schema",
			args: args{args: []string{filepath.Join(documents, "hero.graphql")}},
			want: want{errorMsg: "neither 'schema' nor 'endpoint' specified"},
		},
		{
			name: "missing document",
			args: args{args: []string{"-schema", schema, filepath.Join(documents, "missing.graphql")}},
			want: want{errorMsg: "missing.graphql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run(t.Context(), tt.args.args, &stdout, &stderr)
			if tt.want.errorMsg != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.want.errorMsg)
				return
			}
			require.NoError(t, err)

			for _, s := range tt.want.stdout {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("stdout does not contain %q:\n%s", s, stdout.String())
				}
			}
		})
	}
}

func Test_run_ConfigFile(t *testing.T) {
	fixture, err := filepath.Abs("testdata/starwars")
	require.NoError(t, err)
	t.Setenv("STARWARS_DIR", fixture)

	dir := t.TempDir()
	configFile := filepath.Join(dir, ".gqltypegen.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(heredoc.Doc(`
		schema: ${STARWARS_DIR}/schema.graphqls
		documents:
		  - ${STARWARS_DIR}/*.graphql
		  - ${STARWARS_DIR}/*.ts
		target: swift
		generate_operation_ids: true
		operation_ids_path: `+filepath.Join(dir, "ids.json")+`
	`)), 0o600))

	output := filepath.Join(dir, "gen", "starwars.go")
	args := []string{"-config", configFile, "-target", "go", "-package", "starwars", "-output", output}

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(t.Context(), args, &stdout, &stderr))

	if diff := cmp.Diff("", stdout.String()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(b), "package starwars\n")
	require.Contains(t, string(b), "const HeroAndFriendsQueryOperationID = ")

	_, err = os.Stat(filepath.Join(dir, "ids.json"))
	require.NoError(t, err)
}

func Test_run_UnknownConfigKey(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "gqltypegen.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("schema: schema.graphqls\nmodels: {}\n"), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(t.Context(), []string{"-config", configFile}, &stdout, &stderr)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config file")
}
