package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type recorder struct {
	errors []string
}

func (r *recorder) Helper()                      {}
func (r *recorder) Log(...any)                   {}
func (r *recorder) Logf(string, ...any)          {}
func (r *recorder) Error(args ...any)            { r.errors = append(r.errors, fmt.Sprint(args...)) }
func (r *recorder) Errorf(f string, args ...any) { r.errors = append(r.errors, fmt.Sprintf(f, args...)) }
func (r *recorder) Fatal(args ...any)            { r.Error(args...) }
func (r *recorder) Fatalf(f string, args ...any) { r.Errorf(f, args...) }

func TestCheckGoldenFile(t *testing.T) {
	tests := []struct {
		name    string
		golden  *string
		update  string
		actual  string
		wantErr bool
		want    string
	}{
		{name: "match", golden: ptr("a\nb\n"), actual: "a\nb\n"},
		{name: "mismatch", golden: ptr("a\nb\n"), actual: "a\nc\n", wantErr: true, want: "a\nb\n"},
		{name: "missing golden file", actual: "a\n", wantErr: true},
		{name: "missing golden file in update mode", update: "1", actual: "a\n", want: "a\n"},
		{name: "mismatch in update mode", golden: ptr("a\n"), update: "1", actual: "b\n", want: "b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(UpdateGoldenEnv, tt.update)

			path := filepath.Join(t.TempDir(), "golden", "out.txt")
			if tt.golden != nil {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte(*tt.golden), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			r := &recorder{}
			CheckGoldenFile(r, []byte(tt.actual), path)

			if got := len(r.errors) > 0; got != tt.wantErr {
				t.Errorf("failed = %v, want %v: %v", got, tt.wantErr, r.errors)
			}
			if tt.want == "" {
				return
			}
			b, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.want {
				t.Errorf("golden file = %q, want %q", b, tt.want)
			}
		})
	}
}

func ptr(s string) *string {
	return &s
}
