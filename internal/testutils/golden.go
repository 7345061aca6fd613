package testutils

import (
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// UpdateGoldenEnv rewrites golden files from the actual output when set to
// "1".
const UpdateGoldenEnv = "UPDATE_GOLDEN"

// CheckGoldenFile compares actual with the contents of expectFilePath.
// A missing golden file fails the test unless UPDATE_GOLDEN=1.
func CheckGoldenFile(t TestingT, actual []byte, expectFilePath string) {
	t.Helper()

	if os.Getenv(UpdateGoldenEnv) == "1" {
		if err := os.MkdirAll(filepath.Dir(expectFilePath), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(expectFilePath, actual, 0o644); err != nil { //nolint:gosec // golden files are checked in
			t.Fatal(err)
		}
		return
	}

	expect, err := os.ReadFile(expectFilePath)
	if os.IsNotExist(err) {
		t.Errorf("golden file %s is missing; run the test with %s=1 to create it", expectFilePath, UpdateGoldenEnv)
		return
	} else if err != nil {
		t.Error(err)
		return
	}

	if string(expect) != string(actual) {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(expect)),
			B:        difflib.SplitLines(string(actual)),
			FromFile: expectFilePath,
			ToFile:   "actual",
			Context:  5,
		}
		d, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			t.Fatal(err)
		}
		t.Error(d)
	}
}
