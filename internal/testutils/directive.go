package testutils

import (
	"fmt"
	"regexp"
)

var schemaDirective = regexp.MustCompile(`(?m)^# schema:\s*(\S+)$`)

// FindSchemaFileName reads the "# schema: <file>" directive of a fixture.
func FindSchemaFileName(t TestingT, source string) string {
	t.Helper()

	ss := schemaDirective.FindStringSubmatch(source)
	if len(ss) != 2 {
		t.Fatal("schema file directive mismatch")
	}

	return ss[1]
}

// FindOptionString reads a "# option:<name>: <value>" directive of a fixture.
func FindOptionString(t TestingT, optionName, source string) string {
	t.Helper()

	re, err := regexp.Compile(fmt.Sprintf(`(?m)^# option:%s:\s*(\S+)$`, regexp.QuoteMeta(optionName)))
	if err != nil {
		t.Fatal(err)
	}

	ss := re.FindStringSubmatch(source)
	if len(ss) != 2 {
		t.Logf("option %s value is not found", optionName)
		return ""
	}

	return ss[1]
}

func FindOptionBool(t TestingT, optionName, source string) bool {
	t.Helper()
	return FindOptionString(t, optionName, source) == "true"
}
