package scalagen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var keywords = map[string]bool{
	"abstract": true, "case": true, "catch": true, "class": true, "def": true, "do": true,
	"else": true, "extends": true, "false": true, "final": true, "finally": true, "for": true,
	"forSome": true, "if": true, "implicit": true, "import": true, "lazy": true, "match": true,
	"new": true, "null": true, "object": true, "override": true, "package": true, "private": true,
	"protected": true, "return": true, "sealed": true, "super": true, "this": true, "throw": true,
	"trait": true, "try": true, "true": true, "type": true, "val": true, "var": true,
	"while": true, "with": true, "yield": true,
}

func escape(name string) string {
	if keywords[name] {
		return "`" + name + "`"
	}
	return name
}

func className(responseKey string) string {
	r, size := utf8.DecodeRuneInString(responseKey)
	if r == utf8.RuneError {
		return responseKey
	}
	return string(unicode.ToUpper(r)) + responseKey[size:]
}

// stripMargin renders source as a triple quoted Scala string with margin
// markers.
func stripMargin(source string) []string {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		prefix := `  |`
		if i == 0 {
			prefix = `"""`
		}
		out = append(out, prefix+line)
	}
	out[len(out)-1] += `""".stripMargin`
	return out
}

func quoteAll(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}
	return strings.Join(quoted, ", ")
}
