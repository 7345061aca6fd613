package swiftgen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gqlgo/gqltypegen/ir"
)

var keywords = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true, "extension": true,
	"fileprivate": true, "func": true, "import": true, "init": true, "inout": true,
	"internal": true, "let": true, "open": true, "operator": true, "private": true,
	"protocol": true, "public": true, "static": true, "struct": true, "subscript": true,
	"typealias": true, "var": true, "break": true, "case": true, "continue": true,
	"default": true, "defer": true, "do": true, "else": true, "fallthrough": true,
	"for": true, "guard": true, "if": true, "in": true, "repeat": true, "return": true,
	"switch": true, "where": true, "while": true, "as": true, "Any": true, "catch": true,
	"false": true, "is": true, "nil": true, "rethrows": true, "super": true, "self": true,
	"Self": true, "throw": true, "throws": true, "true": true, "try": true,
}

// escape quotes identifiers that collide with Swift keywords.
func escape(name string) string {
	if keywords[name] {
		return "`" + name + "`"
	}
	return name
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// enumCaseName turns NEW_HOPE into newHope.
func enumCaseName(value string) string {
	parts := strings.Split(strings.ToLower(value), "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(upperFirst(part))
	}
	if b.Len() == 0 {
		return value
	}
	return escape(b.String())
}

// swiftType renders t with named as the innermost type.
func swiftType(t *ir.TypeRef, named string) string {
	nullable := t.Kind != ir.NonNull
	if !nullable {
		t = t.OfType
	}
	s := named
	if t.Kind == ir.List {
		s = "[" + swiftType(t.OfType, named) + "]"
	}
	if nullable {
		s += "?"
	}
	return s
}

func (g *Generator) leafName(t *ir.TypeRef) string {
	switch t.Name {
	case "String":
		return "String"
	case "ID":
		return "GraphQLID"
	case "Int":
		return "Int"
	case "Float":
		return "Double"
	case "Boolean":
		return "Bool"
	}
	if t.Kind == ir.Scalar && g.opts.PassthroughCustomScalars {
		return g.opts.CustomScalarsPrefix + t.Name
	}
	return t.Name
}

// fromResultMap converts v, holding raw result maps shaped like t, into
// values of the selection struct named.
func fromResultMap(t *ir.TypeRef, v, named string) string {
	if t.Kind != ir.NonNull {
		nn := ir.NonNullOf(t)
		return fmt.Sprintf("%s.flatMap { (value: %s) -> %s in %s }",
			v, swiftType(nn, "ResultMap"), swiftType(nn, named), fromResultMap(nn, "value", named))
	}
	inner := t.OfType
	if inner.Kind == ir.List {
		return fmt.Sprintf("%s.map { (value: %s) -> %s in %s }",
			v, swiftType(inner.OfType, "ResultMap"), swiftType(inner.OfType, named), fromResultMap(inner.OfType, "value", named))
	}
	return fmt.Sprintf("%s(unsafeResultMap: %s)", named, v)
}

// toResultMap is the inverse of fromResultMap.
func toResultMap(t *ir.TypeRef, v, named string) string {
	if t.Kind != ir.NonNull {
		nn := ir.NonNullOf(t)
		return fmt.Sprintf("%s.flatMap { (value: %s) -> %s in %s }",
			v, swiftType(nn, named), swiftType(nn, "ResultMap"), toResultMap(nn, "value", named))
	}
	inner := t.OfType
	if inner.Kind == ir.List {
		return fmt.Sprintf("%s.map { (value: %s) -> %s in %s }",
			v, swiftType(inner.OfType, named), swiftType(inner.OfType, "ResultMap"), toResultMap(inner.OfType, "value", named))
	}
	return v + ".resultMap"
}

// selectionType renders the GraphQLOutputType of a field.
func selectionType(t *ir.TypeRef, inner string) string {
	switch t.Kind {
	case ir.NonNull:
		return ".nonNull(" + selectionType(t.OfType, inner) + ")"
	case ir.List:
		return ".list(" + selectionType(t.OfType, inner) + ")"
	default:
		return inner
	}
}

// argumentValue converts a printed GraphQL value into a Swift literal.
// Variables become GraphQLVariable references and enum values strings.
func argumentValue(value string) string {
	switch {
	case strings.HasPrefix(value, "$"):
		return fmt.Sprintf("GraphQLVariable(%q)", value[1:])
	case value == "null":
		return "nil"
	case value == "true", value == "false", strings.HasPrefix(value, `"`):
		return value
	case strings.HasPrefix(value, "["), strings.HasPrefix(value, "{"):
		return fmt.Sprintf("%q", value)
	}
	if r, _ := utf8.DecodeRuneInString(value); r == '-' || unicode.IsDigit(r) {
		return value
	}
	return fmt.Sprintf("%q", value)
}

// multilineString renders source as the lines of a Swift multi-line string
// literal.
func multilineString(source string) []string {
	source = strings.ReplaceAll(source, `\`, `\\`)
	source = strings.ReplaceAll(source, `"""`, `\"""`)
	lines := []string{`"""`}
	lines = append(lines, strings.Split(source, "\n")...)
	return append(lines, `"""`)
}
