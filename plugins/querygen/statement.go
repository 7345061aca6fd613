package querygen

import (
	"fmt"
	"strings"
)

// Statement は生成するメソッド本体の1文。指定したインデントで書き出す。
type Statement interface {
	String(indent int) string
}

// VariableDecl は `var raw map[string]jsontext.Value` を表す。
type VariableDecl struct {
	Name string
	Type string
}

func (v *VariableDecl) String(_ int) string {
	return fmt.Sprintf("var %s %s", v.Name, v.Type)
}

// IfStatement は `if <Condition> { <Body> }` を表す。
type IfStatement struct {
	Condition string
	Body      []Statement
}

func (i *IfStatement) String(indent int) string {
	return block(fmt.Sprintf("if %s {", i.Condition), i.Body, indent)
}

// SwitchStatement は文字列の case を持つ switch 文を表す。
type SwitchStatement struct {
	Expr  string
	Cases []SwitchCase
}

type SwitchCase struct {
	Value string
	Body  []Statement
}

func (s *SwitchStatement) String(indent int) string {
	var buf strings.Builder
	tabs := strings.Repeat("\t", indent)

	fmt.Fprintf(&buf, "switch %s {\n", s.Expr)
	for _, c := range s.Cases {
		fmt.Fprintf(&buf, "%scase %q:\n", tabs, c.Value)
		writeBody(&buf, c.Body, indent)
	}
	buf.WriteString(tabs + "}")

	return buf.String()
}

// Assignment は `t.AsHuman = &Hero_OnHuman{}` を表す。
type Assignment struct {
	Target string
	Value  string
}

func (a *Assignment) String(_ int) string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

type ReturnStatement struct {
	Value string
}

func (r *ReturnStatement) String(_ int) string {
	if r.Value == "" {
		return "return"
	}
	return "return " + r.Value
}

// RawStatement はそのまま出力される。
type RawStatement struct {
	Code string
}

func (r *RawStatement) String(_ int) string {
	return r.Code
}

// ErrorCheckStatement は `if err := <ErrorExpr>; err != nil { <Body> }` を表す。
type ErrorCheckStatement struct {
	ErrorExpr string
	Body      []Statement
}

func (e *ErrorCheckStatement) String(indent int) string {
	return block(fmt.Sprintf("if err := %s; err != nil {", e.ErrorExpr), e.Body, indent)
}

func block(head string, body []Statement, indent int) string {
	var buf strings.Builder
	buf.WriteString(head)
	buf.WriteString("\n")
	writeBody(&buf, body, indent)
	buf.WriteString(strings.Repeat("\t", indent) + "}")
	return buf.String()
}

func writeBody(buf *strings.Builder, body []Statement, indent int) {
	tabs := strings.Repeat("\t", indent+1)
	for _, stmt := range body {
		buf.WriteString(tabs)
		buf.WriteString(stmt.String(indent + 1))
		buf.WriteString("\n")
	}
}
