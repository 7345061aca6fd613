package querygen

import (
	"fmt"
	"go/types"
	"strings"
)

// CodeFormatter は型定義とメソッドを Go のソースとして書き出す。
type CodeFormatter struct {
	qualifier types.Qualifier
}

func NewCodeFormatter(qualifier types.Qualifier) *CodeFormatter {
	return &CodeFormatter{qualifier: qualifier}
}

// FormatTypeDecl は構造体の型定義を1行1フィールドで書き出す。
func (f *CodeFormatter) FormatTypeDecl(typeName string, structType *types.Struct) string {
	if structType.NumFields() == 0 {
		return fmt.Sprintf("type %s struct{}\n", typeName)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "type %s struct {\n", typeName)
	for i := range structType.NumFields() {
		field := structType.Field(i)
		typeStr := types.TypeString(field.Type(), f.qualifier)

		buf.WriteString("\t")
		if !field.Anonymous() {
			buf.WriteString(field.Name() + " ")
		}
		buf.WriteString(typeStr)
		if tag := structType.Tag(i); tag != "" {
			buf.WriteString(" `" + tag + "`")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.String()
}

func (f *CodeFormatter) FormatUnmarshalMethod(typeName string, body []Statement) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "func (t *%s) UnmarshalJSON(data []byte) error {\n", typeName)
	for _, stmt := range body {
		buf.WriteString("\t")
		buf.WriteString(stmt.String(1))
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.String()
}

// FormatGetter は nil レシーバでもゼロ値を返すゲッターを書き出す。
func (f *CodeFormatter) FormatGetter(typeName, fieldName, fieldType string) string {
	return fmt.Sprintf(`func (t *%s) Get%s() %s {
	if t == nil {
		t = &%s{}
	}
	return t.%s
}
`, typeName, fieldName, fieldType, typeName, fieldName)
}
