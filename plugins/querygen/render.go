package querygen

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/gqlgo/gqltypegen/codegen"
	"github.com/gqlgo/gqltypegen/ir"
)

const (
	jsonPath     = "github.com/go-json-experiment/json"
	jsontextPath = "github.com/go-json-experiment/json/jsontext"
)

// Render は doc の Go の型モデルを作り、整形済みの1ファイルとして出力する。
func Render(doc *ir.Document, opts Options) ([]byte, error) {
	pkg := types.NewPackage(opts.Package, opts.Package)
	goTypes := codegen.NewGoTypeGenerator(pkg, codegen.Options{
		PassthroughCustomScalars: opts.PassthroughCustomScalars,
		CustomScalarsPrefix:      opts.CustomScalarsPrefix,
	}).CreateGoTypes(doc)

	usedImports := map[string]string{}
	qualifier := func(p *types.Package) string {
		if p == pkg {
			return ""
		}
		usedImports[p.Path()] = p.Name()
		return p.Name()
	}

	var body strings.Builder
	formatter := NewCodeFormatter(qualifier)

	for _, enum := range goTypes.Enums {
		writeEnum(&body, enum)
	}
	for _, scalar := range goTypes.Scalars {
		fmt.Fprintf(&body, "type %s = %s\n\n", scalar.Obj().Name(), types.TypeString(scalar.Rhs(), qualifier))
	}
	for _, t := range goTypes.Inputs {
		named := namedStructType(t)
		if named == nil {
			return nil, fmt.Errorf("input type must be a named struct: %v", t)
		}
		body.WriteString(formatter.FormatTypeDecl(named.Obj().Name(), named.Underlying().(*types.Struct))) //nolint:forcetypeassert // guaranteed by namedStructType
		body.WriteString("\n")
	}
	for _, op := range goTypes.Operations {
		fmt.Fprintf(&body, "const %sDocument = %s\n\n", op.TypeName, goString(op.Document))
		if opts.OperationIDs {
			fmt.Fprintf(&body, "const %sOperationID = %q\n\n", op.TypeName, op.OperationID)
		}
	}

	responses, needsJSON, err := NewCodeGenerator(goTypes.Responses, qualifier).GenerateAll(goTypes.Responses)
	if err != nil {
		return nil, err
	}
	body.WriteString(responses)
	if needsJSON {
		usedImports[jsonPath] = "json"
		usedImports[jsontextPath] = "jsontext"
	}

	var src strings.Builder
	src.WriteString("// Code generated by gqltypegen, DO NOT EDIT.\n\n")
	fmt.Fprintf(&src, "package %s\n\n", opts.Package)
	if len(usedImports) > 0 {
		src.WriteString("import (\n")
		for _, path := range sortedKeys(usedImports) {
			fmt.Fprintf(&src, "\t%q\n", path)
		}
		src.WriteString(")\n\n")
	}
	src.WriteString(body.String())

	out, err := imports.Process("", []byte(src.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("go imports: %w", err)
	}
	return out, nil
}

func writeEnum(buf *strings.Builder, enum *codegen.Enum) {
	name := enum.Named.Obj().Name()
	writeComment(buf, "", enum.Description)
	fmt.Fprintf(buf, "type %s string\n\n", name)

	if len(enum.Values) == 0 {
		return
	}
	buf.WriteString("const (\n")
	for _, v := range enum.Values {
		writeComment(buf, "\t", v.Description)
		if v.Deprecated != "" {
			writeComment(buf, "\t", "Deprecated: "+v.Deprecated)
		}
		fmt.Fprintf(buf, "\t%s %s = %q\n", v.ConstName, name, v.Value)
	}
	buf.WriteString(")\n\n")
}

func writeComment(buf *strings.Builder, indent, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		buf.WriteString(strings.TrimRight(indent+"// "+line, " ") + "\n")
	}
}

// goString はオペレーション文書をできるだけ raw 文字列リテラルで表す。
func goString(s string) string {
	if strings.Contains(s, "`") {
		return fmt.Sprintf("%q", s)
	}
	return "`" + s + "`"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
