package querygen

import (
	"fmt"
	"go/types"
	"strings"
)

// CodeGenerator はレスポンス型を UnmarshalJSON メソッドとゲッター付きで生成する。
type CodeGenerator struct {
	formatter        *CodeFormatter
	unmarshalBuilder *UnmarshalBuilder
	analyzer         *FieldAnalyzer
	qualifier        types.Qualifier
	skipUnmarshal    map[*types.TypeName]struct{}
}

func NewCodeGenerator(goTypes []types.Type, qualifier types.Qualifier) *CodeGenerator {
	return &CodeGenerator{
		formatter:        NewCodeFormatter(qualifier),
		unmarshalBuilder: NewUnmarshalBuilder(),
		analyzer:         NewFieldAnalyzer(qualifier),
		qualifier:        qualifier,
		skipUnmarshal:    collectEmbeddedTypes(goTypes),
	}
}

// GenerateAll は goTypes の型を順に生成する。
// UnmarshalJSON を1つでも生成した場合 needsJSON は true で、json と jsontext の import が必要になる。
func (g *CodeGenerator) GenerateAll(goTypes []types.Type) (code string, needsJSON bool, err error) {
	var buf strings.Builder
	for _, t := range goTypes {
		typeInfo, err := g.buildTypeInfo(t)
		if err != nil {
			return "", false, fmt.Errorf("failed to analyze type: %w", err)
		}
		needsJSON = needsJSON || typeInfo.ShouldGenerateUnmarshal

		buf.WriteString(g.emit(*typeInfo))
		buf.WriteString("\n")
	}
	return buf.String(), needsJSON, nil
}

func (g *CodeGenerator) emit(typeInfo TypeInfo) string {
	var buf strings.Builder

	buf.WriteString(g.formatter.FormatTypeDecl(typeInfo.TypeName, typeInfo.Struct))

	if typeInfo.ShouldGenerateUnmarshal {
		statements := g.unmarshalBuilder.BuildUnmarshalMethod(typeInfo.Fields)
		buf.WriteString("\n")
		buf.WriteString(g.formatter.FormatUnmarshalMethod(typeInfo.TypeName, statements))
	}

	for _, field := range typeInfo.Fields {
		buf.WriteString("\n")
		buf.WriteString(g.formatter.FormatGetter(typeInfo.TypeName, field.Name, field.TypeName))
	}
	return buf.String()
}

// buildTypeInfo はポインタを外し、名前付き構造体型であることを確認する。
func (g *CodeGenerator) buildTypeInfo(t types.Type) (*TypeInfo, error) {
	if pointerType, ok := t.(*types.Pointer); ok {
		t = pointerType.Elem()
	}

	namedType, ok := t.(*types.Named)
	if !ok {
		return nil, fmt.Errorf("type must be named type: %v", t)
	}

	structType, ok := namedType.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type must have struct underlying: %v", t)
	}

	return &TypeInfo{
		Named:                   namedType,
		Struct:                  structType,
		TypeName:                types.TypeString(namedType, g.qualifier),
		Fields:                  g.analyzer.AnalyzeFields(structType, g.shouldGenerateUnmarshal),
		ShouldGenerateUnmarshal: g.shouldGenerateUnmarshal(namedType),
	}, nil
}

// shouldGenerateUnmarshal は埋め込まれるフラグメント型に対して false を返す。
// デコードは埋め込み先の型が行う。
func (g *CodeGenerator) shouldGenerateUnmarshal(named *types.Named) bool {
	if named == nil {
		return false
	}

	_, skip := g.skipUnmarshal[named.Obj()]
	return !skip
}

// getStructType は名前付き型とポインタを外して構造体型を返す。構造体でなければ nil。
func getStructType(t types.Type) *types.Struct {
	switch tt := t.(type) {
	case *types.Struct:
		return tt
	case *types.Named:
		if st, ok := tt.Underlying().(*types.Struct); ok {
			return st
		}
	case *types.Pointer:
		return getStructType(tt.Elem())
	}
	return nil
}

// namedStructType は t の背後にある名前付き構造体型を返す。無ければ nil。
func namedStructType(t types.Type) *types.Named {
	switch tt := t.(type) {
	case *types.Named:
		if _, ok := tt.Underlying().(*types.Struct); ok {
			return tt
		}
	case *types.Pointer:
		return namedStructType(tt.Elem())
	}
	return nil
}

// collectEmbeddedTypes は埋め込みフィールドとして使われる型を集める。
// これらは埋め込み先の UnmarshalJSON がデコードする:
//
//	type HeroAndFriendsQuery_Hero struct {
//		HeroDetailsFragment `json:"-"`
//		Friends *[]*HeroAndFriendsQuery_Hero_Friends `json:"friends"`
//	}
//
// この場合 HeroDetailsFragment 自身の UnmarshalJSON は生成しない。
func collectEmbeddedTypes(goTypes []types.Type) map[*types.TypeName]struct{} {
	result := make(map[*types.TypeName]struct{})
	for _, t := range goTypes {
		named := namedStructType(t)
		if named == nil {
			continue
		}
		structType := named.Underlying().(*types.Struct) //nolint:forcetypeassert // guaranteed by namedStructType
		for i := range structType.NumFields() {
			field := structType.Field(i)
			if !field.Anonymous() {
				continue
			}
			if namedField := namedStructType(field.Type()); namedField != nil {
				result[namedField.Obj()] = struct{}{}
			}
		}
	}
	return result
}
