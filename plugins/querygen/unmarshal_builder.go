package querygen

import "fmt"

// UnmarshalBuilder は生成する UnmarshalJSON メソッドの本体を組み立てる。
type UnmarshalBuilder struct {
	classifier    *FieldClassifier
	fieldDecoder  *FieldDecoder
	inlineDecoder *InlineFragmentDecoder
}

func NewUnmarshalBuilder() *UnmarshalBuilder {
	return &UnmarshalBuilder{
		classifier:    NewFieldClassifier(),
		fieldDecoder:  NewFieldDecoder(),
		inlineDecoder: NewInlineFragmentDecoder(),
	}
}

// BuildUnmarshalMethod は data を raw マップに読み込み、通常のフィールド、
// 埋め込みフラグメント、__typename で選ぶバリアントの順にデコードする。
func (b *UnmarshalBuilder) BuildUnmarshalMethod(fields []FieldInfo) []Statement {
	statements := []Statement{
		&VariableDecl{Name: "raw", Type: "map[string]jsontext.Value"},
		&ErrorCheckStatement{
			ErrorExpr: "json.Unmarshal(data, &raw)",
			Body:      []Statement{&ReturnStatement{Value: "err"}},
		},
	}

	regularFields, fragmentSpreads, inlineFragments := b.separateFieldTypesAt(fields, "t")

	statements = append(statements, b.fieldDecoder.DecodeFields("t", "raw", regularFields)...)
	statements = append(statements, b.decodeFragmentSpreads(fragmentSpreads, "t")...)
	statements = append(statements, b.inlineDecoder.DecodeInlineFragments("t", "raw", inlineFragments)...)

	return append(statements, &ReturnStatement{Value: "nil"})
}

func (b *UnmarshalBuilder) decodeFragmentSpreads(fragmentSpreads []FieldInfo, parentPath string) []Statement {
	var statements []Statement
	for _, field := range fragmentSpreads {
		statements = append(statements, b.decodeSingleFragmentSpread(field, parentPath)...)
	}
	return statements
}

// decodeSingleFragmentSpread は埋め込みフラグメント全体をデコードした後、
// JSON デコーダが飛ばす内側のフラグメントとバリアントをデコードする。
func (b *UnmarshalBuilder) decodeSingleFragmentSpread(field FieldInfo, parentPath string) []Statement {
	statements := []Statement{b.createFragmentUnmarshalStmt(field, parentPath)}
	return append(statements, b.decodeNestedFields(field, parentPath)...)
}

func (b *UnmarshalBuilder) createFragmentUnmarshalStmt(field FieldInfo, parentPath string) Statement {
	return &ErrorCheckStatement{
		ErrorExpr: fmt.Sprintf("json.Unmarshal(data, &%s.%s)", parentPath, field.Name),
		Body:      []Statement{&ReturnStatement{Value: "err"}},
	}
}

func (b *UnmarshalBuilder) decodeNestedFields(field FieldInfo, parentPath string) []Statement {
	if len(field.SubFields) == 0 {
		return nil
	}

	embeddedPath := parentPath + "." + field.Name
	_, subFragmentSpreads, subInlineFragments := b.separateFieldTypesAt(field.SubFields, embeddedPath)

	statements := b.decodeFragmentSpreads(subFragmentSpreads, embeddedPath)
	return append(statements, b.inlineDecoder.DecodeInlineFragments(embeddedPath, "raw", subInlineFragments)...)
}

// separateFieldTypesAt はフィールドを通常のフィールド、フラグメントスプレッド、
// parentPath からたどるインラインフラグメントに分ける。
func (b *UnmarshalBuilder) separateFieldTypesAt(fields []FieldInfo, parentPath string) ([]FieldInfo, []FieldInfo, []InlineFragmentInfo) {
	var regularFields []FieldInfo
	var fragmentSpreads []FieldInfo
	var inlineFragments []InlineFragmentInfo

	for _, field := range fields {
		switch {
		case field.IsInlineFragment:
			inlineFragments = append(inlineFragments, InlineFragmentInfo{
				Field:       field,
				FieldExpr:   fmt.Sprintf("%s.%s", parentPath, field.Name),
				ElemTypeStr: field.PointerElemType,
			})
		case b.classifier.IsFragmentSpread(field):
			fragmentSpreads = append(fragmentSpreads, field)
		case b.classifier.IsRegularField(field):
			regularFields = append(regularFields, field)
		}
	}

	return regularFields, fragmentSpreads, inlineFragments
}
