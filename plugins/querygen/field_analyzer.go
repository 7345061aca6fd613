package querygen

import (
	"go/types"
)

// FieldAnalyzer はレスポンス構造体のフィールドを FieldInfo に変換する。
// 自身の UnmarshalJSON を持たない埋め込みフラグメントは再帰的に解析し、
// 親がそのバリアントまでデコードできるようにする。
type FieldAnalyzer struct {
	classifier *FieldClassifier
	qualifier  types.Qualifier
}

func NewFieldAnalyzer(qualifier types.Qualifier) *FieldAnalyzer {
	return &FieldAnalyzer{
		classifier: NewFieldClassifier(),
		qualifier:  qualifier,
	}
}

func (a *FieldAnalyzer) AnalyzeFields(
	structType *types.Struct,
	shouldGenerateUnmarshal func(*types.Named) bool,
) []FieldInfo {
	fields := make([]FieldInfo, 0, structType.NumFields())

	for i := range structType.NumFields() {
		fields = append(fields, a.analyzeField(structType.Field(i), structType.Tag(i), shouldGenerateUnmarshal))
	}

	return fields
}

func (a *FieldAnalyzer) analyzeField(
	field *types.Var,
	tag string,
	shouldGenerateUnmarshal func(*types.Named) bool,
) FieldInfo {
	info := FieldInfo{
		Name:       field.Name(),
		Type:       field.Type(),
		TypeName:   types.TypeString(field.Type(), a.qualifier),
		JSONTag:    a.classifier.parseJSONTag(tag),
		IsExported: field.Exported(),
		IsEmbedded: field.Anonymous(),
	}

	if a.classifier.IsInlineFragment(field, tag) {
		info.IsInlineFragment = true
		info.Typename = a.classifier.parseTypenameTag(tag)

		if ptrType, ok := field.Type().(*types.Pointer); ok {
			info.IsPointer = true
			info.PointerElemType = types.TypeString(ptrType.Elem(), a.qualifier)
		}
	}

	if info.IsEmbedded && !info.IsInlineFragment {
		// 自身の UnmarshalJSON を持つ埋め込み型は自分でデコードする
		if embeddedNamed := namedStructType(field.Type()); embeddedNamed != nil && shouldGenerateUnmarshal(embeddedNamed) {
			return info
		}

		if embeddedStruct := getStructType(field.Type()); embeddedStruct != nil {
			info.SubFields = a.AnalyzeFields(embeddedStruct, shouldGenerateUnmarshal)
		}
	}

	return info
}
