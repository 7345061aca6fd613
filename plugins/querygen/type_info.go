package querygen

import "go/types"

// TypeInfo はコード生成用に解析したレスポンス型。
type TypeInfo struct {
	Named                   *types.Named
	Struct                  *types.Struct
	TypeName                string
	Fields                  []FieldInfo
	ShouldGenerateUnmarshal bool
}

// FieldInfo はレスポンス型の構造体フィールド1つを表す。
type FieldInfo struct {
	Name     string
	Type     types.Type
	TypeName string
	JSONTag  string
	// Typename はインラインフラグメントが対象とする具象型名。typename タグから取る。
	Typename         string
	IsExported       bool
	IsEmbedded       bool
	IsInlineFragment bool
	IsPointer        bool
	PointerElemType  string
	// SubFields は自身の UnmarshalJSON を持たない埋め込みフラグメントのフィールド。
	SubFields []FieldInfo
}

// InlineFragmentInfo は t.HeroDetailsFragment のような親の式の下にあるインラインフラグメント。
type InlineFragmentInfo struct {
	Field       FieldInfo
	FieldExpr   string
	ElemTypeStr string
}
