package querygen

import (
	"go/types"
	"reflect"
	"strings"
)

// FieldClassifier はレスポンス構造体のフィールドを分類する。
// 通常の JSON フィールド、埋め込みのフラグメントスプレッド、
// __typename で選ばれるインラインフラグメントのポインタの3種類がある。
type FieldClassifier struct{}

func NewFieldClassifier() *FieldClassifier {
	return &FieldClassifier{}
}

// IsInlineFragment はフィールドが型条件付きのバリアントかどうかを判定する。
//
// バリアントは JSON デコーダが無視する公開ポインタフィールド:
//
//	type HeroAndFriendsQuery_Hero struct {
//		AsDroid *HeroAndFriendsQuery_Hero_OnDroid `json:"-" typename:"Droid"`
//		AsHuman *HeroAndFriendsQuery_Hero_OnHuman `json:"-" typename:"Human"`
//	}
func (c *FieldClassifier) IsInlineFragment(field *types.Var, tag string) bool {
	if !field.Exported() {
		return false
	}

	jsonTag := c.parseJSONTag(tag)
	if jsonTag != "" && jsonTag != "-" {
		return false
	}

	_, isPointer := field.Type().(*types.Pointer)
	return isPointer
}

// IsFragmentSpread はフィールドが埋め込みフラグメントかどうかを判定する:
//
//	type HeroAndFriendsQuery_Hero struct {
//		HeroDetailsFragment `json:"-"`
//	}
func (c *FieldClassifier) IsFragmentSpread(field FieldInfo) bool {
	return field.IsEmbedded && (field.JSONTag == "" || field.JSONTag == "-")
}

func (c *FieldClassifier) IsRegularField(field FieldInfo) bool {
	return !field.IsInlineFragment && !c.IsFragmentSpread(field)
}

// parseJSONTag はオプションを除いた JSON のメンバー名を返す。
// 無視されるフィールドは "-"、json キーが無ければ ""。
func (c *FieldClassifier) parseJSONTag(tag string) string {
	if tag == "" {
		return ""
	}
	value := reflect.StructTag(tag).Get("json")
	if idx := strings.Index(value, ","); idx >= 0 {
		value = value[:idx]
	}
	return value
}

// parseTypenameTag はインラインフラグメントの具象型名を返す。
func (c *FieldClassifier) parseTypenameTag(tag string) string {
	return reflect.StructTag(tag).Get("typename")
}
