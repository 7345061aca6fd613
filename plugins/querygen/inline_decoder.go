package querygen

import (
	"fmt"
	"strings"
)

// InlineFragmentDecoder は __typename で分岐してバリアントをデコードする。
type InlineFragmentDecoder struct{}

func NewInlineFragmentDecoder() *InlineFragmentDecoder {
	return &InlineFragmentDecoder{}
}

// DecodeInlineFragments は次のコードを生成する:
//
//	var typeName_t string
//	if typename, ok := raw["__typename"]; ok {
//		if err := json.Unmarshal(typename, &typeName_t); err != nil {
//			return err
//		}
//	}
//	switch typeName_t {
//	case "Human":
//		t.AsHuman = &Hero_OnHuman{}
//		if err := json.Unmarshal(data, t.AsHuman); err != nil {
//			return err
//		}
//	}
//
// デコード対象が無ければ nil を返す。
func (d *InlineFragmentDecoder) DecodeInlineFragments(targetExpr, rawExpr string, fragments []InlineFragmentInfo) []Statement {
	if len(fragments) == 0 {
		return nil
	}

	typeNameVar := "typeName_" + strings.ReplaceAll(targetExpr, ".", "_")

	return []Statement{
		&VariableDecl{Name: typeNameVar, Type: "string"},
		&IfStatement{
			Condition: fmt.Sprintf(`typename, ok := %s["__typename"]; ok`, rawExpr),
			Body: []Statement{
				&ErrorCheckStatement{
					ErrorExpr: fmt.Sprintf("json.Unmarshal(typename, &%s)", typeNameVar),
					Body:      []Statement{&ReturnStatement{Value: "err"}},
				},
			},
		},
		&SwitchStatement{
			Expr:  typeNameVar,
			Cases: d.createSwitchCases(fragments),
		},
	}
}

// createSwitchCases は typename タグの値で case を作る。
// タグが無ければフィールド名を使う。
func (d *InlineFragmentDecoder) createSwitchCases(fragments []InlineFragmentInfo) []SwitchCase {
	cases := make([]SwitchCase, 0, len(fragments))

	for _, frag := range fragments {
		value := frag.Field.Typename
		if value == "" {
			value = frag.Field.Name
		}

		cases = append(cases, SwitchCase{
			Value: value,
			Body: []Statement{
				&Assignment{
					Target: frag.FieldExpr,
					Value:  fmt.Sprintf("&%s{}", frag.ElemTypeStr),
				},
				&ErrorCheckStatement{
					ErrorExpr: fmt.Sprintf("json.Unmarshal(data, %s)", frag.FieldExpr),
					Body:      []Statement{&ReturnStatement{Value: "err"}},
				},
			},
		})
	}

	return cases
}
