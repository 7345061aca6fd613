package querygen

import (
	"fmt"
)

// FieldDecoder は raw マップから通常の JSON メンバーをデコードする。
type FieldDecoder struct{}

func NewFieldDecoder() *FieldDecoder {
	return &FieldDecoder{}
}

// DecodeField は次のコードを生成する:
//
//	if value, ok := raw["name"]; ok {
//		if err := json.Unmarshal(value, &t.Name); err != nil {
//			return err
//		}
//	}
func (d *FieldDecoder) DecodeField(targetExpr, rawExpr string, field FieldInfo) Statement {
	return &IfStatement{
		Condition: fmt.Sprintf(`value, ok := %s[%q]; ok`, rawExpr, field.JSONTag),
		Body: []Statement{
			&ErrorCheckStatement{
				ErrorExpr: fmt.Sprintf("json.Unmarshal(value, &%s.%s)", targetExpr, field.Name),
				Body:      []Statement{&ReturnStatement{Value: "err"}},
			},
		},
	}
}

// DecodeFields は JSON メンバーを持たないフィールドを飛ばす。
// フラグメントスプレッド、インラインフラグメント、非公開フィールドが該当する。
func (d *FieldDecoder) DecodeFields(targetExpr, rawExpr string, fields []FieldInfo) []Statement {
	statements := make([]Statement, 0, len(fields))

	for _, field := range fields {
		if field.JSONTag == "" || field.JSONTag == "-" || !field.IsExported {
			continue
		}
		statements = append(statements, d.DecodeField(targetExpr, rawExpr, field))
	}

	return statements
}
