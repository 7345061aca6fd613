// Package querygen はコンパイル済みドキュメントのオペレーションから Go の型を生成する。
//
// レスポンス型ごとに次の形を扱う UnmarshalJSON を生成する:
//   - json:"-" で埋め込まれたフラグメントスプレッド
//   - __typename で選ばれる型条件付きバリアントのポインタ
//   - ネストした選択
//
// 生成コードは github.com/go-json-experiment/json でデコードし、
// 各メンバーは必要になるまで jsontext.Value のまま保持する。
package querygen

import (
	"github.com/gqlgo/gqltypegen/ir"
)

type Options struct {
	// Package は生成ファイルのパッケージ名。
	Package                  string
	PassthroughCustomScalars bool
	CustomScalarsPrefix      string
	// OperationIDs が true ならオペレーションごとに <Operation>OperationID 定数を出力する。
	OperationIDs bool
}

// Generator は go ターゲットを生成する。
type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	if opts.Package == "" {
		opts.Package = "generated"
	}
	return &Generator{opts: opts}
}

func (g *Generator) Name() string {
	return "querygen"
}

func (g *Generator) Shape() ir.Shape {
	return ir.Modern
}

func (g *Generator) Generate(doc *ir.Document) ([]byte, error) {
	return Render(doc, g.opts)
}
