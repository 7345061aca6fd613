package querygen

import (
	"go/types"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldClassifier_IsInlineFragment(t *testing.T) {
	t.Parallel()

	classifier := NewFieldClassifier()

	type args struct {
		field *types.Var
		tag   string
	}

	type want struct {
		isInlineFragment bool
	}

	tests := []struct {
		name string
		args args
		want want
	}{
		{
			name: "エクスポートされたポインタ型フィールドでJSONタグがない場合はインラインフラグメント",
			args: args{
				field: types.NewField(0, nil, "AsHuman", types.NewPointer(types.Typ[types.String]), false),
				tag:   "",
			},
			want: want{
				isInlineFragment: true,
			},
		},
		{
			name: "エクスポートされたポインタ型フィールドでJSONタグが\"-\"の場合はインラインフラグメント",
			args: args{
				field: types.NewField(0, nil, "AsHuman", types.NewPointer(types.Typ[types.String]), false),
				tag:   `json:"-"`,
			},
			want: want{
				isInlineFragment: true,
			},
		},
		{
			name: "エクスポートされていないフィールドはインラインフラグメントではない",
			args: args{
				field: types.NewField(0, nil, "asHuman", types.NewPointer(types.Typ[types.String]), false),
				tag:   "",
			},
			want: want{
				isInlineFragment: false,
			},
		},
		{
			name: "JSONタグが指定されている場合はインラインフラグメントではない",
			args: args{
				field: types.NewField(0, nil, "AsHuman", types.NewPointer(types.Typ[types.String]), false),
				tag:   `json:"name"`,
			},
			want: want{
				isInlineFragment: false,
			},
		},
		{
			name: "ポインタ型でない場合はインラインフラグメントではない",
			args: args{
				field: types.NewField(0, nil, "Name", types.Typ[types.String], false),
				tag:   "",
			},
			want: want{
				isInlineFragment: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifier.IsInlineFragment(tt.args.field, tt.args.tag)

			if diff := cmp.Diff(tt.want.isInlineFragment, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestFieldClassifier_IsFragmentSpread(t *testing.T) {
	t.Parallel()

	classifier := NewFieldClassifier()

	type args struct {
		field FieldInfo
	}

	type want struct {
		isFragmentSpread bool
	}

	tests := []struct {
		name string
		args args
		want want
	}{
		{
			name: "埋め込みフィールドでJSONタグが空の場合はフラグメントスプレッド",
			args: args{
				field: FieldInfo{
					IsEmbedded: true,
					JSONTag:    "",
				},
			},
			want: want{
				isFragmentSpread: true,
			},
		},
		{
			name: "埋め込みフィールドでJSONタグが\"-\"の場合はフラグメントスプレッド",
			args: args{
				field: FieldInfo{
					IsEmbedded: true,
					JSONTag:    "-",
				},
			},
			want: want{
				isFragmentSpread: true,
			},
		},
		{
			name: "埋め込みフィールドでない場合はフラグメントスプレッドではない",
			args: args{
				field: FieldInfo{
					IsEmbedded: false,
					JSONTag:    "",
				},
			},
			want: want{
				isFragmentSpread: false,
			},
		},
		{
			name: "埋め込みフィールドでもJSONタグが指定されている場合はフラグメントスプレッドではない",
			args: args{
				field: FieldInfo{
					IsEmbedded: true,
					JSONTag:    "heroDetails",
				},
			},
			want: want{
				isFragmentSpread: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifier.IsFragmentSpread(tt.args.field)

			if diff := cmp.Diff(tt.want.isFragmentSpread, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestFieldClassifier_parseJSONTag(t *testing.T) {
	t.Parallel()

	classifier := NewFieldClassifier()

	type args struct {
		tag string
	}

	type want struct {
		jsonTag string
	}

	tests := []struct {
		name string
		args args
		want want
	}{
		{
			name: "JSONタグが指定されている場合はフィールド名を返す",
			args: args{
				tag: `json:"name"`,
			},
			want: want{
				jsonTag: "name",
			},
		},
		{
			name: "JSONタグにオプションが含まれている場合はフィールド名のみを返す",
			args: args{
				tag: `json:"commentary,omitzero"`,
			},
			want: want{
				jsonTag: "commentary",
			},
		},
		{
			name: "JSONタグが\"-\"の場合は\"-\"を返す",
			args: args{
				tag: `json:"-"`,
			},
			want: want{
				jsonTag: "-",
			},
		},
		{
			name: "typenameタグが併記されていてもJSONタグのみを返す",
			args: args{
				tag: `json:"-" typename:"Droid"`,
			},
			want: want{
				jsonTag: "-",
			},
		},
		{
			name: "JSONタグがない場合は空文字を返す",
			args: args{
				tag: "",
			},
			want: want{
				jsonTag: "",
			},
		},
		{
			name: "JSONタグが空の場合は空文字を返す",
			args: args{
				tag: `json:""`,
			},
			want: want{
				jsonTag: "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifier.parseJSONTag(tt.args.tag)

			if diff := cmp.Diff(tt.want.jsonTag, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestFieldClassifier_IsRegularField(t *testing.T) {
	t.Parallel()

	classifier := NewFieldClassifier()

	tests := []struct {
		name  string
		field FieldInfo
		want  bool
	}{
		{
			name:  "JSONタグを持つフィールドは通常のフィールド",
			field: FieldInfo{Name: "Name", JSONTag: "name"},
			want:  true,
		},
		{
			name:  "インラインフラグメントは通常のフィールドではない",
			field: FieldInfo{Name: "AsDroid", JSONTag: "-", IsInlineFragment: true},
			want:  false,
		},
		{
			name:  "フラグメントスプレッドは通常のフィールドではない",
			field: FieldInfo{Name: "HeroDetailsFragment", JSONTag: "-", IsEmbedded: true},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, classifier.IsRegularField(tt.field)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestFieldClassifier_parseTypenameTag(t *testing.T) {
	t.Parallel()

	classifier := NewFieldClassifier()

	tests := []struct {
		name string
		tag  string
		want string
	}{
		{
			name: "typenameタグから型名を返す",
			tag:  `json:"-" typename:"Human"`,
			want: "Human",
		},
		{
			name: "typenameタグがない場合は空文字を返す",
			tag:  `json:"-"`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, classifier.parseTypenameTag(tt.tag)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}
