package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindComponentBody(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		ident    string
		wantOK   bool
		wantTail string // text right after the returned region
	}{
		{
			name:     "function_declaration",
			src:      "export function Foo() {\n  return null;\n}",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n  return null;\n}",
		},
		{
			name:     "default_function",
			src:      "export default function Foo({ a }: Props) {\n}",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n}",
		},
		{
			name:     "arrow_const_with_destructured_props",
			src:      "export const Foo = ({ title, onPress }: Props) => {\n  return null;\n};",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n  return null;\n};",
		},
		{
			name:     "typed_const_with_object_type_argument",
			src:      "export const Foo: React.FC<{ title: string }> = ({ title }) => {\n};",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n};",
		},
		{
			name:     "wrapped_in_call",
			src:      "export const Foo = React.memo(() => {\n  return null;\n});",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n  return null;\n});",
		},
		{
			name:     "return_type_annotation",
			src:      "export function Foo(): JSX.Element {\n}",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n}",
		},
		{
			name:     "multiline_parameters",
			src:      "export function Foo(\n  props: Props,\n) {\n}",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n}",
		},
		{
			name:     "first_structural_match_wins",
			src:      "export function Foo() {\n// one\n}\nexport const Foo = () => {\n// two\n}",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n// one\n}\nexport const Foo = () => {\n// two\n}",
		},
		{
			name:     "prefix_name_is_not_a_match",
			src:      "export function FooBar() {\n}\nexport function Foo() {\n// here\n}",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n// here\n}",
		},
		{
			name:     "wrapped_named_function",
			src:      "export const Memo = React.memo(function Memo() {\n  const f = () => {\n    go();\n  };\n  return null;\n});",
			ident:    "Memo",
			wantOK:   true,
			wantTail: "\n  const f = () => {\n    go();\n  };\n  return null;\n});",
		},
		{
			name:     "default_param_arrow",
			src:      "export function Def({ onPress = () => {} }: P) {\n  return null;\n}",
			ident:    "Def",
			wantOK:   true,
			wantTail: "\n  return null;\n}",
		},
		{
			name:     "forward_ref_with_generics",
			src:      "export const Foo = forwardRef<View, Props>((props, ref) => {\n});",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n});",
		},
		{
			name:     "typed_arrow_return",
			src:      "export const Foo = (props: P): JSX.Element => {\n};",
			ident:    "Foo",
			wantOK:   true,
			wantTail: "\n};",
		},
		{
			name:   "arrow_with_expression_body",
			src:    "export const Foo = () => (\n  <View style={{ flex: 1 }} />\n);",
			ident:  "Foo",
			wantOK: false,
		},
		{
			name:   "not_exported",
			src:    "function Foo() {\n}",
			ident:  "Foo",
			wantOK: false,
		},
		{
			name:   "different_name",
			src:    "export default function Bar() {\n}",
			ident:  "Foo",
			wantOK: false,
		},
		{
			name:   "const_without_body",
			src:    "export const Foo = styled.View;\nconst x = () => {};",
			ident:  "Foo",
			wantOK: false,
		},
		{
			name:   "export_inside_identifier",
			src:    "reexport function Foo() {\n}",
			ident:  "Foo",
			wantOK: false,
		},
		{
			name:   "empty_identifier",
			src:    "export function Foo() {\n}",
			ident:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, ok := findComponentBody(tt.src, tt.ident)
			assert.Equal(t, tt.wantOK, ok, "match result")
			if !tt.wantOK {
				return
			}
			assert.Equal(t, byte('{'), tt.src[region.End-1], "region should end on the body brace")
			assert.Equal(t, tt.wantTail, tt.src[region.End:])
		})
	}
}

func TestInsertionPoint(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		end         int
		wantAt      int
		wantNewline bool
	}{
		{
			name:   "newline_after_brace",
			src:    "{\n  x",
			end:    1,
			wantAt: 2,
		},
		{
			name:   "trailing_spaces_then_newline",
			src:    "{  \r\n  x",
			end:    1,
			wantAt: 5,
		},
		{
			name:        "code_on_same_line",
			src:         "{ return x; }",
			end:         1,
			wantAt:      1,
			wantNewline: true,
		},
		{
			name:        "end_of_text",
			src:         "{",
			end:         1,
			wantAt:      1,
			wantNewline: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, newline := insertionPoint(tt.src, tt.end)
			assert.Equal(t, tt.wantAt, at)
			assert.Equal(t, tt.wantNewline, newline)
		})
	}
}
