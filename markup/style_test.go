package markup

import "testing"

func TestParseInlineStyle(t *testing.T) {
	tests := []struct {
		decl string
		want InlineStyle
	}{
		{"", InlineStyle{}},
		{"font-weight: bold", InlineStyle{Bold: true}},
		{"font-weight:700; color: red", InlineStyle{Bold: true}},
		{"font-weight: 400", InlineStyle{}},
		{"FONT-STYLE: Italic", InlineStyle{Italic: true}},
		{"text-decoration: underline line-through", InlineStyle{Underline: true, Strikethrough: true}},
		{"text-decoration-line: line-through", InlineStyle{Strikethrough: true}},
		{"font-style: oblique; text-decoration: none", InlineStyle{Italic: true}},
		{"font-weight: ; garbage {{", InlineStyle{}},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			if got := ParseInlineStyle(tt.decl); got != tt.want {
				t.Errorf("ParseInlineStyle(%q) = %+v, want %+v", tt.decl, got, tt.want)
			}
		})
	}
}

func TestElementStyle(t *testing.T) {
	doc := mustParse(t, `<p><span style="font-weight:bold">a</span><span>b</span></p>`)
	spans := doc.Body().Select("span")
	if !spans[0].Style().Bold {
		t.Error("expected bold style")
	}
	if !spans[1].Style().IsZero() {
		t.Error("expected empty style")
	}
}
