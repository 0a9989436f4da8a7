package convert

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"heading", "# Release Notes\n", []string{`<h1 id="release-notes">Release Notes</h1>`}},
		{"table", "| A | B |\n|---|---|\n| 1 | 2 |\n", []string{"<table>", "<th>A</th>", "<td>2</td>"}},
		{"strikethrough", "~~gone~~\n", []string{"<del>gone</del>"}},
		{"raw html", "<figure><img src=\"a.png\"></figure>\n", []string{`<img src="a.png">`}},
		{"autolink", "see https://example.com\n", []string{`<a href="https://example.com">https://example.com</a>`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := markdownToHTML([]byte(tt.src))
			if err != nil {
				t.Fatalf("markdownToHTML() error = %v", err)
			}
			s := string(out)
			if !strings.HasPrefix(s, "<!DOCTYPE html>") || !strings.Contains(s, "<body>") {
				t.Errorf("output is not a complete document: %q", s)
			}
			for _, w := range tt.want {
				if !strings.Contains(s, w) {
					t.Errorf("output does not contain %q:\n%s", w, s)
				}
			}
		})
	}
}
