package markup

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// InlineStyle is the subset of style attribute declarations that affect text
// runs.
type InlineStyle struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// IsZero reports whether nothing was set.
func (s InlineStyle) IsZero() bool {
	return s == InlineStyle{}
}

// Style parses element style attribute. Unknown properties and malformed
// declarations are ignored.
func (e *Element) Style() InlineStyle {
	v, ok := e.Attr("style")
	if !ok || len(strings.TrimSpace(v)) == 0 {
		return InlineStyle{}
	}
	return ParseInlineStyle(v)
}

// ParseInlineStyle interprets declarations of a style attribute.
func ParseInlineStyle(decl string) InlineStyle {
	var st InlineStyle

	p := css.NewParser(parse.NewInputString(decl), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			return st
		}
		if gt != css.DeclarationGrammar {
			continue
		}

		var values []string
		for _, t := range p.Values() {
			switch t.TokenType {
			case css.IdentToken, css.NumberToken:
				values = append(values, strings.ToLower(string(t.Data)))
			}
		}
		if len(values) == 0 {
			continue
		}

		switch strings.ToLower(string(data)) {
		case "font-weight":
			st.Bold = isBoldWeight(values[0])
		case "font-style":
			st.Italic = values[0] == "italic" || values[0] == "oblique"
		case "text-decoration", "text-decoration-line":
			for _, v := range values {
				switch v {
				case "underline":
					st.Underline = true
				case "line-through":
					st.Strikethrough = true
				case "none":
					st.Underline, st.Strikethrough = false, false
				}
			}
		}
	}
}

func isBoldWeight(v string) bool {
	switch v {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 600
}
