package view

import "strings"

// SpanStyle is a style of a single text span.
type SpanStyle string

const (
	StylePlain         SpanStyle = "plain"
	StyleBold          SpanStyle = "bold"
	StyleItalic        SpanStyle = "italic"
	StyleUnderline     SpanStyle = "underline"
	StyleStrikethrough SpanStyle = "strikethrough"
	StyleLink          SpanStyle = "link"
)

// Span is a contiguous piece of text with a style. URL is only set for
// links.
type Span struct {
	Text  string
	Style SpanStyle
	URL   string
}

func Plain(text string) Span {
	return Span{Text: text, Style: StylePlain}
}

func Styled(text string, style SpanStyle) Span {
	return Span{Text: text, Style: style}
}

func LinkSpan(text, url string) Span {
	return Span{Text: text, Style: StyleLink, URL: url}
}

// IsLink reports whether span is navigable.
func (s Span) IsLink() bool {
	return s.Style == StyleLink && len(s.URL) > 0
}

// Concat returns text of all spans in order.
func Concat(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
