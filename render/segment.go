package render

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"htmlview/common"
	"htmlview/markup"
	"htmlview/view"
)

// Segmenter splits element flattened text into styled spans, overlaying
// formatting of direct children onto the parts of text they occupy.
type Segmenter struct {
	// Mode selects how child text is located in parent text. With
	// SegmentModeOffsets ranges recorded by the parser are used and content
	// search is only a fallback. SegmentModeSearch always looks for the
	// first occurrence of child text at or after the cursor.
	Mode common.SegmentMode
	// InlineStyles enables style attribute for children which tag alone
	// gives no formatting.
	InlineStyles bool

	log *zap.Logger
}

func NewSegmenter(mode common.SegmentMode, inlineStyles bool, log *zap.Logger) *Segmenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Segmenter{Mode: mode, InlineStyles: inlineStyles, log: log}
}

// Segment returns spans of element text in document order. Element without
// child elements always produces exactly one plain span. Child which text
// could not be located is dropped together with its text.
func (s *Segmenter) Segment(el *markup.Element) []view.Span {
	full := el.Text()
	children := el.Children()
	if len(children) == 0 {
		return []view.Span{view.Plain(full)}
	}

	base, _ := el.Range()
	spans := make([]view.Span, 0, 2*len(children)+1)
	cursor := 0
	for _, c := range children {
		start, end, found := s.locate(full, base, cursor, c)
		if !found {
			s.log.Debug("Child text not found in parent, dropping",
				zap.Stringer("parent", el), zap.Stringer("child", c), zap.Int("cursor", cursor))
			continue
		}
		if start == end {
			continue
		}
		if start > cursor {
			spans = append(spans, view.Plain(full[cursor:start]))
		}
		spans = append(spans, s.styled(c, full[start:end]))
		cursor = end
	}
	if cursor < len(full) {
		spans = append(spans, view.Plain(full[cursor:]))
	}
	return spans
}

// locate returns range of child text inside parent text, which starts at
// base in the document text.
func (s *Segmenter) locate(full string, base, cursor int, c *markup.Element) (start, end int, found bool) {
	text := c.Text()
	if s.Mode == common.SegmentModeOffsets {
		cs, ce := c.Range()
		start, end = cs-base, ce-base
		if start >= cursor && start <= end && end <= len(full) && full[start:end] == text {
			return start, end, true
		}
		s.log.Debug("Child range is inconsistent, searching", zap.Stringer("child", c), zap.Int("base", base))
	}
	i := strings.Index(full[cursor:], text)
	if i < 0 {
		return 0, 0, false
	}
	return cursor + i, cursor + i + len(text), true
}

func (s *Segmenter) styled(c *markup.Element, text string) view.Span {
	switch c.Tag() {
	case "a":
		if href, ok := c.Attr("href"); ok {
			if u, ok := absoluteURL(href); ok {
				return view.LinkSpan(text, u)
			}
		}
	case "strong", "b":
		return view.Styled(text, view.StyleBold)
	case "em", "i":
		return view.Styled(text, view.StyleItalic)
	case "u":
		return view.Styled(text, view.StyleUnderline)
	case "del", "s":
		return view.Styled(text, view.StyleStrikethrough)
	}

	if s.InlineStyles {
		switch st := c.Style(); {
		case st.Bold:
			return view.Styled(text, view.StyleBold)
		case st.Italic:
			return view.Styled(text, view.StyleItalic)
		case st.Underline:
			return view.Styled(text, view.StyleUnderline)
		case st.Strikethrough:
			return view.Styled(text, view.StyleStrikethrough)
		}
	}
	return view.Plain(text)
}

// absoluteURL accepts only absolute URLs with non-empty host.
func absoluteURL(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || !u.IsAbs() || len(u.Host) == 0 {
		return "", false
	}
	return u.String(), true
}

// parseURL accepts anything net/url is able to parse, relative references
// included.
func parseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errEmptyURL
	}
	if _, err := url.Parse(raw); err != nil {
		return "", err
	}
	return raw, nil
}
