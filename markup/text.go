package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// Elements which separate their content from surrounding text.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tbody: true, atom.Td: true,
	atom.Tfoot: true, atom.Th: true, atom.Thead: true, atom.Tr: true, atom.Ul: true,
}

// Elements whose content is never visible text.
var hiddenElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Template: true, atom.Noscript: true,
	atom.Head: true, atom.Title: true,
}

// builder produces flattened text: whitespace runs collapse into a single
// space, no leading or trailing space is kept, block boundaries act as
// whitespace and text under pre is kept verbatim. Elements record byte ranges
// of what they contributed while text is being produced.
type builder struct {
	strings.Builder
	pending bool
	doc     *Document
}

func newBuilder(doc *Document) *builder {
	return &builder{doc: doc}
}

func (b *builder) space() {
	if b.Len() > 0 {
		b.pending = true
	}
}

func (b *builder) flush() {
	if b.pending {
		b.WriteByte(' ')
		b.pending = false
	}
}

func (b *builder) text(data string, verbatim bool) {
	if utf8.ValidString(data) {
		data = norm.NFC.String(data)
	}
	if verbatim {
		if len(data) == 0 {
			return
		}
		b.flush()
		b.WriteString(data)
		return
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRuneInString(data)
		if isCollapsible(r) {
			b.space()
		} else {
			// invalid bytes are kept as is, so that they could be detected later
			b.flush()
			b.WriteString(data[:size])
		}
		data = data[size:]
	}
}

func (b *builder) build(n *html.Node, parent *Element) *Element {
	el := newElement(b.doc, n, parent)
	if b.doc != nil {
		b.doc.index[n] = el
	}

	block := blockElements[n.DataAtom]
	if block {
		b.space()
	}
	el.start = b.Len()

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.text(c.Data, el.verbatim)
		case html.ElementNode:
			if hiddenElements[c.DataAtom] {
				continue
			}
			el.children = append(el.children, b.build(c, el))
		}
	}

	el.end = b.Len()
	if block {
		b.space()
	}
	return el
}

// finish trims element ranges so that they cover exactly element text.
func (b *builder) finish(el *Element, text string) {
	for el.start < el.end && text[el.start] == ' ' {
		el.start++
	}
	for el.end > el.start && text[el.end-1] == ' ' {
		el.end--
	}
	for _, c := range el.children {
		b.finish(c, text)
	}
}

// isCollapsible reports whitespace participating in collapsing. Non-breaking
// space is content.
func isCollapsible(r rune) bool {
	return r != '\u00a0' && unicode.IsSpace(r)
}

// ownText collapses text of direct text children, line breaks count as
// whitespace.
func ownText(n *html.Node) string {
	b := newBuilder(nil)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.text(c.Data, false)
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			b.space()
		}
	}
	return b.String()
}
