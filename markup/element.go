package markup

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a read-only view of a single markup element.
type Element struct {
	doc      *Document
	node     *html.Node
	parent   *Element
	children []*Element
	tag      string
	own      string
	verbatim bool

	// byte range of element text inside body flattened text
	start, end int
}

func newElement(doc *Document, n *html.Node, parent *Element) *Element {
	el := &Element{
		doc:      doc,
		node:     n,
		parent:   parent,
		tag:      strings.ToLower(n.Data),
		own:      ownText(n),
		verbatim: n.DataAtom == atom.Pre || (parent != nil && parent.verbatim),
	}
	return el
}

// Tag returns lower-cased tag name.
func (e *Element) Tag() string {
	return e.tag
}

// Children returns element children in document order. Hidden content
// (scripts, styles, templates) is never included.
func (e *Element) Children() []*Element {
	return e.children
}

func (e *Element) Parent() *Element {
	return e.parent
}

// Attr returns attribute value as is.
func (e *Element) Attr(name string) (string, bool) {
	return attrValue(e.node, name)
}

// ReadAttr returns attribute value, absent attribute and invalid UTF-8 are
// errors.
func (e *Element) ReadAttr(name string) (string, error) {
	v, ok := attrValue(e.node, name)
	if !ok {
		return "", fmt.Errorf("%s[%s]: %w", e.tag, name, ErrNoAttr)
	}
	if !utf8.ValidString(v) {
		return "", fmt.Errorf("%s[%s]: %w", e.tag, name, ErrMalformedText)
	}
	return v, nil
}

// Text returns flattened text of element: all visible descendant text in
// document order with whitespace collapsed and trimmed.
func (e *Element) Text() string {
	if e.doc == nil {
		return ""
	}
	return e.doc.text[e.start:e.end]
}

// ReadText is Text which reports invalid UTF-8.
func (e *Element) ReadText() (string, error) {
	t := e.Text()
	if !utf8.ValidString(t) {
		return "", fmt.Errorf("%s: %w", e.tag, ErrMalformedText)
	}
	return t, nil
}

// OwnText returns text of direct text children only.
func (e *Element) OwnText() string {
	return e.own
}

// HasText reports whether element has any non-blank text.
func (e *Element) HasText() bool {
	return strings.IndexFunc(e.Text(), func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// Range returns byte range of element text inside body flattened text.
func (e *Element) Range() (start, end int) {
	return e.start, e.end
}

// Node exposes underlying parse tree node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Select returns descendant elements matching CSS selector in document
// order. Invalid selector matches nothing.
func (e *Element) Select(selector string) []*Element {
	if e.doc == nil {
		return nil
	}
	var res []*Element
	goquery.NewDocumentFromNode(e.node).Find(selector).Each(func(_ int, s *goquery.Selection) {
		if el, ok := e.doc.index[s.Get(0)]; ok {
			res = append(res, el)
		}
	})
	return res
}

// First returns first descendant element matching selector or nil.
func (e *Element) First(selector string) *Element {
	if found := e.Select(selector); len(found) > 0 {
		return found[0]
	}
	return nil
}

func (e *Element) String() string {
	return fmt.Sprintf("<%s>[%d:%d]", e.tag, e.start, e.end)
}
