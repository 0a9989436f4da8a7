// Package markup adapts golang.org/x/net/html parse tree into read-only
// elements with flattened text. Every element remembers where its text lives
// inside the body flattened text, so callers never have to look for it.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
)

var (
	// ErrNoBody is returned when parsed document has no body element
	// (frameset documents, for example).
	ErrNoBody = errors.New("document has no body")
	// ErrMalformedText is returned when node text or attribute is not valid
	// UTF-8.
	ErrMalformedText = errors.New("malformed text")
	// ErrNoAttr is returned when requested attribute is absent.
	ErrNoAttr = errors.New("attribute not found")
)

// Document is parsed markup. It is never modified after Parse returns and is
// safe for concurrent reads.
type Document struct {
	body  *Element
	lang  language.Tag
	text  string
	index map[*html.Node]*Element
}

// Parse parses HTML source. Markup errors are recovered by the HTML parser,
// only absent body is reported.
func Parse(src string, log *zap.Logger) (*Document, error) {
	return ParseReader(strings.NewReader(src), log)
}

// ParseReader parses UTF-8 HTML from r.
func ParseReader(r io.Reader, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}

	htmlNode := findChild(root, atom.Html)
	if htmlNode == nil {
		return nil, ErrNoBody
	}
	bodyNode := findChild(htmlNode, atom.Body)
	if bodyNode == nil {
		return nil, ErrNoBody
	}

	doc := &Document{lang: language.Und, index: make(map[*html.Node]*Element)}
	if v, ok := attrValue(htmlNode, "lang"); ok && len(v) > 0 {
		if tag, err := language.Parse(v); err == nil {
			doc.lang = tag
		} else {
			log.Debug("Ignoring document language", zap.String("lang", v), zap.Error(err))
		}
	}

	b := newBuilder(doc)
	doc.body = b.build(bodyNode, nil)
	doc.text = b.String()
	b.finish(doc.body, doc.text)

	log.Debug("Markup parsed", zap.Int("elements", len(doc.index)), zap.Int("text", len(doc.text)), zap.Stringer("lang", doc.lang))
	return doc, nil
}

// Body returns body element, never nil for successfully parsed document.
func (d *Document) Body() *Element {
	return d.body
}

// Lang returns language declared on html element or language.Und.
func (d *Document) Lang() language.Tag {
	return d.lang
}

// Text returns flattened text of the whole body.
func (d *Document) Text() string {
	return d.text
}

func findChild(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func attrValue(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
