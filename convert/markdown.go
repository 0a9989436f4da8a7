package convert

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	// raw html in markdown goes through the same renderer as html sources
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// markdownToHTML converts Markdown source to complete html document, so it
// has a body to render.
func markdownToHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><body>\n")
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("unable to convert markdown: %w", err)
	}
	buf.WriteString("</body></html>\n")
	return buf.Bytes(), nil
}
