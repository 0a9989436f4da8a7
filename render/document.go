package render

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"htmlview/markup"
	"htmlview/view"
)

// RenderDocument renders body of HTML source into a container with spacing
// between its children. When source could not be parsed or has no body nil
// is returned: caller shows nothing.
func RenderDocument(src string, spacing float64) view.View {
	opts := DefaultOptions()
	opts.Spacing = spacing
	doc, err := NewRenderer(opts, nil).Document(src)
	if err != nil {
		return nil
	}
	return doc.Root
}

// Document parses source and renders its body.
func (r *Renderer) Document(src string) (*view.Document, error) {
	d, err := markup.Parse(src, r.log)
	if err != nil {
		r.log.Debug("Unable to parse document", zap.Int("size", len(src)), zap.Error(err))
		return nil, err
	}
	return &view.Document{
		ID:         r.Fingerprint(src),
		Lang:       d.Lang(),
		Root:       r.Render(d.Body()),
		Spacing:    r.opts.Spacing,
		Selectable: true,
		Size:       len(src),
	}, nil
}

// Fingerprint identifies source rendered with renderer options.
func (r *Renderer) Fingerprint(src string) uuid.UUID {
	return view.Fingerprint(src, r.opts.params()...)
}
