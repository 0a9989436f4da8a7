package render

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"htmlview/markup"
	"htmlview/view"
)

var errEmptyURL = errors.New("empty url")

// rule maps elements it matches to a single descriptor. Rules are evaluated
// in order, first match wins. Error returned by build makes element render as
// Empty.
type rule struct {
	name  string
	match func(el *markup.Element) bool
	build func(p *pass, el *markup.Element, depth int) (view.View, error)
}

func tags(names ...string) func(el *markup.Element) bool {
	return func(el *markup.Element) bool {
		return slices.Contains(names, el.Tag())
	}
}

// hasSingleImageChild reports element with exactly one child element which
// is an image.
func hasSingleImageChild(el *markup.Element) bool {
	children := el.Children()
	return len(children) == 1 && children[0].Tag() == "img"
}

func defaultRules() []rule {
	return []rule{
		{
			name:  "paragraph",
			match: func(el *markup.Element) bool { return el.Tag() == "p" && !hasSingleImageChild(el) },
			build: textBlock(view.HintBody),
		},
		{
			name:  "paragraph-image",
			match: func(el *markup.Element) bool { return el.Tag() == "p" && hasSingleImageChild(el) },
			build: func(p *pass, el *markup.Element, _ int) (view.View, error) {
				return p.image(el.Children()[0])
			},
		},
		{name: "small", match: tags("small"), build: textBlock(view.HintCaption)},
		{
			name:  "span",
			match: func(el *markup.Element) bool { return el.Tag() == "span" && el.HasText() },
			build: textBlock(view.HintCaption),
		},
		{name: "title-large", match: tags("h1"), build: textBlock(view.HintTitleLarge)},
		{name: "title-medium", match: tags("h2"), build: textBlock(view.HintTitleMedium)},
		{name: "bold", match: tags("h3", "h4", "h5", "h6", "strong"), build: textBlock(view.HintBold)},
		{name: "italic", match: tags("blockquote", "em", "i", "italic"), build: textBlock(view.HintItalic)},
		{
			name:  "image",
			match: tags("img"),
			build: func(p *pass, el *markup.Element, _ int) (view.View, error) { return p.image(el) },
		},
		{name: "figure", match: tags("figure"), build: buildFigure},
		{name: "link", match: tags("a"), build: buildLink},
		{
			name:  "divider",
			match: tags("hr"),
			build: func(*pass, *markup.Element, int) (view.View, error) { return view.Divider{}, nil },
		},
		{name: "unordered-list", match: tags("ul"), build: buildUnorderedList},
		{name: "ordered-list", match: tags("ol"), build: buildOrderedList},
		{name: "table", match: tags("table"), build: buildTable},
		{
			name:  "spacer",
			match: tags("br"),
			build: func(*pass, *markup.Element, int) (view.View, error) { return view.Spacer{}, nil },
		},
		{name: "code", match: tags("code", "pre"), build: buildCode},
		{
			name:  "container",
			match: func(*markup.Element) bool { return true },
			build: buildContainer,
		},
	}
}

func textBlock(hint view.Hint) func(p *pass, el *markup.Element, depth int) (view.View, error) {
	return func(p *pass, el *markup.Element, _ int) (view.View, error) {
		txt, err := el.ReadText()
		if err != nil {
			return nil, err
		}
		tb := view.TextBlock{Spans: p.r.seg.Segment(el), Hint: hint}
		if p.r.opts.Anchors && isHeading(el) {
			tb.Anchor = p.anchors.Make(txt)
		}
		return tb, nil
	}
}

func isHeading(el *markup.Element) bool {
	t := el.Tag()
	return len(t) == 2 && t[0] == 'h' && t[1] >= '1' && t[1] <= '6'
}

func (p *pass) image(el *markup.Element) (view.Image, error) {
	src, err := el.ReadAttr("src")
	if err != nil {
		return view.Image{}, err
	}
	u, err := parseURL(src)
	if err != nil {
		return view.Image{}, fmt.Errorf("img[src]: %w", err)
	}
	alt, _ := el.ReadAttr("alt")
	return view.Image{URL: u, Alt: alt, PlaceholderOpacity: p.r.opts.Presentation.PlaceholderOpacity}, nil
}

func buildFigure(p *pass, el *markup.Element, _ int) (view.View, error) {
	img := el.First("img")
	if img == nil {
		return view.Figure{}, nil
	}

	var fig view.Figure
	if i, err := p.image(img); err == nil {
		fig.Image = &i
	} else {
		p.r.log.Debug("Figure image skipped", zapElement(img), zap.Error(err))
	}
	if caption := el.First("figcaption"); caption != nil {
		if txt, err := caption.ReadText(); err == nil {
			fig.Caption, fig.HasCaption = txt, true
		}
	}
	return fig, nil
}

func buildLink(_ *pass, el *markup.Element, _ int) (view.View, error) {
	href, err := el.ReadAttr("href")
	if err != nil {
		return nil, err
	}
	u, err := parseURL(href)
	if err != nil {
		return nil, fmt.Errorf("a[href]: %w", err)
	}
	return view.Link{Text: el.OwnText(), URL: u}, nil
}

func (p *pass) items(el *markup.Element, marker func(i int) string) []view.ListItem {
	children := el.Children()
	items := make([]view.ListItem, 0, len(children))
	for i, c := range children {
		item := view.ListItem{Marker: marker(i)}
		if _, err := c.ReadText(); err == nil {
			item.Spans = p.r.seg.Segment(c)
		} else {
			p.r.log.Debug("List item text skipped", zapElement(c), zap.Error(err))
		}
		items = append(items, item)
	}
	return items
}

func buildUnorderedList(p *pass, el *markup.Element, _ int) (view.View, error) {
	bullet := p.r.opts.Presentation.Bullet
	return view.UnorderedList{
		Items:   p.items(el, func(int) string { return bullet }),
		Spacing: p.r.opts.Presentation.ListSpacing,
	}, nil
}

func buildOrderedList(p *pass, el *markup.Element, _ int) (view.View, error) {
	return view.OrderedList{
		Items:   p.items(el, func(i int) string { return strconv.Itoa(i+1) + "." }),
		Spacing: p.r.opts.Presentation.ListSpacing,
	}, nil
}

func buildTable(p *pass, el *markup.Element, _ int) (view.View, error) {
	m, err := extractTable(el)
	if err != nil {
		p.r.log.Debug("Table content skipped", zapElement(el), zap.Error(err))
	}
	return view.Table{
		Headers:     m.Headers,
		Rows:        m.Rows,
		Spacing:     p.r.opts.Presentation.TableSpacing,
		HeaderLines: p.r.opts.Presentation.TableHeaderLines,
	}, nil
}

func buildCode(p *pass, el *markup.Element, _ int) (view.View, error) {
	txt, err := el.ReadText()
	if err != nil {
		return nil, err
	}
	return view.CodeBlock{
		Text:     strings.ReplaceAll(txt, `\n`, "\n"),
		FontSize: p.r.opts.Presentation.CodeFontSize,
	}, nil
}

func buildContainer(p *pass, el *markup.Element, depth int) (view.View, error) {
	children := el.Children()
	c := view.Container{Children: make([]view.View, 0, len(children)), Spacing: p.r.opts.Spacing}
	for _, child := range children {
		c.Children = append(c.Children, p.render(child, depth+1))
	}
	return c, nil
}
