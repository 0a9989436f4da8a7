// Package render maps markup elements to view descriptors.
package render

import (
	"strconv"

	"go.uber.org/zap"

	"htmlview/common"
	"htmlview/config"
	"htmlview/markup"
	"htmlview/view"
)

const (
	DefaultBlockSpacing = 24
	DefaultMaxDepth     = 64
)

// Options are formatting parameters. Rendering is a pure function of
// element and options.
type Options struct {
	Spacing      float64
	MaxDepth     int
	Segmentation common.SegmentMode
	InlineStyles bool
	Anchors      bool
	Presentation view.Presentation
}

func DefaultOptions() Options {
	return Options{
		Spacing:      DefaultBlockSpacing,
		MaxDepth:     DefaultMaxDepth,
		Segmentation: common.SegmentModeOffsets,
		Presentation: view.DefaultPresentation(),
	}
}

func OptionsFromConfig(cfg *config.DocumentConfig) Options {
	return Options{
		Spacing:      cfg.BlockSpacing,
		MaxDepth:     cfg.MaxDepth,
		Segmentation: cfg.Segmentation,
		InlineStyles: cfg.InlineStyles,
		Anchors:      cfg.Anchors,
		Presentation: view.Presentation{
			ListSpacing:        cfg.Presentation.ListSpacing,
			TableSpacing:       cfg.Presentation.TableSpacing,
			TableHeaderLines:   cfg.Presentation.TableHeaderLines,
			CodeFontSize:       cfg.Presentation.CodeFontSize,
			PlaceholderOpacity: cfg.Presentation.PlaceholderOpacity,
			Bullet:             cfg.Presentation.Bullet,
		},
	}
}

// params lists options in stable order for fingerprinting.
func (o Options) params() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{
		f(o.Spacing),
		strconv.Itoa(o.MaxDepth),
		o.Segmentation.String(),
		strconv.FormatBool(o.InlineStyles),
		strconv.FormatBool(o.Anchors),
		f(o.Presentation.ListSpacing),
		f(o.Presentation.TableSpacing),
		strconv.Itoa(o.Presentation.TableHeaderLines),
		f(o.Presentation.CodeFontSize),
		f(o.Presentation.PlaceholderOpacity),
		o.Presentation.Bullet,
	}
}

// Renderer is safe for concurrent use, it keeps no state between calls.
type Renderer struct {
	opts  Options
	seg   *Segmenter
	rules []rule
	log   *zap.Logger
}

func NewRenderer(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Renderer{
		opts:  opts,
		seg:   NewSegmenter(opts.Segmentation, opts.InlineStyles, log),
		rules: defaultRules(),
		log:   log,
	}
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Render maps element to exactly one descriptor. Nodes which could not be
// rendered become view.Empty without affecting their siblings.
func (r *Renderer) Render(el *markup.Element) view.View {
	if el == nil {
		return view.Empty{}
	}
	p := &pass{r: r, anchors: view.Anchors{}}
	return p.render(el, 0)
}

// ruleFor returns name of the rule element is dispatched to.
func (r *Renderer) ruleFor(el *markup.Element) string {
	for _, rl := range r.rules {
		if rl.match(el) {
			return rl.name
		}
	}
	return ""
}

// pass is state of a single Render call.
type pass struct {
	r       *Renderer
	anchors view.Anchors
}

func (p *pass) render(el *markup.Element, depth int) view.View {
	if depth > p.r.opts.MaxDepth {
		p.r.log.Warn("Markup is nested too deep, skipping", zapElement(el), zap.Int("max-depth", p.r.opts.MaxDepth))
		return view.Empty{}
	}
	for _, rl := range p.r.rules {
		if !rl.match(el) {
			continue
		}
		v, err := rl.build(p, el, depth)
		if err != nil {
			p.r.log.Debug("Unable to render element, skipping", zap.String("rule", rl.name), zapElement(el), zap.Error(err))
			return view.Empty{}
		}
		return v
	}
	return view.Empty{}
}

func zapElement(el *markup.Element) zap.Field {
	return zap.Stringer("element", el)
}
