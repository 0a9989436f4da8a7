// Package view defines declarative view descriptors produced from markup.
// Descriptors are plain values: they are immutable once built and compared
// structurally, so host toolkit may skip re-layout of equal subtrees.
package view

// Kind names descriptor variant.
type Kind string

const (
	KindTextBlock     Kind = "text"
	KindImage         Kind = "image"
	KindFigure        Kind = "figure"
	KindLink          Kind = "link"
	KindDivider       Kind = "divider"
	KindUnorderedList Kind = "unordered-list"
	KindOrderedList   Kind = "ordered-list"
	KindTable         Kind = "table"
	KindCodeBlock     Kind = "code"
	KindContainer     Kind = "container"
	KindSpacer        Kind = "spacer"
	KindEmpty         Kind = "empty"
)

// View is a single view descriptor. Set of implementations is closed.
type View interface {
	Kind() Kind
	sealed()
}

// Hint tells host toolkit which text style to use for a block.
type Hint string

const (
	HintBody        Hint = "body"
	HintCaption     Hint = "caption"
	HintTitleLarge  Hint = "title-large"
	HintTitleMedium Hint = "title-medium"
	HintBold        Hint = "bold"
	HintItalic      Hint = "italic"
)

type (
	// TextBlock is a run of styled spans. Anchor is set for headings when
	// anchors are requested.
	TextBlock struct {
		Spans  []Span
		Hint   Hint
		Anchor string
	}

	// Image is resolved asynchronously by host, until then (and on failure)
	// placeholder of secondary color with PlaceholderOpacity is shown.
	Image struct {
		URL                string
		Alt                string
		PlaceholderOpacity float64
	}

	// Figure is an optional image with optional caption. Figure made from
	// markup without img has neither.
	Figure struct {
		Image      *Image
		Caption    string
		HasCaption bool
	}

	// Link is a navigable text, presented underlined in accent color.
	Link struct {
		Text string
		URL  string
	}

	Divider struct{}

	// ListItem is a single list entry with its marker ("•", "1." and so on).
	ListItem struct {
		Marker string
		Spans  []Span
	}

	UnorderedList struct {
		Items   []ListItem
		Spacing float64
	}

	OrderedList struct {
		Items   []ListItem
		Spacing float64
	}

	// Table has header row presented in bold caption font limited to
	// HeaderLines lines and rows separated by dividers.
	Table struct {
		Headers     []string
		Rows        [][]string
		Spacing     float64
		HeaderLines int
	}

	// CodeBlock is monospaced text in a bordered horizontally scrollable
	// frame.
	CodeBlock struct {
		Text     string
		FontSize float64
	}

	// Container stacks children vertically with Spacing between siblings.
	Container struct {
		Children []View
		Spacing  float64
	}

	// Spacer is flexible space.
	Spacer struct{}

	// Empty is produced for skipped nodes and nodes which failed to render.
	Empty struct{}
)

func (TextBlock) Kind() Kind     { return KindTextBlock }
func (Image) Kind() Kind         { return KindImage }
func (Figure) Kind() Kind        { return KindFigure }
func (Link) Kind() Kind          { return KindLink }
func (Divider) Kind() Kind       { return KindDivider }
func (UnorderedList) Kind() Kind { return KindUnorderedList }
func (OrderedList) Kind() Kind   { return KindOrderedList }
func (Table) Kind() Kind         { return KindTable }
func (CodeBlock) Kind() Kind     { return KindCodeBlock }
func (Container) Kind() Kind     { return KindContainer }
func (Spacer) Kind() Kind        { return KindSpacer }
func (Empty) Kind() Kind         { return KindEmpty }

func (TextBlock) sealed()     {}
func (Image) sealed()         {}
func (Figure) sealed()        {}
func (Link) sealed()          {}
func (Divider) sealed()       {}
func (UnorderedList) sealed() {}
func (OrderedList) sealed()   {}
func (Table) sealed()         {}
func (CodeBlock) sealed()     {}
func (Container) sealed()     {}
func (Spacer) sealed()        {}
func (Empty) sealed()         {}

// IsEmpty reports whether v contributes nothing.
func IsEmpty(v View) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Empty)
	return ok
}

// Walk calls fn for v and all its descendants in document order. Figure
// image is visited as a child of figure.
func Walk(v View, fn func(v View, depth int)) {
	walk(v, 0, fn)
}

func walk(v View, depth int, fn func(v View, depth int)) {
	if v == nil {
		return
	}
	fn(v, depth)
	switch x := v.(type) {
	case Container:
		for _, c := range x.Children {
			walk(c, depth+1, fn)
		}
	case Figure:
		if x.Image != nil {
			walk(*x.Image, depth+1, fn)
		}
	}
}
