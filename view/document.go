package view

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/language"
)

// Presentation holds visual tokens attached to descriptors.
type Presentation struct {
	ListSpacing        float64
	TableSpacing       float64
	TableHeaderLines   int
	CodeFontSize       float64
	PlaceholderOpacity float64
	Bullet             string
}

func DefaultPresentation() Presentation {
	return Presentation{
		ListSpacing:        8,
		TableSpacing:       8,
		TableHeaderLines:   2,
		CodeFontSize:       12,
		PlaceholderOpacity: 0.2,
		Bullet:             "•",
	}
}

// Document is a rendered markup document.
type Document struct {
	// ID fingerprints source and rendering parameters, equal IDs mean equal
	// trees.
	ID         uuid.UUID
	Lang       language.Tag
	Root       View
	Spacing    float64
	Selectable bool
	// Size of the source in bytes.
	Size int
}

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hview:document"))

// Fingerprint returns stable identifier of source rendered with given
// parameters.
func Fingerprint(src string, params ...string) uuid.UUID {
	data := make([]byte, 0, len(src)+64)
	for _, p := range params {
		data = strconv.AppendQuote(data, p)
		data = append(data, 0)
	}
	data = append(data, src...)
	return uuid.NewSHA1(namespace, data)
}

// Anchors makes unique slug anchors for headings of a single document.
type Anchors map[string]int

// Make returns anchor for text, repeated anchors get numeric suffix which
// never matches anchor given out earlier. Text without anything to slug gets
// no anchor.
func (a Anchors) Make(text string) string {
	base := slug.Make(text)
	if len(base) == 0 {
		return ""
	}
	n, candidate := a[base], base
	for a[candidate] > 0 {
		n++
		candidate = base + "-" + strconv.Itoa(n)
	}
	if n > a[base] {
		a[base] = n
	}
	a[candidate]++
	return candidate
}
