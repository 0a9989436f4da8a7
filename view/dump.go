package view

import (
	"strconv"
	"strings"
)

// Dump returns human readable indented representation of a descriptor tree.
func Dump(v View) string {
	tw := newTreeWriter()
	dump(tw, v, 0)
	return tw.String()
}

// Dump returns document header followed by its tree.
func (d *Document) Dump() string {
	tw := newTreeWriter()
	tw.line(0, "document id=%s lang=%s size=%d selectable=%t", d.ID, d.Lang, d.Size, d.Selectable)
	dump(tw, d.Root, 1)
	return tw.String()
}

func dump(tw *treeWriter, v View, depth int) {
	switch x := v.(type) {
	case nil:
		tw.line(depth, "<nil>")
	case TextBlock:
		if len(x.Anchor) > 0 {
			tw.line(depth, "%s hint=%s anchor=%s", x.Kind(), x.Hint, x.Anchor)
		} else {
			tw.line(depth, "%s hint=%s", x.Kind(), x.Hint)
		}
		dumpSpans(tw, x.Spans, depth+1)
	case Image:
		tw.line(depth, "%s url=%s alt=%s opacity=%s", x.Kind(), encodeText(x.URL), encodeText(x.Alt), formatFloat(x.PlaceholderOpacity))
	case Figure:
		if x.HasCaption {
			tw.text(depth, string(x.Kind())+" caption", x.Caption)
		} else {
			tw.line(depth, "%s", x.Kind())
		}
		if x.Image != nil {
			dump(tw, *x.Image, depth+1)
		}
	case Link:
		tw.text(depth, string(x.Kind())+" <"+x.URL+">", x.Text)
	case UnorderedList:
		tw.line(depth, "%s spacing=%s", x.Kind(), formatFloat(x.Spacing))
		dumpItems(tw, x.Items, depth+1)
	case OrderedList:
		tw.line(depth, "%s spacing=%s", x.Kind(), formatFloat(x.Spacing))
		dumpItems(tw, x.Items, depth+1)
	case Table:
		tw.line(depth, "%s spacing=%s header_lines=%d", x.Kind(), formatFloat(x.Spacing), x.HeaderLines)
		tw.line(depth+1, "header: %s", joinCells(x.Headers))
		for _, r := range x.Rows {
			tw.line(depth+1, "row: %s", joinCells(r))
		}
	case CodeBlock:
		tw.text(depth, string(x.Kind())+" size="+formatFloat(x.FontSize), x.Text)
	case Container:
		tw.line(depth, "%s spacing=%s", x.Kind(), formatFloat(x.Spacing))
		for _, c := range x.Children {
			dump(tw, c, depth+1)
		}
	default:
		tw.line(depth, "%s", v.Kind())
	}
}

func dumpSpans(tw *treeWriter, spans []Span, depth int) {
	for _, s := range spans {
		if s.Style == StyleLink {
			tw.text(depth, string(s.Style)+" <"+s.URL+">", s.Text)
			continue
		}
		tw.text(depth, string(s.Style), s.Text)
	}
}

func dumpItems(tw *treeWriter, items []ListItem, depth int) {
	for _, it := range items {
		tw.text(depth, "item", it.Marker)
		dumpSpans(tw, it.Spans, depth+1)
	}
}

func joinCells(cells []string) string {
	q := make([]string, len(cells))
	for i, c := range cells {
		q[i] = strconv.Quote(c)
	}
	return strings.Join(q, " | ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
