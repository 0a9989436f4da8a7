package view

import "slices"

// Equal reports structural equality of two descriptor trees. It is used as
// a hint to skip re-rendering: false negatives only cost extra work.
func Equal(a, b View) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case TextBlock:
		y, ok := b.(TextBlock)
		return ok && x.Hint == y.Hint && x.Anchor == y.Anchor && slices.Equal(x.Spans, y.Spans)
	case Image:
		y, ok := b.(Image)
		return ok && x == y
	case Figure:
		y, ok := b.(Figure)
		if !ok || x.Caption != y.Caption || x.HasCaption != y.HasCaption {
			return false
		}
		if x.Image == nil || y.Image == nil {
			return x.Image == nil && y.Image == nil
		}
		return *x.Image == *y.Image
	case Link:
		y, ok := b.(Link)
		return ok && x == y
	case Divider:
		_, ok := b.(Divider)
		return ok
	case UnorderedList:
		y, ok := b.(UnorderedList)
		return ok && x.Spacing == y.Spacing && slices.EqualFunc(x.Items, y.Items, equalItems)
	case OrderedList:
		y, ok := b.(OrderedList)
		return ok && x.Spacing == y.Spacing && slices.EqualFunc(x.Items, y.Items, equalItems)
	case Table:
		y, ok := b.(Table)
		return ok && x.Spacing == y.Spacing && x.HeaderLines == y.HeaderLines &&
			slices.Equal(x.Headers, y.Headers) &&
			slices.EqualFunc(x.Rows, y.Rows, func(r1, r2 []string) bool { return slices.Equal(r1, r2) })
	case CodeBlock:
		y, ok := b.(CodeBlock)
		return ok && x == y
	case Container:
		y, ok := b.(Container)
		return ok && x.Spacing == y.Spacing && slices.EqualFunc(x.Children, y.Children, Equal)
	case Spacer:
		_, ok := b.(Spacer)
		return ok
	case Empty:
		_, ok := b.(Empty)
		return ok
	}
	return false
}

func equalItems(a, b ListItem) bool {
	return a.Marker == b.Marker && slices.Equal(a.Spans, b.Spans)
}
