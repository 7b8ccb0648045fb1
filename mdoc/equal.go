package mdoc

import "fmt"

// Equal reports whether two documents are structurally equivalent: the same
// block and inline sequences, node types, text, hrefs, heading levels, list
// kinds, and mark sets. List depths are derived data and are not compared.
func Equal(a, b *Document) bool {
	return Diff(a, b) == ""
}

// Diff describes the first structural difference between two documents, or
// returns the empty string when they are equal.
func Diff(a, b *Document) string {
	if len(a.Blocks) != len(b.Blocks) {
		return fmt.Sprintf("block count %v != %v", len(a.Blocks), len(b.Blocks))
	}
	for i := range a.Blocks {
		if d := diffBlock(a.Blocks[i], b.Blocks[i]); d != "" {
			return fmt.Sprintf("block[%v]: %v", i, d)
		}
	}
	return ""
}

func diffBlock(a, b Block) string {
	switch a := a.(type) {
	case *Paragraph:
		if b, ok := b.(*Paragraph); ok {
			return diffInlines(a.Inlines, b.Inlines)
		}
	case *Heading:
		if b, ok := b.(*Heading); ok {
			if a.Level != b.Level {
				return fmt.Sprintf("heading level %v != %v", a.Level, b.Level)
			}
			return diffInlines(a.Inlines, b.Inlines)
		}
	case *List:
		if b, ok := b.(*List); ok {
			return diffList(a, b)
		}
	case *ListItem:
		if b, ok := b.(*ListItem); ok {
			return diffItem(a, b)
		}
	case *HorizontalRule:
		if _, ok := b.(*HorizontalRule); ok {
			return ""
		}
	}
	return fmt.Sprintf("%v != %v", a, b)
}

func diffList(a, b *List) string {
	if (a == nil) != (b == nil) {
		return fmt.Sprintf("sublist %v != %v", a, b)
	}
	if a == nil {
		return ""
	}
	if a.Ordered != b.Ordered {
		return fmt.Sprintf("%v != %v", a, b)
	}
	if len(a.Items) != len(b.Items) {
		return fmt.Sprintf("item count %v != %v", len(a.Items), len(b.Items))
	}
	for i := range a.Items {
		if d := diffItem(a.Items[i], b.Items[i]); d != "" {
			return fmt.Sprintf("item[%v]: %v", i, d)
		}
	}
	return ""
}

func diffItem(a, b *ListItem) string {
	if d := diffInlines(a.Inlines, b.Inlines); d != "" {
		return d
	}
	return diffList(a.Sublist, b.Sublist)
}

func diffInlines(a, b []Inline) string {
	for i := 0; i < len(a) || i < len(b); i++ {
		if i >= len(a) {
			return fmt.Sprintf("inline[%v]: missing != %+v", i, b[i])
		}
		if i >= len(b) {
			return fmt.Sprintf("inline[%v]: %+v != missing", i, a[i])
		}
		if d := diffInline(a[i], b[i]); d != "" {
			return fmt.Sprintf("inline[%v]: %v", i, d)
		}
	}
	return ""
}

func diffInline(a, b Inline) string {
	switch a := a.(type) {
	case *Text:
		if b, ok := b.(*Text); ok && a.Value == b.Value && a.Marks == b.Marks {
			return ""
		}
	case *LineBreak:
		if _, ok := b.(*LineBreak); ok {
			return ""
		}
	case *Link:
		if b, ok := b.(*Link); ok {
			if a.Href != b.Href {
				return fmt.Sprintf("href %q != %q", a.Href, b.Href)
			}
			return diffInlines(a.Children, b.Children)
		}
	}
	return fmt.Sprintf("%+v != %+v", a, b)
}
