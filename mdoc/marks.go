package mdoc

import (
	"fmt"
	"io"
	"strings"
)

// Marks is a set of text formatting attributes.
type Marks uint8

// Marks constants for the supported text formats; the order of declaration
// is the nesting order used when serializing (outermost first).
const (
	Bold Marks = 1 << iota
	Italic

	allMarks = Bold | Italic
)

// Has reports whether every mark in o is set in m.
func (m Marks) Has(o Marks) bool { return m&o == o }

// Each calls fn for every mark set in m, in nesting order.
func (m Marks) Each(fn func(Marks)) {
	for bit := Marks(1); bit&allMarks != 0; bit <<= 1 {
		if m&bit != 0 {
			fn(bit)
		}
	}
}

// Format writes mark names joined by "+", or "plain" for the empty set.
func (m Marks) Format(f fmt.State, _ rune) {
	io.WriteString(f, m.String())
}

func (m Marks) String() string {
	if m == 0 {
		return "plain"
	}
	var parts []string
	m.Each(func(bit Marks) {
		switch bit {
		case Bold:
			parts = append(parts, "bold")
		case Italic:
			parts = append(parts, "italic")
		}
	})
	if extra := m &^ allMarks; extra != 0 {
		parts = append(parts, fmt.Sprintf("mark%#x", uint8(extra)))
	}
	return strings.Join(parts, "+")
}

// ParseMarks parses a mark set formatted by Marks.String.
func ParseMarks(s string) (Marks, error) {
	var m Marks
	if s == "" || s == "plain" {
		return 0, nil
	}
	for _, part := range strings.Split(s, "+") {
		switch strings.TrimSpace(part) {
		case "bold":
			m |= Bold
		case "italic":
			m |= Italic
		default:
			return 0, fmt.Errorf("invalid mark %q", part)
		}
	}
	return m, nil
}
