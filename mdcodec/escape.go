package mdcodec

import (
	"bytes"
	"html"
	"strings"
	"unicode/utf8"
)

// escapeText backslash escapes Markdown punctuation in plain text so that it
// is read back literally. At the start of a line, characters that would open
// a block (heading, quote, list, rule) are escaped too.
func escapeText(s string, lineStart, inHeading bool) string {
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i, r := range s {
		switch r {
		case '\\', '`', '*', '_', '[', ']', '<':
			sb.WriteByte('\\')
		case '&':
			if isEntity(s[i:]) {
				sb.WriteByte('\\')
			}
		case '#':
			if inHeading || (lineStart && i == 0) {
				sb.WriteByte('\\')
			}
		case '>', '-', '+':
			if lineStart && i == 0 {
				sb.WriteByte('\\')
			}
		case '.':
			if lineStart && i > 0 && isDigits(s[:i]) {
				sb.WriteByte('\\')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// isEntity reports whether s begins with an HTML entity reference such as
// "&amp;" or "&#42;".
func isEntity(s string) bool {
	i := 1
	if i < len(s) && s[i] == '#' {
		i++
	}
	start := i
	for i < len(s) && isAlnum(s[i]) {
		i++
	}
	return i > start && i < len(s) && s[i] == ';'
}

// unescapeEntity decodes s when it is exactly one character reference;
// the parser passes references through as text nodes of their own.
func unescapeEntity(s string) string {
	if len(s) < 3 || !isEntity(s) || strings.IndexByte(s, ';') != len(s)-1 {
		return s
	}
	return html.UnescapeString(s)
}

// isHTMLComment reports whether a parsed HTML block is nothing but a comment.
func isHTMLComment(b []byte) bool {
	b = bytes.TrimSpace(b)
	return bytes.HasPrefix(b, []byte("<!--")) && bytes.HasSuffix(b, []byte("-->")) &&
		bytes.Count(b, []byte("-->")) == 1
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// escapeHref escapes a link destination for use within "(...)", wrapping it
// in angle brackets when it holds whitespace.
func escapeHref(href string) string {
	var sb strings.Builder
	sb.Grow(len(href) + 2)
	wrap := strings.ContainsAny(href, " \t")
	if wrap {
		sb.WriteByte('<')
	}
	for len(href) > 0 {
		r, n := utf8.DecodeRuneInString(href)
		switch r {
		case '\\', '(', ')', '\'', '"', '<', '>':
			sb.WriteByte('\\')
		}
		sb.WriteString(href[:n])
		href = href[n:]
	}
	if wrap {
		sb.WriteByte('>')
	}
	return sb.String()
}
