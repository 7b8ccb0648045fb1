package mdcodec

import "strings"

// PostProcess marks every intra-block newline of exported Markdown as a hard
// line break: wherever two consecutive lines are both non-blank, the first
// one loses its trailing whitespace and gains exactly two spaces. Blank lines
// and the last line of each block are untouched, as is leading indentation.
//
// PostProcess relies on Export separating blocks with blank lines; list
// items are consecutive lines of one block, so every item line but the last
// is marked too, which importing treats the same as an item boundary.
func PostProcess(raw string) string {
	return strings.Join(PostProcessLines(strings.Split(raw, "\n")), "\n")
}

// PostProcessLines is PostProcess over a slice of lines; it returns a new
// slice.
func PostProcessLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	for i := 1; i < len(out); i++ {
		if isBlank(out[i-1]) || isBlank(out[i]) {
			continue
		}
		out[i-1] = strings.TrimRight(out[i-1], " \t") + "  "
	}
	return out
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
