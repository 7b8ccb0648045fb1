package hostutil

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CommandSeparator ends one command within a request script; a newline does
// too.
const CommandSeparator = ';'

// QuotedArgs joins args with spaces into a request script, quoting any arg
// that would otherwise scan differently. A lone ";" arg stays bare so that
// it separates commands.
func QuotedArgs(args []string) []byte {
	n := len(args)
	for _, arg := range args {
		n += 2 * len(arg)
	}
	return AppendQuotedArgs(make([]byte, 0, n), args)
}

// AppendQuotedArgs is QuotedArgs appending to b.
func AppendQuotedArgs(b []byte, args []string) []byte {
	for i, arg := range args {
		if i > 0 {
			b = append(b, ' ')
		}
		if arg != string(CommandSeparator) && needsQuote(arg) {
			b = strconv.AppendQuote(b, arg)
		} else {
			b = append(b, arg...)
		}
	}
	return b
}

func needsQuote(arg string) bool {
	if arg == "" {
		return true
	}
	if arg[0] == '"' || arg[0] == '\'' {
		return true
	}
	return strings.IndexFunc(arg, func(r rune) bool {
		return r == CommandSeparator || unicode.IsSpace(r)
	}) >= 0
}

// ScanCommands implements a bufio.SplitFunc that scans commands separated by
// newlines or CommandSeparator. Separators within args quoted as ScanArgs
// quotes them do not count; blank commands are skipped.
func ScanCommands(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if r != CommandSeparator && !unicode.IsSpace(r) {
			break
		}
		start += width
	}

	var quote rune
	esc, argStart := false, true
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		switch {
		case quote != 0:
			if r == '\\' && !esc {
				esc = true
				continue
			}
			if r == quote && !esc {
				quote = 0
			}
			esc = false
		case argStart && (r == '"' || r == '\''):
			quote = r
		case r == CommandSeparator || r == '\n':
			return i + width, trimCommand(data[start:i]), nil
		}
		argStart = quote == 0 && unicode.IsSpace(r)
	}

	if atEOF && len(data) > start {
		return len(data), trimCommand(data[start:]), nil
	}
	return start, nil, nil
}

func trimCommand(cmd []byte) []byte {
	for len(cmd) > 0 {
		r, width := utf8.DecodeLastRune(cmd)
		if !unicode.IsSpace(r) {
			break
		}
		cmd = cmd[:len(cmd)-width]
	}
	return cmd
}

// ScanArgs implements a bufio.SplitFunc that scans space separated, optionally
// quoted, args. Quoted tokens keep their quotes; see UnquoteArg.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	var r rune
	for width := 0; start < len(data); start += width {
		r, width = utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
	}

	if r == '"' || r == '\'' {
		q := r
		esc := false
		for width, i := 0, start+1; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			switch {
			case r == '\\' && !esc:
				esc = true
			case r == q && !esc:
				return i + width, data[start : i+width], nil
			default:
				esc = false
			}
		}
	} else {
		for width, i := 0, start; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if unicode.IsSpace(r) {
				return i + width, data[start:i], nil
			}
		}
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// UnquoteArg removes the quotes around an arg scanned by ScanArgs, resolving
// Go escape sequences within. Unquoted args are returned as is; an
// unterminated quote runs to the end of the arg.
func UnquoteArg(arg string) string {
	if len(arg) < 2 || (arg[0] != '"' && arg[0] != '\'') {
		return arg
	}
	q := arg[0]
	arg = arg[1:]
	var sb strings.Builder
	sb.Grow(len(arg))
	for len(arg) > 0 && arg[0] != q {
		r, _, tail, err := strconv.UnquoteChar(arg, q)
		if err != nil {
			sb.WriteString(arg)
			break
		}
		sb.WriteRune(r)
		arg = tail
	}
	return sb.String()
}
