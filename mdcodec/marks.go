package mdcodec

import "github.com/cds-snc/mdedit/mdoc"

// markWriter tracks the text format delimiters opened by a run of inline
// content. Formats nest in registry order: moving from one mark set to the
// next closes every open format back to their common prefix, then opens the
// missing ones.
type markWriter struct {
	formats []*Transformer
	stack   []*Transformer
}

func (mw *markWriter) open(w *Writer, marks mdoc.Marks) {
	var want []*Transformer
	var covered mdoc.Marks
	for _, t := range mw.formats {
		if t.Marks != 0 && marks.Has(t.Marks) && covered&t.Marks == 0 {
			want = append(want, t)
			covered |= t.Marks
		}
	}

	keep := 0
	for keep < len(mw.stack) && keep < len(want) && mw.stack[keep] == want[keep] {
		keep++
	}
	mw.closeTo(w, keep)
	for _, t := range want[keep:] {
		w.WriteString(t.Delim)
		mw.stack = append(mw.stack, t)
	}
}

func (mw *markWriter) closeAll(w *Writer) {
	mw.closeTo(w, 0)
}

func (mw *markWriter) closeTo(w *Writer, n int) {
	for i := len(mw.stack) - 1; i >= n; i-- {
		w.WriteString(mw.stack[i].Delim)
	}
	mw.stack = mw.stack[:n]
}
