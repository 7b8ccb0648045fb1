package hostutil

import (
	"bytes"
	"io"
)

// WriteBuffer accumulates output bound for To, letting a FlushPolicy decide
// how much of it to pass along after each write phase:
//
//	var buf WriteBuffer
//	buf.To = os.Stdout
//	for _, line := range lines {
//		buf.WriteString(line)
//		if err := buf.MaybeFlush(); err != nil {
//			return err
//		}
//	}
//	return buf.Flush()
type WriteBuffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy returns how many leading bytes of a WriteBuffer may be written
// out.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc adapts a function to FlushPolicy.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls f.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush writes everything buffered, regardless of policy.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes the prefix chosen by FlushPolicy, FlushLineChunks when
// unset, discarding whatever To accepted.
func (buf *WriteBuffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	if n := buf.ShouldFlush(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// FlushLineChunks flushes through the last complete line.
func FlushLineChunks(b []byte) int {
	return bytes.LastIndexByte(b, '\n') + 1
}

// ErrWriter passes writes through to Writer until the first error, which it
// keeps in Err and returns from every later write.
type ErrWriter struct {
	io.Writer
	Err error
}

func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// WriteString is Write for a string.
func (ew *ErrWriter) WriteString(s string) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = io.WriteString(ew.Writer, s)
	}
	return n, ew.Err
}

// WriteLines calls next with a buffered writer until it returns false or a
// write fails, flushing complete lines after each call.
func WriteLines(to io.Writer, next func(w io.Writer) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	var buf WriteBuffer
	buf.To = ew
	for ew.Err == nil && next(&buf) {
		buf.MaybeFlush()
	}
	buf.Flush()
	return ew.Err
}
