// Package store persists Markdown snapshots, in memory or in a file that is
// replaced atomically on update.
package store

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
)

var (
	ErrExists       = errors.New("document already exists")
	ErrNotExists    = errors.New("document does not exist")
	errBufferClosed = errors.New("write to closed buffer")
)

// Store holds one document's content.
type Store interface {
	Open() (io.ReadCloser, error)
	Create() (PendingWriter, error)
	Update() (PendingWriter, error)
}

// PendingWriter collects new content for a Store. Close commits it; Cleanup
// discards it unless Close already succeeded, and is safe to defer.
type PendingWriter interface {
	io.WriteCloser
	Cleanup() error
}

// Mem is a Store kept in memory; its zero value holds no document.
type Mem struct {
	cur     string
	defined bool
}

// NewMem returns a Mem holding content.
func NewMem(content string) *Mem {
	return &Mem{cur: content, defined: true}
}

func (ms *Mem) Open() (io.ReadCloser, error) {
	if !ms.defined {
		return nil, ErrNotExists
	}
	return io.NopCloser(strings.NewReader(ms.cur)), nil
}

func (ms *Mem) Create() (PendingWriter, error) {
	if ms.defined {
		return nil, ErrExists
	}
	return ms.pending(), nil
}

func (ms *Mem) Update() (PendingWriter, error) {
	return ms.pending(), nil
}

// String returns the current content.
func (ms *Mem) String() string { return ms.cur }

func (ms *Mem) pending() *pendingBuffer {
	const minSize = 1024
	pb := &pendingBuffer{sink: ms.set}
	pb.buf.Grow(max(len(ms.cur), minSize))
	return pb
}

func (ms *Mem) set(content string) error {
	ms.cur = content
	ms.defined = true
	return nil
}

type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) WriteString(s string) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.WriteString(s)
}

func (pb *pendingBuffer) Close() error {
	if pb.closed {
		return nil
	}
	pb.closed = true
	return pb.sink(pb.buf.String())
}

func (pb *pendingBuffer) Cleanup() error {
	pb.closed = true
	return nil
}

// File is a Store backed by the named file. Create fails if the file
// exists; Update writes a temporary file beside it and renames it into
// place on Close.
type File struct {
	Name string
}

// NewFile returns a File store for name.
func NewFile(name string) *File {
	return &File{Name: name}
}

func (fs *File) exists() (bool, error) {
	_, err := os.Stat(fs.Name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (fs *File) Open() (io.ReadCloser, error) {
	f, err := os.Open(fs.Name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExists
	}
	return f, err
}

func (fs *File) Create() (PendingWriter, error) {
	f, err := os.OpenFile(fs.Name, os.O_EXCL|os.O_CREATE|os.O_WRONLY, 0o666)
	if errors.Is(err, os.ErrExist) {
		return nil, ErrExists
	}
	if err != nil {
		return nil, err
	}
	return &pendingCreateFile{File: f}, nil
}

func (fs *File) Update() (PendingWriter, error) {
	if ok, err := fs.exists(); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotExists
	}
	pf, err := renameio.TempFile(filepath.Dir(fs.Name), fs.Name)
	if err != nil {
		return nil, err
	}
	return pendingUpdateFile{pf}, nil
}

type pendingUpdateFile struct {
	*renameio.PendingFile
}

func (uf pendingUpdateFile) Close() error {
	return uf.CloseAtomicallyReplace()
}

type pendingCreateFile struct {
	*os.File
	closed bool
}

func (cf *pendingCreateFile) Close() error {
	if cf.closed {
		return nil
	}
	err := cf.File.Close()
	cf.closed = err == nil
	return err
}

func (cf *pendingCreateFile) Cleanup() error {
	if cf.closed {
		return nil
	}
	err := os.Remove(cf.Name())
	if cerr := cf.File.Close(); err == nil {
		err = cerr
	}
	cf.closed = true
	return err
}
