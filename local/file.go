package local

import (
	"errors"
	"io"
	"os"
)

// File wraps an *os.File to satisfy flexfs.File. Local reads and writes
// check cancellation only on Open, not per call: a local transfer is not
// worth interrupting mid-buffer.
type File struct {
	f    *os.File
	path string
}

func (f *File) Read(p []byte) (int, error) {
	n, err := f.f.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, wrapPathErr("read", f.path, err)
	}
	return n, err
}

func (f *File) Write(p []byte) (int, error) {
	n, err := f.f.Write(p)
	if err != nil {
		return n, wrapPathErr("write", f.path, err)
	}
	return n, nil
}

func (f *File) Close() error {
	if err := f.f.Close(); err != nil {
		return wrapPathErr("close", f.path, err)
	}
	return nil
}
