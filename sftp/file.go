package sftp

import (
	"errors"
	"io"

	"github.com/pkg/sftp"
)

// File wraps an *sftp.File to satisfy flexfs.File.
type File struct {
	f    *sftp.File
	path string
}

func (f *File) Read(p []byte) (int, error) {
	n, err := f.f.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, wrapErr("read", f.path, err)
	}
	return n, err
}

func (f *File) Write(p []byte) (int, error) {
	n, err := f.f.Write(p)
	if err != nil {
		return n, wrapErr("write", f.path, err)
	}
	return n, nil
}

func (f *File) Close() error {
	if err := f.f.Close(); err != nil {
		return wrapErr("close", f.path, err)
	}
	return nil
}
