// Package local implements flexfs.Access over the host operating system's
// filesystem.
package local

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/flexfs/flexfs"
)

// Backend is a thin mapping of flexfs.Access onto native filesystem calls.
type Backend struct{}

// New returns a ready-to-use local Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) IsRemote() bool { return false }

// Ls iterates the directory; for each entry it lstats to build Attributes
// and, if the entry is a symlink, reads the link target.
func (b *Backend) Ls(dir string, cancel *flexfs.CancelToken) ([]flexfs.DirEntry, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, wrapPathErr("ls", dir, err)
	}

	result := make([]flexfs.DirEntry, 0, len(entries))
	for _, e := range entries {
		if err := flexfs.CheckCancelled(cancel); err != nil {
			return nil, err
		}
		entry, err := b.GetDirEntry(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

// GetDirEntry builds a single DirEntry for path without listing its parent
// directory. Used internally by Ls and by the watcher's initial scan; also
// useful to callers who already hold a path and want one entry cheaply.
func (b *Backend) GetDirEntry(path string) (flexfs.DirEntry, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return flexfs.DirEntry{}, wrapPathErr("lstat", path, err)
	}
	attr := makeAttributes(path, fi)
	entry := flexfs.DirEntry{Name: fi.Name(), Attr: attr}
	if attr.IsLink() {
		target, err := os.Readlink(path)
		if err != nil {
			return flexfs.DirEntry{}, wrapPathErr("readlink", path, err)
		}
		entry.SymlinkTarget = &target
	}
	return entry, nil
}

func (b *Backend) Exists(path string, cancel *flexfs.CancelToken) (bool, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return false, err
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, wrapPathErr("stat", path, err)
}

func (b *Backend) TryStat(path string, cancel *flexfs.CancelToken) (*flexfs.Attributes, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return nil, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapPathErr("stat", path, err)
	}
	attr := makeAttributes(path, fi)
	return &attr, nil
}

func (b *Backend) Stat(path string, cancel *flexfs.CancelToken) (flexfs.Attributes, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return flexfs.Attributes{}, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return flexfs.Attributes{}, wrapPathErr("stat", path, err)
	}
	return makeAttributes(path, fi), nil
}

func (b *Backend) Lstat(path string, cancel *flexfs.CancelToken) (flexfs.Attributes, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return flexfs.Attributes{}, err
	}
	fi, err := os.Lstat(path)
	if err != nil {
		return flexfs.Attributes{}, wrapPathErr("lstat", path, err)
	}
	return makeAttributes(path, fi), nil
}

func (b *Backend) Remove(path string, cancel *flexfs.CancelToken) error {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return wrapPathErr("remove", path, err)
	}
	return nil
}

// Mkdir creates path. With parents=true it creates the full chain
// idempotently via os.MkdirAll; with parents=false a missing parent or an
// already-existing path is reported as-is from os.Mkdir.
func (b *Backend) Mkdir(path string, parents bool, cancel *flexfs.CancelToken) error {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return err
	}
	var err error
	if parents {
		err = os.MkdirAll(path, 0o777)
	} else {
		err = os.Mkdir(path, 0o777)
	}
	if err != nil {
		return wrapPathErr("mkdir", path, err)
	}
	return nil
}

func (b *Backend) Rename(oldpath, newpath string, cancel *flexfs.CancelToken) error {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return err
	}
	if err := os.Rename(oldpath, newpath); err != nil {
		return wrapRenameErr(oldpath, newpath, err)
	}
	return nil
}

func (b *Backend) Open(path string, flags flexfs.OpenFlag, mode uint32, cancel *flexfs.CancelToken) (flexfs.File, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, convertOpenFlags(flags), fs.FileMode(mode))
	if err != nil {
		return nil, wrapPathErr("open", path, err)
	}
	return &File{f: f, path: path}, nil
}

func (b *Backend) CreateWatcher(dir string, cancel *flexfs.CancelToken) (flexfs.Watcher, error) {
	return flexfs.NewPollingWatcher(b, dir, 2*time.Second, cancel)
}

func convertOpenFlags(flags flexfs.OpenFlag) int {
	var o int
	switch {
	case flags&flexfs.RdWr != 0:
		o |= os.O_RDWR
	case flags&flexfs.WrOnly != 0:
		o |= os.O_WRONLY
	default:
		o |= os.O_RDONLY
	}
	if flags&flexfs.Append != 0 {
		o |= os.O_APPEND
	}
	if flags&flexfs.Create != 0 {
		o |= os.O_CREATE
	}
	if flags&flexfs.Trunc != 0 {
		o |= os.O_TRUNC
	}
	if flags&flexfs.Excl != 0 {
		o |= os.O_EXCL
	}
	return o
}

var _ flexfs.Access = (*Backend)(nil)
