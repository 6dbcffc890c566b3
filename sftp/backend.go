package sftp

import (
	"os"
	"path"

	"github.com/flexfs/flexfs"
	"github.com/pkg/sftp"
)

// Backend implements flexfs.Access over one Session's *sftp.Client.
type Backend struct {
	session *Session
}

// NewBackend wraps an already-connected Session.
func NewBackend(session *Session) *Backend {
	return &Backend{session: session}
}

func (b *Backend) client() *sftp.Client { return b.session.Client() }

func (b *Backend) IsRemote() bool { return true }

// Ls lists dir and issues an extra ReadLink per symlink entry, matching
// the teacher's own pkg/sftp client usage for Readlink.
func (b *Backend) Ls(dir string, cancel *flexfs.CancelToken) ([]flexfs.DirEntry, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return nil, err
	}

	infos, err := b.client().ReadDir(dir)
	if err != nil {
		return nil, wrapErr("ls", dir, err)
	}

	entries := make([]flexfs.DirEntry, 0, len(infos))
	for _, fi := range infos {
		if err := flexfs.CheckCancelled(cancel); err != nil {
			return nil, err
		}
		attr := decodeAttributes(fi)
		entry := flexfs.DirEntry{Name: fi.Name(), Attr: attr}
		if attr.IsLink() {
			full := path.Join(dir, fi.Name())
			target, err := b.client().ReadLink(full)
			if err != nil {
				return nil, wrapErr("readlink", full, err)
			}
			entry.SymlinkTarget = &target
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (b *Backend) Exists(p string, cancel *flexfs.CancelToken) (bool, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return false, err
	}
	_, err := b.client().Stat(p)
	if err == nil {
		return true, nil
	}
	if isNoSuchFile(err) {
		return false, nil
	}
	return false, wrapErr("stat", p, err)
}

func (b *Backend) TryStat(p string, cancel *flexfs.CancelToken) (*flexfs.Attributes, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return nil, err
	}
	fi, err := b.client().Stat(p)
	if err != nil {
		if isNoSuchFile(err) {
			return nil, nil
		}
		return nil, wrapErr("stat", p, err)
	}
	attr := decodeAttributes(fi)
	return &attr, nil
}

func (b *Backend) Stat(p string, cancel *flexfs.CancelToken) (flexfs.Attributes, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return flexfs.Attributes{}, err
	}
	fi, err := b.client().Stat(p)
	if err != nil {
		return flexfs.Attributes{}, wrapErr("stat", p, err)
	}
	return decodeAttributes(fi), nil
}

func (b *Backend) Lstat(p string, cancel *flexfs.CancelToken) (flexfs.Attributes, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return flexfs.Attributes{}, err
	}
	fi, err := b.client().Lstat(p)
	if err != nil {
		return flexfs.Attributes{}, wrapErr("lstat", p, err)
	}
	return decodeAttributes(fi), nil
}

func (b *Backend) Remove(p string, cancel *flexfs.CancelToken) error {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return err
	}
	if err := b.client().Remove(p); err != nil {
		return wrapErr("remove", p, err)
	}
	return nil
}

// Mkdir creates p. With parents=true, a NoSuchFile response (missing
// parent) triggers creating the parent first and retrying, recursing as
// needed, and an already-existing directory at p is accepted; any other
// error is returned.
func (b *Backend) Mkdir(p string, parents bool, cancel *flexfs.CancelToken) error {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return err
	}
	err := b.client().Mkdir(p)
	if err == nil {
		return nil
	}
	if parents && !isNoSuchFile(err) {
		if fi, statErr := b.client().Stat(p); statErr == nil && fi.IsDir() {
			return nil
		}
	}
	if !parents || !isNoSuchFile(err) {
		return wrapErr("mkdir", p, err)
	}
	parent := path.Dir(p)
	if parent == "." || parent == p || parent == "/" {
		return wrapErr("mkdir", p, err)
	}
	if mkErr := b.Mkdir(parent, true, cancel); mkErr != nil {
		return mkErr
	}
	if err := b.client().Mkdir(p); err != nil {
		return wrapErr("mkdir", p, err)
	}
	return nil
}

func (b *Backend) Rename(oldpath, newpath string, cancel *flexfs.CancelToken) error {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return err
	}
	if err := b.client().Rename(oldpath, newpath); err != nil {
		return wrapRenameErr(oldpath, newpath, err)
	}
	return nil
}

func (b *Backend) Open(p string, flags flexfs.OpenFlag, mode uint32, cancel *flexfs.CancelToken) (flexfs.File, error) {
	if err := flexfs.CheckCancelled(cancel); err != nil {
		return nil, err
	}
	f, err := b.client().OpenFile(p, convertOpenFlags(flags))
	if err != nil {
		return nil, wrapErr("open", p, err)
	}
	if flags&flexfs.Create != 0 {
		if err := b.client().Chmod(p, os.FileMode(mode)); err != nil {
			f.Close()
			return nil, wrapErr("chmod", p, err)
		}
	}
	return &File{f: f, path: p}, nil
}

func (b *Backend) CreateWatcher(dir string, cancel *flexfs.CancelToken) (flexfs.Watcher, error) {
	return flexfs.NewPollingWatcher(b, dir, b.session.opts.WatcherScanInterval, cancel)
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
