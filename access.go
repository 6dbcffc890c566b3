package flexfs

import "io"

// OpenFlag is the backend-agnostic open-mode bitmask accepted by
// Access.Open. Backends translate it to their own native flag values.
type OpenFlag int

const (
	RdOnly OpenFlag = 1 << iota
	WrOnly
	RdWr
	Append
	Create
	Trunc
	Excl
)

// File is the handle returned by Access.Open. Read and Write may return a
// short count; callers must re-drive them until the desired number of
// bytes has been transferred or an error/EOF is seen.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// Access is the backend-agnostic filesystem contract. Every operation
// checks the supplied cancellation token on entry and may check again at
// internal iteration points; a positive check raises a *Error of kind
// KindCancelled. A single Access value is not safe for concurrent use from
// multiple goroutines.
type Access interface {
	// IsRemote reports whether this backend talks to a remote endpoint.
	IsRemote() bool

	// Ls lists dir in backend-native order. Symlink entries carry a
	// resolved SymlinkTarget.
	Ls(dir string, cancel *CancelToken) ([]DirEntry, error)

	// Exists reports whether path names an existing entry. It never
	// returns KindNotFound: absence is reported as (false, nil).
	Exists(path string, cancel *CancelToken) (bool, error)

	// TryStat is like Stat but returns (nil, nil) if path does not exist.
	TryStat(path string, cancel *CancelToken) (*Attributes, error)

	// Stat follows symlinks.
	Stat(path string, cancel *CancelToken) (Attributes, error)

	// Lstat does not follow symlinks.
	Lstat(path string, cancel *CancelToken) (Attributes, error)

	// Remove removes path. Behavior on a non-empty directory is
	// backend-dependent and unspecified.
	Remove(path string, cancel *CancelToken) error

	// Mkdir creates path. With parents=false it fails if path already
	// exists or if any parent is missing. With parents=true it creates
	// the full chain idempotently.
	Mkdir(path string, parents bool, cancel *CancelToken) error

	// Rename renames oldpath to newpath.
	Rename(oldpath, newpath string, cancel *CancelToken) error

	// Open opens path with the given flags and (for Create) mode.
	Open(path string, flags OpenFlag, mode uint32, cancel *CancelToken) (File, error)

	// CreateWatcher creates a watcher over dir. cancel is checked during
	// the watcher's initial listing only; each later Watch call checks the
	// token passed to that call.
	CreateWatcher(dir string, cancel *CancelToken) (Watcher, error)
}
