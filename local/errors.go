package local

import (
	"errors"
	"os"
	"syscall"

	"github.com/flexfs/flexfs"
)

// wrapPathErr classifies err (as produced by an os.* call against path)
// into a flexfs.Error of the appropriate Kind.
func wrapPathErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	kind := classify(err)
	fe := flexfs.WrapError(kind, err).WithOp(op).WithPath(path)
	if errno, ok := errnoOf(err); ok {
		fe = fe.WithErrno(int(errno))
	}
	return fe
}

func wrapRenameErr(oldpath, newpath string, err error) error {
	if err == nil {
		return nil
	}
	kind := classify(err)
	fe := flexfs.WrapError(kind, err).WithOp("rename").WithPath(oldpath).WithPath2(newpath)
	if errno, ok := errnoOf(err); ok {
		fe = fe.WithErrno(int(errno))
	}
	return fe
}

func classify(err error) flexfs.Kind {
	switch {
	case os.IsNotExist(err):
		return flexfs.KindNotFound
	case os.IsExist(err):
		return flexfs.KindAlreadyExists
	case os.IsPermission(err):
		return flexfs.KindPermissionDenied
	}
	if errno, ok := errnoOf(err); ok {
		switch errno {
		case syscall.ENOTDIR:
			return flexfs.KindNotADirectory
		case syscall.EISDIR:
			return flexfs.KindIsADirectory
		case syscall.ENOENT:
			return flexfs.KindNotFound
		case syscall.EEXIST:
			return flexfs.KindAlreadyExists
		case syscall.EACCES, syscall.EPERM:
			return flexfs.KindPermissionDenied
		}
	}
	return flexfs.KindIO
}

func errnoOf(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}
