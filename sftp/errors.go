package sftp

import (
	"errors"
	"os"

	"github.com/flexfs/flexfs"
	"github.com/pkg/sftp"
)

// wrapErr classifies err from a pkg/sftp client call into a flexfs.Error.
// SSH_FX_NO_SUCH_FILE is the only status code given special local
// treatment elsewhere (Exists/TryStat). Here it becomes KindNotFound,
// SSH_FX_PERMISSION_DENIED becomes KindPermissionDenied, and every other
// error becomes KindProtocol.
func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	fe := flexfs.WrapError(classifyErr(err), err).WithOp(op).WithPath(path)
	var statusErr *sftp.StatusError
	if errors.As(err, &statusErr) {
		fe = fe.WithErrno(int(statusErr.Code))
	}
	return fe
}

func wrapRenameErr(oldpath, newpath string, err error) error {
	if err == nil {
		return nil
	}
	return flexfs.WrapError(classifyErr(err), err).WithOp("rename").WithPath(oldpath).WithPath2(newpath)
}

func classifyErr(err error) flexfs.Kind {
	if isNoSuchFile(err) {
		return flexfs.KindNotFound
	}
	var statusErr *sftp.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case sftp.ErrSSHFxPermissionDenied:
			return flexfs.KindPermissionDenied
		case sftp.ErrSSHFxNoSuchFile:
			return flexfs.KindNotFound
		}
	}
	return flexfs.KindProtocol
}

// isNoSuchFile reports whether err represents SSH_FX_NO_SUCH_FILE, either
// as a *sftp.StatusError or as the os.IsNotExist-compatible error pkg/sftp
// sometimes returns from its os.FileInfo-returning calls.
func isNoSuchFile(err error) bool {
	if os.IsNotExist(err) {
		return true
	}
	var statusErr *sftp.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == sftp.ErrSSHFxNoSuchFile
	}
	return false
}
