package sftp

import (
	"os"
	"strconv"
	"time"

	"github.com/flexfs/flexfs"
	"github.com/pkg/sftp"
)

// decodeAttributes builds Attributes from the os.FileInfo pkg/sftp returns.
// Type and permission bits come from fi.Mode() (setuid/setgid/sticky are
// not carried) and the size from fi.Size(). When Sys() is a
// *sftp.FileStat, uid/gid are set only if either is non-zero, with Owner
// and Group set to their decimal strings (server-sent owner/group names are
// not read), and mtime/atime are whole seconds taken from the non-zero
// Mtime/Atime fields, mtime otherwise falling back to fi.ModTime(). The
// SFTP attribute flags themselves are not consulted: sub-second times and
// the create time are not decoded, and CTime is never set.
func decodeAttributes(fi os.FileInfo) flexfs.Attributes {
	attr := flexfs.Attributes{}
	attr.SetMode(uint32(fi.Mode().Perm()) | typeBits(fi))

	size := uint64(fi.Size())
	attr.Size = &size

	st, ok := fi.Sys().(*sftp.FileStat)
	if !ok {
		mtime := fi.ModTime()
		attr.MTime = &mtime
		return attr
	}

	if st.UID != 0 || st.GID != 0 {
		uid := st.UID
		gid := st.GID
		attr.UID = &uid
		attr.GID = &gid
		owner := strconv.FormatUint(uint64(uid), 10)
		group := strconv.FormatUint(uint64(gid), 10)
		attr.Owner = &owner
		attr.Group = &group
	}

	if st.Mtime != 0 {
		mtime := time.Unix(int64(st.Mtime), 0)
		attr.MTime = &mtime
	} else {
		mtime := fi.ModTime()
		attr.MTime = &mtime
	}
	if st.Atime != 0 {
		atime := time.Unix(int64(st.Atime), 0)
		attr.ATime = &atime
	}

	return attr
}

func typeBits(fi os.FileInfo) uint32 {
	mode := fi.Mode()
	switch {
	case mode&os.ModeDir != 0:
		return 0o040000
	case mode&os.ModeSymlink != 0:
		return 0o120000
	case mode&os.ModeNamedPipe != 0:
		return 0o010000
	case mode&os.ModeSocket != 0:
		return 0o140000
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return 0o020000
	case mode&os.ModeDevice != 0:
		return 0o060000
	default:
		return 0o100000
	}
}
