//go:build darwin

package local

import (
	"os"
	"syscall"
	"time"

	"github.com/flexfs/flexfs"
)

func decodeSys(fi os.FileInfo, attr *flexfs.Attributes) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	uid := st.Uid
	gid := st.Gid
	attr.UID = &uid
	attr.GID = &gid

	atime := time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	ctime := time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
	attr.ATime = &atime
	attr.CTime = &ctime
}
