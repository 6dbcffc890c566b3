//go:build linux

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

	atime := time.Unix(st.Atim.Sec, st.Atim.Nsec)
	ctime := time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	attr.ATime = &atime
	attr.CTime = &ctime
}
