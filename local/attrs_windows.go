//go:build windows

package local

import (
	"os"

	"github.com/flexfs/flexfs"
)

// Windows' os.FileInfo.Sys() exposes no POSIX uid/gid/ctime; leave those
// fields unset, matching Attributes' documented "nil means unavailable"
// contract.
func decodeSys(fi os.FileInfo, attr *flexfs.Attributes) {}
