package local

import (
	"os"

	"github.com/flexfs/flexfs"
)

// makeAttributes builds flexfs.Attributes from a stdlib os.FileInfo, filling
// in the POSIX bits all platforms share and deferring uid/gid/atime/ctime
// to the platform-specific decodeSys.
func makeAttributes(path string, fi os.FileInfo) flexfs.Attributes {
	attr := flexfs.Attributes{}
	attr.SetMode(uint32(fi.Mode().Perm()) | typeBits(fi.Mode()))

	size := uint64(fi.Size())
	attr.Size = &size

	mtime := fi.ModTime()
	attr.MTime = &mtime

	decodeSys(fi, &attr)
	resolveOwnerGroup(&attr)

	return attr
}

func typeBits(mode os.FileMode) uint32 {
	switch {
	case mode&os.ModeDir != 0:
		return modeIFDIR
	case mode&os.ModeSymlink != 0:
		return modeIFLNK
	case mode&os.ModeNamedPipe != 0:
		return modeIFIFO
	case mode&os.ModeSocket != 0:
		return modeIFSOCK
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return modeIFCHR
	case mode&os.ModeDevice != 0:
		return modeIFBLK
	default:
		return modeIFREG
	}
}

// POSIX raw type bits duplicated from flexfs so this package does not
// need to export them.
const (
	modeIFDIR  = 0o040000
	modeIFLNK  = 0o120000
	modeIFIFO  = 0o010000
	modeIFSOCK = 0o140000
	modeIFCHR  = 0o020000
	modeIFBLK  = 0o060000
	modeIFREG  = 0o100000
)
