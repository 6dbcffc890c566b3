package flexfs

import (
	"errors"
	"io"
)

const copyBufferSize = 64 * 1024

// Move resolves dest on access, renames src's current path to the
// resolved path, then updates src.CurrentPath to match. src.OrigPath is
// never modified.
func Move(access Access, src *Source, dest Destination, cancel *CancelToken) error {
	newPath, err := ResolveDestination(access, src, access, dest, cancel)
	if err != nil {
		return err
	}
	if err := access.Rename(src.CurrentPath, newPath, cancel); err != nil {
		return err
	}
	src.CurrentPath = newPath
	return nil
}

// Copy opens src read-only on srcAccess, resolves dest on destAccess,
// opens the resolved path write-only/create/truncate with src's mode, and
// streams the content through a 64 KiB buffer. onProgress, if non-nil, is
// invoked after each successful write with the cumulative byte count.
// Errors from either backend propagate as-is; a partially written
// destination is left in place, not rolled back.
func Copy(srcAccess Access, src *Source, destAccess Access, dest Destination, onProgress func(uint64), cancel *CancelToken) (string, error) {
	in, err := srcAccess.Open(src.CurrentPath, RdOnly, 0, cancel)
	if err != nil {
		return "", err
	}
	defer in.Close()

	destPath, err := ResolveDestination(srcAccess, src, destAccess, dest, cancel)
	if err != nil {
		return "", err
	}

	srcAttr, err := srcAccess.Stat(src.CurrentPath, cancel)
	if err != nil {
		return "", err
	}

	out, err := destAccess.Open(destPath, WrOnly|Create|Trunc, srcAttr.GetMode(), cancel)
	if err != nil {
		return "", err
	}
	defer out.Close()

	buf := make([]byte, copyBufferSize)
	var bytesCopied uint64

	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			written := 0
			for written < n {
				w, werr := out.Write(buf[written:n])
				if w > 0 {
					written += w
					bytesCopied += uint64(w)
					if onProgress != nil {
						onProgress(bytesCopied)
					}
				}
				if werr != nil {
					return "", werr
				}
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return "", rerr
		}
		if n == 0 {
			break
		}
	}

	return destPath, nil
}
