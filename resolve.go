package flexfs

import (
	"fmt"
	"path"
	"strings"
)

func pathEndsWithSeparator(p string) bool {
	return strings.HasSuffix(p, "/")
}

// stemAndExt splits a basename at its last '.', matching the teacher's
// stem()/extension() split: no dot means an empty extension.
func stemAndExt(base string) (stem, ext string) {
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		// A dot-less name, or a name starting with '.' (e.g. ".bashrc"),
		// has no extension: the whole name is the stem.
		return base, ""
	}
	if i < 0 {
		return base, ""
	}
	return base[:i], base[i:]
}

// ResolveDestination turns (source, dest) into a concrete target path on
// destAccess, per the algorithm in SPEC_FULL.md §4.4. Its only side effect
// is a possible Mkdir of the resolved path's parent.
func ResolveDestination(srcAccess Access, src *Source, destAccess Access, dest Destination, cancel *CancelToken) (string, error) {
	if dest.Path == "" {
		return "", NewError(KindInvalidArgument, "destination path cannot be empty")
	}

	newPath := dest.Path

	if dest.ExpandTimePlaceholders != nil {
		attr, err := srcAccess.Stat(src.CurrentPath, cancel)
		if err != nil {
			return "", err
		}
		if attr.MTime == nil {
			return "", NewError(KindOther, "mtime unavailable").WithPath(src.CurrentPath)
		}
		formatted, err := expandTimePlaceholders(newPath, *attr.MTime, *dest.ExpandTimePlaceholders)
		if err != nil {
			return "", err
		}
		newPath = formatted
	}

	attr, err := destAccess.TryStat(newPath, cancel)
	if err != nil {
		return "", err
	}

	if attr != nil {
		switch {
		case attr.IsDir():
			newPath = path.Join(newPath, path.Base(src.OrigPath))
			attr, err = destAccess.TryStat(newPath, cancel)
			if err != nil {
				return "", err
			}
			if attr != nil {
				if attr.IsDir() {
					return "", NewError(KindIsADirectory, "").WithPath(newPath)
				}
				newPath, err = resolveNameConflict(destAccess, newPath, dest.OnNameConflict, cancel)
				if err != nil {
					return "", err
				}
			}
		case pathEndsWithSeparator(newPath):
			return "", NewError(KindNotADirectory, "").WithPath(newPath)
		default:
			newPath, err = resolveNameConflict(destAccess, newPath, dest.OnNameConflict, cancel)
			if err != nil {
				return "", err
			}
		}
	} else {
		if pathEndsWithSeparator(newPath) {
			newPath = path.Join(newPath, path.Base(src.OrigPath))
		}
		if parent := path.Dir(newPath); parent != "." && parent != newPath {
			if dest.CreateParents {
				if err := destAccess.Mkdir(parent, true, cancel); err != nil {
					return "", err
				}
			} else {
				exists, err := destAccess.Exists(parent, cancel)
				if err != nil {
					return "", err
				}
				if !exists {
					return "", NewError(KindNotFound, "").WithPath(parent)
				}
			}
		}
	}

	return newPath, nil
}

func resolveNameConflict(destAccess Access, p string, policy ConflictPolicy, cancel *CancelToken) (string, error) {
	switch policy {
	case ConflictOverwrite:
		return p, nil
	case ConflictAutoRename:
		dir := path.Dir(p)
		stem, ext := stemAndExt(path.Base(p))
		i := 0
		for {
			i++
			candidate := path.Join(dir, fmt.Sprintf("%s~%d%s", stem, i, ext))
			exists, err := destAccess.Exists(candidate, cancel)
			if err != nil {
				return "", err
			}
			if !exists {
				return candidate, nil
			}
		}
	case ConflictFail:
		return "", NewError(KindAlreadyExists, "").WithPath(p)
	default:
		return "", NewError(KindInvalidArgument, "unknown conflict policy")
	}
}
