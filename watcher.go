package flexfs

import "time"

// Watcher repeatedly diffs a directory listing and reports entries seen
// for the first time since the watcher was created or last watched.
// Renames and deletions are not reported; only additions are (see
// SPEC_FULL.md, Open Question 1).
type Watcher interface {
	Watch(cancel *CancelToken) ([]DirEntry, error)
}

// PollingWatcher is the scan-and-diff watcher used by the SFTP backend
// (and, by default, the local backend). It is backend-agnostic: any
// Access implementation can be watched.
type PollingWatcher struct {
	access       Access
	dir          string
	scanInterval time.Duration
	seen         map[string]DirEntry
}

// NewPollingWatcher creates a watcher over dir, taking an initial listing
// immediately so that entries already present when the watcher is created
// are not reported as additions.
func NewPollingWatcher(access Access, dir string, scanInterval time.Duration, cancel *CancelToken) (*PollingWatcher, error) {
	w := &PollingWatcher{
		access:       access,
		dir:          dir,
		scanInterval: scanInterval,
	}
	seen, err := w.listFiles(cancel)
	if err != nil {
		return nil, err
	}
	w.seen = seen
	return w, nil
}

func (w *PollingWatcher) listFiles(cancel *CancelToken) (map[string]DirEntry, error) {
	entries, err := w.access.Ls(w.dir, cancel)
	if err != nil {
		return nil, err
	}
	result := make(map[string]DirEntry, len(entries))
	for _, e := range entries {
		result[e.Name] = e
	}
	return result, nil
}

// Watch waits up to the watcher's scan interval for cancellation, then
// lists the directory again and returns entries present now but absent
// from the previous scan, in listing order. The previous snapshot is then
// replaced wholesale. A nil cancel is never signaled, so the full scan
// interval elapses before the listing.
func (w *PollingWatcher) Watch(cancel *CancelToken) ([]DirEntry, error) {
	if cancel == nil {
		time.Sleep(w.scanInterval)
	} else if cancel.WaitTimeout(w.scanInterval) {
		return nil, NewError(KindCancelled, "")
	}

	entries, err := w.access.Ls(w.dir, cancel)
	if err != nil {
		return nil, err
	}

	var added []DirEntry
	for _, e := range entries {
		if _, ok := w.seen[e.Name]; !ok {
			added = append(added, e)
		}
	}

	next := make(map[string]DirEntry, len(entries))
	for _, e := range entries {
		next[e.Name] = e
	}
	w.seen = next

	return added, nil
}
