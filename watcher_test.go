package flexfs

import (
	"testing"
	"time"
)

func TestPollingWatcherReportsOnlyAdditions(t *testing.T) {
	access := newMemAccess()
	access.putDir("/watched")
	access.putFile("/watched/a.txt", []byte("a"), time.Now())

	w, err := NewPollingWatcher(access, "/watched", time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewPollingWatcher: %v", err)
	}

	access.putFile("/watched/b.txt", []byte("b"), time.Now())

	added, err := w.Watch(nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if len(added) != 1 || added[0].Name != "b.txt" {
		t.Fatalf("added = %+v, want just b.txt", added)
	}

	// A is already seen; removing it should not be reported as anything.
	if err := access.Remove("/watched/a.txt", nil); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	added, err = w.Watch(nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if len(added) != 0 {
		t.Fatalf("added = %+v, want none (deletions aren't reported)", added)
	}
}

func TestPollingWatcherCancellation(t *testing.T) {
	access := newMemAccess()
	access.putDir("/watched")

	w, err := NewPollingWatcher(access, "/watched", time.Hour, nil)
	if err != nil {
		t.Fatalf("NewPollingWatcher: %v", err)
	}

	cancel := NewCancelToken()
	cancel.Signal()

	_, err = w.Watch(cancel)
	if !Is(err, KindCancelled) {
		t.Fatalf("err = %v, want KindCancelled", err)
	}
}
