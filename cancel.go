package flexfs

import (
	"sync"
	"time"
)

// CancelToken is a cooperative, monotone interrupt primitive shared between
// a caller and every backend operation it drives. Once signaled it stays
// signaled; there is no reset.
type CancelToken struct {
	mu   sync.Mutex
	cond *sync.Cond
	set  bool
}

// NewCancelToken returns a ready-to-use, unsignaled token.
func NewCancelToken() *CancelToken {
	t := &CancelToken{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// Signal sets the token. Idempotent: signaling an already-signaled token
// has no further effect.
func (t *CancelToken) Signal() {
	t.mu.Lock()
	t.set = true
	t.mu.Unlock()
	t.cond.Broadcast()
}

// IsSet reports whether the token has been signaled.
func (t *CancelToken) IsSet() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.set
}

// WaitTimeout blocks until either the token is signaled or the timeout
// elapses, whichever comes first. It returns true iff woken by
// cancellation.
func (t *CancelToken) WaitTimeout(d time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.set {
		return true
	}

	deadline := time.Now().Add(d)
	timer := time.AfterFunc(d, t.cond.Broadcast)
	defer timer.Stop()

	for !t.set && time.Now().Before(deadline) {
		t.cond.Wait()
	}
	return t.set
}

// CheckCancelled returns a *Error of kind KindCancelled if the token is
// signaled, else nil. A nil token is never signaled.
// Every Access operation calls this on entry.
func CheckCancelled(t *CancelToken) error {
	if t != nil && t.IsSet() {
		return NewError(KindCancelled, "")
	}
	return nil
}
