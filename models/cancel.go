package models

import "sync/atomic"

// CancelToken is the shared cancellation flag for one batch run.
//
// It only moves from false to true: Cancel is idempotent and the token
// is never reset. Workers poll it at every progress-line boundary, the
// dispatcher before every launch, so worst-case shutdown latency is one
// progress-update interval.
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken returns an unset token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel sets the token. Calling it more than once is a no-op.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (t *CancelToken) Cancelled() bool {
	return t.flag.Load()
}
