package estimator

import "sync/atomic"

// Revision tracks which input generation an in-flight estimate belongs
// to. The editing surface bumps it on every content change and discards
// any estimate whose token is no longer current, so a late AI response
// can never overwrite the display for newer content.
type Revision struct {
	n atomic.Int64
}

// Bump marks a new input generation and returns its token.
func (r *Revision) Bump() int64 {
	return r.n.Add(1)
}

// Current reports whether the token still belongs to the latest input.
func (r *Revision) Current(token int64) bool {
	return r.n.Load() == token
}
