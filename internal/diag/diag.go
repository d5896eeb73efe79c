// Package diag holds the session's diagnostic counters: ring-buffer
// underrun/overrun counts, frames processed, and the first error
// observed by any stage, plus the shutdown summary line built from them.
package diag

import (
	"fmt"
	"sync/atomic"

	"github.com/vocalmod/core/internal/apperr"
)

// Counters is safe for concurrent increment from any stage; every field
// is accessed only through atomic operations.
type Counters struct {
	underruns       atomic.Uint64
	overruns        atomic.Uint64
	framesProcessed atomic.Uint64

	firstErr atomic.Pointer[apperr.Error]
}

// RecordUnderrun increments the underrun counter: a consumer stage ran
// out of samples to read and filled its output with silence instead.
func (c *Counters) RecordUnderrun() { c.underruns.Add(1) }

// RecordOverrun increments the overrun counter: a producer stage had
// samples dropped because a downstream buffer stayed full.
func (c *Counters) RecordOverrun() { c.overruns.Add(1) }

// RecordFrame increments the frames-processed counter once per
// completed vocoder tick.
func (c *Counters) RecordFrame() { c.framesProcessed.Add(1) }

// RecordError stores err as the session's first observed error, if one
// hasn't already been recorded. Later errors are dropped by design: per
// §7, the session surfaces only the first observed error.
func (c *Counters) RecordError(err *apperr.Error) {
	c.firstErr.CompareAndSwap(nil, err)
}

// FirstError returns the first error recorded, or nil if none.
func (c *Counters) FirstError() *apperr.Error {
	return c.firstErr.Load()
}

// Summary renders the shutdown diagnostic line: underrun/overrun counts
// and frames processed, as required by §7's "underrun counters are
// summarized at shutdown".
func (c *Counters) Summary() string {
	return fmt.Sprintf(
		"frames=%d underruns=%d overruns=%d",
		c.framesProcessed.Load(), c.underruns.Load(), c.overruns.Load(),
	)
}
