package scroll

import (
	"time"

	"github.com/tandemhq/tandem/internal/core/align"
)

// arbiter decides which pane currently drives synchronization. Once a side
// produces a genuine (non-echo) scroll event it becomes primary; events
// from the other side are ignored until a quiet period elapses with no new
// primary events. This keeps a continuous gesture on one pane from being
// fought by the following pane's settling events.
//
// The arbiter is an explicit finite-state value checked and updated
// synchronously on each event; it is the only ownership token in the
// engine.
type arbiter struct {
	owner    align.Side
	hasOwner bool
	deadline time.Time
	quiet    time.Duration
}

// claim attempts to make side the primary. It succeeds when there is no
// owner, side already owns the lock, or the previous owner's quiet period
// has expired. On success the deadline is extended.
func (a *arbiter) claim(side align.Side, now time.Time) bool {
	if a.hasOwner && a.owner != side && now.Before(a.deadline) {
		return false
	}
	a.owner = side
	a.hasOwner = true
	a.deadline = now.Add(a.quiet)
	return true
}

// release drops the lock, letting either side become primary again.
func (a *arbiter) release() {
	a.hasOwner = false
}
