package ijslog

/*
Per-key emission throttling. A RateLimiter tracks, for every key it has seen,
the time of the last accepted emission and the number of rejections since.
Keys are created lazily on first sight and live until Clear().

Concurrency notes:
 - The limiter holds no locks: calls are expected from one logical execution
   context at a time (a per-frame update loop). Callers on multiple
   goroutines must serialize access themselves.
*/

import "time"

// rateEntry is the per-key bookkeeping record.
type rateEntry struct {
	lastEmit   time.Time // time of the last accepted emission
	suppressed int       // rejections since lastEmit
}

// RateLimiter decides whether a logically identical message may be emitted
// again yet. Construct with NewRateLimiter; the zero value is not usable.
type RateLimiter struct {
	entries map[string]*rateEntry
	now     func() time.Time // injectable clock for tests
}

// NewRateLimiter returns an empty limiter using the wall clock.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		entries: map[string]*rateEntry{},
		now:     time.Now,
	}
}

// ShouldEmit reports whether an emission keyed by key is allowed now.
//
// Decision:
//   - minInterval <= 0: always allowed, no bookkeeping (pass-through).
//   - first sight of key: allowed, the time is recorded.
//   - at least minInterval since the last accepted emission: allowed, the
//     time is re-recorded and the suppressed count resets to 0.
//   - otherwise: rejected, the suppressed count increments.
func (rl *RateLimiter) ShouldEmit(key string, minInterval time.Duration) bool {
	ok, _ := rl.Emit(key, minInterval)
	return ok
}

// Emit is ShouldEmit plus the drop report: on an allowed emission, dropped
// is the number of rejections since the previous accepted one (the count is
// already reset to 0 by the time the call returns). A single lookup serves
// both answers.
func (rl *RateLimiter) Emit(key string, minInterval time.Duration) (ok bool, dropped int) {
	if minInterval <= 0 {
		return true, 0
	}
	t := rl.now()
	e := rl.entries[key]
	if e == nil {
		rl.entries[key] = &rateEntry{lastEmit: t}
		return true, 0
	}
	if t.Sub(e.lastEmit) >= minInterval {
		dropped = e.suppressed
		e.lastEmit = t
		e.suppressed = 0
		return true, dropped
	}
	e.suppressed++
	return false, 0
}

// SuppressedCount returns how many emissions for key were rejected since the
// last accepted one, or 0 for an unseen key. Read-only, no side effects.
func (rl *RateLimiter) SuppressedCount(key string) int {
	if e := rl.entries[key]; e != nil {
		return e.suppressed
	}
	return 0
}

// Clear discards every tracked key. Used for test isolation and for
// explicit resets when key cardinality grows without bound (highly dynamic
// message texts produce one key each).
func (rl *RateLimiter) Clear() {
	clear(rl.entries)
}

// Len returns the number of tracked keys. Useful for monitoring key
// cardinality before deciding to Clear().
func (rl *RateLimiter) Len() int {
	return len(rl.entries)
}
