package ijslog

/*
Fluent assertions built on the normal emission path. Assert evaluates the
condition once, emits an error-level message immediately on failure, and
returns a handle whose chained actions each re-check only the stored result:

	lc.Assert(len(queue) < cap, "queue overflow").
		OnFailure(func() { queue = queue[:0] }).
		BreakDebugger()

No assertion ever panics or terminates the caller; failure is a log entry
plus whatever chained actions the caller asked for.
*/

import (
	"fmt"
	"reflect"
	"runtime"
)

// Assertion is the result of a single Assert call: the stored outcome, the
// message and the client it emitted through. It is a plain value — chained
// calls return the same handle and never re-evaluate the original condition.
type Assertion struct {
	passed  bool
	message string
	client  *LogClient
}

// Assert evaluates cond eagerly. On failure an error-level message is
// emitted right here, during construction — not deferred to a chained call.
func (lc *LogClient) Assert(cond bool, msg string) *Assertion {
	if !cond {
		lc.Log(LVL_ERROR, "Assertion failed: "+msg)
	}
	return &Assertion{passed: cond, message: msg, client: lc}
}

// Passed reports whether the asserted condition held.
func (a *Assertion) Passed() bool { return a.passed }

// Failed reports whether the asserted condition was violated.
func (a *Assertion) Failed() bool { return !a.passed }

// Message returns the assertion message.
func (a *Assertion) Message() string { return a.message }

// OnFailure invokes cb immediately iff the condition was false. Safe to
// chain repeatedly; each call re-checks the stored result only.
func (a *Assertion) OnFailure(cb func()) *Assertion {
	if !a.passed && cb != nil {
		cb()
	}
	return a
}

// BreakDebugger traps into the debugger iff the condition was false and the
// owning Logger's debugger check reports one attached. Without an installed
// check this is a no-op, so release builds can keep the calls.
func (a *Assertion) BreakDebugger() *Assertion {
	if !a.passed && a.client != nil && a.client.logger != nil {
		if check := a.client.logger.debuggerCheck; check != nil && check() {
			runtime.Breakpoint()
		}
	}
	return a
}

// PauseHost invokes the Logger's host pause hook iff the condition was
// false. Hosts without a pause concept simply never install the hook.
func (a *Assertion) PauseHost() *Assertion {
	if !a.passed && a.client != nil && a.client.logger != nil {
		if pause := a.client.logger.pauseHook; pause != nil {
			pause()
		}
	}
	return a
}

/////////////////////////////////////////////////////////////////////////////////////////

// ValidateNotNil asserts that ref is non-nil, including the typed-nil
// pointer/map/slice/chan/func hiding inside a non-nil interface value.
func (lc *LogClient) ValidateNotNil(ref any, name string) *Assertion {
	return lc.Assert(!isNil(ref), name+" cannot be nil")
}

// ValidateInRange asserts min <= value <= max. An inverted range (min > max)
// is itself a usage error and surfaces through the same failed-assertion
// path — never as a panic.
func (lc *LogClient) ValidateInRange(value, min, max float64, name string) *Assertion {
	if min > max {
		return lc.Assert(false, fmt.Sprintf("invalid range for %s: min %v is greater than max %v", name, min, max))
	}
	return lc.Assert(value >= min && value <= max,
		fmt.Sprintf("%s must be between %v and %v, but was %v", name, min, max, value))
}

// isNil reports nil-ness through interface wrapping.
func isNil(ref any) bool {
	if ref == nil {
		return true
	}
	switch v := reflect.ValueOf(ref); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
