package ijslog

/*
Nested context tagging. A ContextStack is a stack of caller-defined labels
rendered as a hierarchical prefix on every message emitted while the scope
is open:

	defer log.Context().Enter("Pathfinding")()
	...
	client.LogInfo("expanding node")   // -> "[AI > Pathfinding] expanding node"

Enter returns the matching release func so `defer stack.Enter(name)()`
guarantees exactly one Exit per Enter on every return path.

Concurrency notes:
 - No internal locking: the stack assumes one logical execution context.
   Concurrent pushers must serialize externally.
*/

import "strings"

// ContextStack is an ordered sequence of scope names, outermost first.
// Construct with NewContextStack; the zero value is also usable.
type ContextStack struct {
	names []string
}

// NewContextStack returns an empty stack.
func NewContextStack() *ContextStack {
	return &ContextStack{}
}

// Enter pushes a scope name and returns the release func that pops it.
// The release func is idempotent: only its first call pops.
func (cs *ContextStack) Enter(name string) func() {
	cs.names = append(cs.names, name)
	done := false
	return func() {
		if !done {
			done = true
			cs.Exit()
		}
	}
}

// Exit pops the most recently entered scope. Calling Exit on an empty stack
// is a no-op: an unbalanced exit must never take the process down just to
// report a bookkeeping slip.
func (cs *ContextStack) Exit() {
	if n := len(cs.names); n > 0 {
		cs.names = cs.names[:n-1]
	}
}

// Depth returns the current nesting depth.
func (cs *ContextStack) Depth() int {
	return len(cs.names)
}

// Prefix renders the stack as a message prefix: "" when empty, otherwise
// "[outer > inner] " with a trailing space.
func (cs *ContextStack) Prefix() string {
	if len(cs.names) == 0 {
		return ""
	}
	return "[" + strings.Join(cs.names, DEFAULT_CONTEXT_JOINER) + "] "
}
