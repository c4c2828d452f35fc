package ijslog

/*
Per-channel activation policy. A ChannelRegistry answers the single question
"may this channel emit right now?" by combining explicit per-channel
configuration with the process environment (editor vs packaged build).

Every lookup fails open: the sentinel channel bypasses configuration, and a
channel with no entry is enabled everywhere. A missing or broken settings
source degrades to "everything visible", never to silence.

The registry is the one component mutated from outside the caller's loop
(config hot-reload applies from a watcher goroutine), so its state is
guarded by a mutex.
*/

import "sync"

// ChannelRegistry holds per-channel configs and the current environment.
// Construct with NewChannelRegistry.
type ChannelRegistry struct {
	mtx     sync.RWMutex
	entries map[Channel]*ChannelConfig
	env     Environment
}

// NewChannelRegistry returns a registry with no entries (every channel
// fails open to enabled) for the given environment.
func NewChannelRegistry(env Environment) *ChannelRegistry {
	return &ChannelRegistry{
		entries: map[Channel]*ChannelConfig{},
		env:     env,
	}
}

// Environment returns the environment the registry evaluates scopes against.
func (r *ChannelRegistry) Environment() Environment {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.env
}

// SetEnvironment changes the environment used for scope checks. Takes
// effect on the next IsEnabled call.
func (r *ChannelRegistry) SetEnvironment(env Environment) *ChannelRegistry {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.env = env
	return r
}

// IsEnabled reports whether a channel may emit. Checks, in order:
//  1. the sentinel CH_DEFAULT is always enabled
//  2. a channel with no entry is enabled (fail-open)
//  3. an explicitly disabled entry wins
//  4. otherwise the entry's scope is matched against the environment
func (r *ChannelRegistry) IsEnabled(ch Channel) bool {
	if normChannel(ch) == CH_DEFAULT {
		return true
	}
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	e := r.entries[normChannel(ch)]
	if e == nil {
		return true
	}
	if !e.Enabled {
		return false
	}
	return e.Scope.activeIn(r.env)
}

// Config returns a copy of the channel's config and whether an explicit
// entry exists. Absent entries report the fail-open default.
func (r *ChannelRegistry) Config(ch Channel) (ChannelConfig, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if e := r.entries[normChannel(ch)]; e != nil {
		return *e, true
	}
	return ChannelConfig{Channel: normChannel(ch), Scope: SCOPE_BOTH, Enabled: true}, false
}

// SetEnabled upserts the channel's entry and flips its enabled flag.
// Setting the sentinel channel is a no-op (it cannot be configured).
func (r *ChannelRegistry) SetEnabled(ch Channel, enabled bool) *ChannelRegistry {
	r.upsert(ch, func(e *ChannelConfig) { e.Enabled = enabled })
	return r
}

// SetScope upserts the channel's entry and replaces its scope.
// Setting the sentinel channel is a no-op.
func (r *ChannelRegistry) SetScope(ch Channel, scope Scope) *ChannelRegistry {
	r.upsert(ch, func(e *ChannelConfig) { e.Scope = normScope(scope) })
	return r
}

// upsert applies a change to the channel's entry, creating it with the
// fail-open defaults first when absent.
func (r *ChannelRegistry) upsert(ch Channel, change func(*ChannelConfig)) {
	ch = normChannel(ch)
	if ch == CH_DEFAULT {
		return
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	e := r.entries[ch]
	if e == nil {
		e = &ChannelConfig{Channel: ch, Scope: SCOPE_BOTH, Enabled: true}
		r.entries[ch] = e
	}
	change(e)
}

// ResetToDefaults clears all entries and re-populates every non-sentinel
// channel with {enabled, SCOPE_BOTH}. CH_PERFORMANCE is the exception: its
// frame-time diagnostics are noise in a packaged build, so it defaults to
// editor-only.
func (r *ChannelRegistry) ResetToDefaults() *ChannelRegistry {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	clear(r.entries)
	for ch := CH_DEFAULT + 1; ch < _CH_MAX_for_checks_only; ch++ {
		scope := SCOPE_BOTH
		if ch == CH_PERFORMANCE {
			scope = SCOPE_EDITOR_ONLY
		}
		r.entries[ch] = &ChannelConfig{Channel: ch, Scope: scope, Enabled: true}
	}
	return r
}

// Snapshot returns a copy of every explicit entry, ordered by channel.
// Used by the CLI to print the effective channel table.
func (r *ChannelRegistry) Snapshot() []ChannelConfig {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	out := make([]ChannelConfig, 0, len(r.entries))
	for ch := CH_DEFAULT + 1; ch < _CH_MAX_for_checks_only; ch++ {
		if e := r.entries[ch]; e != nil {
			out = append(out, *e)
		}
	}
	return out
}
