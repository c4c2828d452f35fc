// A lightweight, channel-filtered logging package for game development
// tooling. Provides prefixed, colorized, throttled and context-tagged log
// output with per-client and per-channel configuration, plus fluent
// assertions built on the same emission path.
package ijslog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

const (
	// Error messages used across logger operations (used for testing).
	_ERROR_MESSAGE_SINK_PANIC     = "panic writing to sink"
	_ERROR_MESSAGE_CONFIG_IGNORED = "config ignored, staying on defaults"
	_ERROR_UNKNOWN_PANIC_TEXT     = "[no panic description]"
)

// Logger is the central state holder: the global emission gate, the channel
// registry, the rate limiter, the context stack, the attached sinks and the
// fallback writer used to report internal problems. All log output flows
// through clients created by NewClient; the Logger itself never emits.
//
// Every Logger is self-contained — tests and subsystems can build isolated
// instances instead of sharing process-wide state.
type Logger struct {
	registry *ChannelRegistry
	limiter  *RateLimiter
	context  *ContextStack
	sinks    []Sink
	fbckMtx  sync.Mutex  // guards fallback access (watcher goroutine vs emission path)
	fallbck  io.Writer   // destination for internal error notes, never nil
	enabled  atomic.Bool // global gate, checked before anything else; the config watcher flips it from its own goroutine
	nextID   int         // id source for client throttle-key identity

	debuggerCheck func() bool // reports whether a debugger is attached
	pauseHook     func()      // host-supplied pause (editor integration)
}

// Init creates a logger for the editor environment with the provided sinks
// and os.Stderr as fallback for internal errors (both can be changed later
// with Set methods).
func Init(sinks ...Sink) *Logger {
	return InitWithParams(ENV_EDITOR, os.Stderr, sinks...)
}

// InitWithParams constructs a logger with explicit initial settings.
// Channels start unconfigured, meaning everything fails open to enabled.
func InitWithParams(env Environment, fallback io.Writer, sinks ...Sink) *Logger {
	l := new(Logger)
	l.registry = NewChannelRegistry(env)
	l.limiter = NewRateLimiter()
	l.context = NewContextStack()
	l.enabled.Store(true)
	l.SetFallback(fallback)
	l.AddSinks(sinks...)
	return l
}

// Registry exposes the channel registry for configuration.
func (l *Logger) Registry() *ChannelRegistry { return l.registry }

// Limiter exposes the rate limiter (monitoring, explicit Clear).
func (l *Logger) Limiter() *RateLimiter { return l.limiter }

// Context exposes the context stack for scope tagging:
//
//	defer log.Context().Enter("LevelLoad")()
func (l *Logger) Context() *ContextStack { return l.context }

// SetGlobalEnabled flips the global gate. When false every emission from
// every client is suppressed before any other check runs — the runtime
// stand-in for stripping log calls out of a build.
func (l *Logger) SetGlobalEnabled(enabled bool) *Logger {
	l.enabled.Store(enabled)
	return l
}

// IsGlobalEnabled reports the global gate state.
func (l *Logger) IsGlobalEnabled() bool { return l.enabled.Load() }

// Sets the fallback output used to report internal errors, io.Discard is
// used instead of nil to silently drop fallback messages.
//
// The operation is protected by mutex for thread safety.
func (l *Logger) SetFallback(f io.Writer) *Logger {
	l.fbckMtx.Lock()
	defer l.fbckMtx.Unlock()
	if f != nil {
		l.fallbck = f
	} else {
		l.fallbck = io.Discard
	}
	return l
}

// SetDebuggerCheck installs the detector consulted by Assertion.BreakDebugger.
// Without one installed, BreakDebugger never fires.
func (l *Logger) SetDebuggerCheck(check func() bool) *Logger {
	l.debuggerCheck = check
	return l
}

// SetPauseHook installs the host pause action invoked by
// Assertion.PauseHost on a failed check. Without one installed, PauseHost
// does nothing.
func (l *Logger) SetPauseHook(pause func()) *Logger {
	l.pauseHook = pause
	return l
}

// AddSinks attaches one or more sinks. Nil sinks are ignored. Changes apply
// to the next emission.
func (l *Logger) AddSinks(sinks ...Sink) *Logger {
	for _, s := range sinks {
		if s != nil {
			l.sinks = append(l.sinks, s)
		}
	}
	return l
}

// RemoveSinks detaches the provided sinks (matched by identity). No error
// if a sink was never attached.
func (l *Logger) RemoveSinks(sinks ...Sink) *Logger {
	for _, s := range sinks {
		for i, have := range l.sinks {
			if have == s {
				l.sinks = append(l.sinks[:i], l.sinks[i+1:]...)
				break
			}
		}
	}
	return l
}

// ClearSinks detaches every sink. Emissions still pass all gates and pay
// rate-limiter bookkeeping, they just reach nobody.
func (l *Logger) ClearSinks() *Logger {
	l.sinks = nil
	return l
}

// IsSinkAttached reports whether the given sink is currently attached.
func (l *Logger) IsSinkAttached(s Sink) bool {
	for _, have := range l.sinks {
		if have == s {
			return true
		}
	}
	return false
}

// fbckWriteln writes a single-line note to the fallback writer. Used to
// report internal errors without touching the normal emission path. The
// mutex serializes watcher-goroutine notes against emission-path ones.
func (l *Logger) fbckWriteln(s string) {
	l.fbckMtx.Lock()
	defer l.fbckMtx.Unlock()
	l.fallbck.Write([]byte(s + "\n"))
}

// writeEntry fans an accepted entry out to every attached sink. A sink
// panic is recovered and noted on the fallback writer: logging must never
// take the caller down, whatever a sink does.
func (l *Logger) writeEntry(e Entry) {
	for _, s := range l.sinks {
		l.writeOne(s, e)
	}
}

func (l *Logger) writeOne(s Sink, e Entry) {
	defer func() {
		if r := recover(); r != nil {
			l.fbckWriteln(_ERROR_MESSAGE_SINK_PANIC + panicDesc(r))
		}
	}()
	s.Write(e)
}
