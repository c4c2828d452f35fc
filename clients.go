package ijslog

/*
Lightweight client-side helpers for producing log messages. A LogClient is a
thin handle that records per-client settings (prefix, color, channel,
enabled, target) and forwards messages to the owning Logger's gates and
sinks.

Gate order in emit, cheapest first (each stage short-circuits, and a call
stopped at one stage leaves all later stages untouched):
 1. the Logger's global gate
 2. the client's own enabled flag
 3. the channel registry
 4. the rate limiter (throttled variants only)

Only then is the message formatted — context prefix, client prefix — and
handed to the sinks.
*/

import (
	"fmt"
	"strconv"
	"time"
)

// LogClient represents a producer of log messages. Each client carries its
// own prefix, color, channel and enabled flag; channel policy is global
// (shared registry) while the enabled flag is purely local.
//
// Clients are lightweight and intended to be created by Logger.NewClient...().
type LogClient struct {
	logger   *Logger  // owning logger
	id       int      // stable identity for throttle keys
	prefix   string   // prepended to messages as "<prefix>:: "
	channel  Channel  // channel consulted on every emission
	color    Color    // color hint carried on entries
	hasColor bool     // false = fall back to the per-level default color
	target   any      // opaque reference forwarded to sinks
	enabled  bool     // whether the client may emit at all
	curLevel LogLevel // level used by Write / fmt.Fprintf helpers
}

// NewClient constructs a client for the given channel. The prefix is
// prepended to every message the client emits ("" for none). Entries carry
// the per-level default colors until SetColor is called.
func (l *Logger) NewClient(prefix string, channel Channel) *LogClient {
	l.nextID++
	return &LogClient{
		logger:  l,
		id:      l.nextID,
		prefix:  prefix,
		channel: normChannel(channel),
		enabled: true,
	}
}

// NewClientWithColor constructs a client with a fixed color hint for all
// its entries regardless of level.
func (l *Logger) NewClientWithColor(prefix string, channel Channel, color Color) *LogClient {
	lc := l.NewClient(prefix, channel)
	lc.SetColor(color)
	return lc
}

// SetEnabled toggles whether the client may emit. Local to this client:
// other clients on the same channel are unaffected. Immediately effective.
func (lc *LogClient) SetEnabled(enabled bool) *LogClient {
	lc.enabled = enabled
	return lc
}

// Enabled reports the client's local enabled flag.
func (lc *LogClient) Enabled() bool { return lc.enabled }

// SetPrefix replaces the client prefix. Any value is accepted; "" drops the
// "<prefix>:: " decoration entirely.
func (lc *LogClient) SetPrefix(prefix string) *LogClient {
	lc.prefix = prefix
	return lc
}

// Prefix returns the client prefix.
func (lc *LogClient) Prefix() string { return lc.prefix }

// Channel returns the channel the client emits on.
func (lc *LogClient) Channel() Channel { return lc.channel }

// SetColor fixes the color hint carried on the client's entries.
func (lc *LogClient) SetColor(color Color) *LogClient {
	lc.color = color
	lc.hasColor = true
	return lc
}

// SetTarget attaches an opaque object reference forwarded on every entry
// (nil clears it). Sinks decide what, if anything, to do with it.
func (lc *LogClient) SetTarget(target any) *LogClient {
	lc.target = target
	return lc
}

/////////////////////////////////////////////////////////////////////////////////////////

// passesGates runs the cheap pre-emission checks in order: global gate,
// client flag, channel registry. The rate limiter is deliberately not here —
// its bookkeeping must only run for calls that survive these gates.
func (lc *LogClient) passesGates() bool {
	if lc.logger == nil || !lc.logger.enabled.Load() {
		return false
	}
	if !lc.enabled {
		return false
	}
	return lc.logger.registry.IsEnabled(lc.channel)
}

// emit is the single formatting + delivery path behind every Log* helper.
// throttle <= 0 means unthrottled; key is only consulted when throttled.
// Reports whether the message reached the sinks.
func (lc *LogClient) emit(level LogLevel, msg string, key string, throttle time.Duration) bool {
	if !lc.passesGates() {
		return false
	}
	if throttle > 0 {
		ok, dropped := lc.logger.limiter.Emit(key, throttle)
		if !ok {
			return false
		}
		if dropped > 0 {
			msg += " (suppressed " + strconv.Itoa(dropped) + "x)"
		}
	}
	final := lc.logger.context.Prefix() + msg
	if lc.prefix != "" {
		final = lc.prefix + DEFAULT_PREFIX_DELIMITER + final
	}
	level = normLevel(level)
	color := lc.color
	if !lc.hasColor {
		color = LevelColors[level]
	}
	lc.logger.writeEntry(Entry{
		Time:    time.Now(),
		Level:   level,
		Channel: lc.channel,
		Message: final,
		Color:   color,
		Target:  lc.target,
	})
	return true
}

// throttleKey builds the rate-limit identity for a message: client id plus
// the literal text. Two clients logging identical text are therefore never
// throttled against each other, while one client's distinct texts are
// tracked as distinct keys.
func (lc *LogClient) throttleKey(msg string) string {
	return strconv.Itoa(lc.id) + "\x00" + msg
}

/////////////////////////////////////////////////////////////////////////////////////////

// Log emits a message at the provided level. Reports whether the message
// passed all gates and reached the sinks.
func (lc *LogClient) Log(level LogLevel, msg string) bool {
	return lc.emit(level, msg, "", 0)
}

// Logf is the fmt.Sprintf form of Log. The format arguments are evaluated
// eagerly; use LogIfFn when the message is expensive to build.
func (lc *LogClient) Logf(level LogLevel, format string, args ...any) bool {
	return lc.emit(level, fmt.Sprintf(format, args...), "", 0)
}

// LogIf emits the message only when cond is true. The condition is a plain
// bool evaluated at the call site.
func (lc *LogClient) LogIf(cond bool, msg string, level LogLevel) bool {
	if !cond {
		return false
	}
	return lc.emit(level, msg, "", 0)
}

// LogIfFn is the lazy form of LogIf: cond only runs after the cheap gates
// pass, and msgFn only runs when cond returned true. A message that is
// expensive to build is never built for a suppressed call.
func (lc *LogClient) LogIfFn(cond func() bool, msgFn func() string, level LogLevel) bool {
	if cond == nil || msgFn == nil {
		return false
	}
	if !lc.passesGates() {
		return false
	}
	if !cond() {
		return false
	}
	return lc.emit(level, msgFn(), "", 0)
}

// LogThrottled emits the message at most once per minInterval, keyed by the
// client identity plus the literal message text. When a throttled message
// finally gets through again, " (suppressed <N>x)" is appended so the drops
// stay visible. Keep in mind that highly dynamic texts make one rate-limit
// key each; use LogThrottledKey with a stable key for those.
func (lc *LogClient) LogThrottled(msg string, minInterval time.Duration, level LogLevel) bool {
	return lc.emit(level, msg, lc.throttleKey(msg), minInterval)
}

// LogThrottledKey is LogThrottled with a caller-supplied stable key,
// bounding key cardinality when the message text varies per call. The key
// is still namespaced by client identity.
func (lc *LogClient) LogThrottledKey(key, msg string, minInterval time.Duration, level LogLevel) bool {
	return lc.emit(level, msg, lc.throttleKey(key), minInterval)
}

/////////////////////////////////////////////////////////////////////////////////////////

// Convenience level-specific helpers. Thin wrappers around Log that provide
// inline hints in editors and documentation tools.

// LogInfo emits a message at INFO level.
func (lc *LogClient) LogInfo(msg string) bool {
	return lc.Log(LVL_INFO, msg)
}

// LogWarn emits a message at WARN level. Use for recoverable or noteworthy
// conditions that deserve attention.
func (lc *LogClient) LogWarn(msg string) bool {
	return lc.Log(LVL_WARN, msg)
}

// LogError emits a message at ERROR level. Use LogErr to log an error value
// directly.
func (lc *LogClient) LogError(msg string) bool {
	return lc.Log(LVL_ERROR, msg)
}

// LogErr logs an error value at ERROR level. Semantically equivalent to
// LogError(e.Error()) but clearer at call sites that already hold an error.
// A nil error emits nothing.
func (lc *LogClient) LogErr(e error) bool {
	if e == nil {
		return false
	}
	return lc.Log(LVL_ERROR, e.Error())
}

// LogFatal emits a message at FATAL level. The level is a severity tag
// only — the logger never terminates the process on the caller's behalf.
func (lc *LogClient) LogFatal(msg string) bool {
	return lc.Log(LVL_FATAL, msg)
}
