package ijslog

/*
Defines the core data types used by the logging package:
  - basetype and a small set of typed aliases for clarity
  - LogLevel/Channel/Scope/Environment enums with their name maps
  - Color: the RGB hint attached to clients and carried on entries
  - ChannelConfig: per-channel activation policy
  - Entry: the formatted record handed to sinks

Also defines package-wide constants and normalization helpers.
*/

import (
	"fmt"
	"strings"
	"time"
)

type basetype byte // basetype is the underlying byte-sized representation used for enums

type LogLevel basetype    // Log severity (alias for byte)
type Channel basetype     // Log category for independent enable/disable control
type Scope basetype       // Where a channel is active: editor, build or both
type Environment basetype // The host the process is running in: editor or build

const (
	// Log level values. The trailing _LVL_MAX_for_checks_only is used as an
	// exclusive upper bound for normalization checks.
	LVL_INFO LogLevel = iota
	LVL_WARN
	LVL_ERROR
	LVL_FATAL
	_LVL_MAX_for_checks_only
)

const (
	// Channel values. CH_DEFAULT is the sentinel: it bypasses configuration
	// and is always enabled.
	CH_DEFAULT Channel = iota
	CH_AUDIO
	CH_NETWORK
	CH_GAMEPLAY
	CH_UI
	CH_AI
	CH_PHYSICS
	CH_SAVELOAD
	CH_PERFORMANCE
	_CH_MAX_for_checks_only
)

const (
	// Channel activation scopes. SCOPE_BOTH is the zero value so an
	// unconfigured entry activates everywhere.
	SCOPE_BOTH Scope = iota
	SCOPE_EDITOR_ONLY
	SCOPE_BUILD_ONLY
	_SCOPE_MAX_for_checks_only
)

const (
	ENV_EDITOR Environment = iota
	ENV_BUILD
	_ENV_MAX_for_checks_only
)

const (
	// Default values for short init forms
	DEFAULT_PREFIX_DELIMITER = ":: " // separator between client prefix and message
	DEFAULT_CONTEXT_JOINER   = " > " // separator between nested context names
	DEFAULT_MEMORY_CAP       = 1000  // retained entries before MemorySink evicts
	DEFAULT_ENV_PREFIX       = "IJSLOG_"
)

// LevelMap is a fixed-size array with one entry per log level. Used for
// level names and colors.
type LevelMap [_LVL_MAX_for_checks_only]string

// Predefined log level full names map
var LevelFullNames = &LevelMap{
	"INFO",  //LVL_INFO
	"WARN",  //LVL_WARN
	"ERROR", //LVL_ERROR
	"FATAL", //LVL_FATAL
}

// Predefined log level short names map
var LevelShortNames = &LevelMap{
	"INF", //LVL_INFO
	"WRN", //LVL_WARN
	"ERR", //LVL_ERROR
	"FTL", //LVL_FATAL
}

// channelNames maps every channel to its lowercase configuration key.
var channelNames = [_CH_MAX_for_checks_only]string{
	"default",
	"audio",
	"network",
	"gameplay",
	"ui",
	"ai",
	"physics",
	"saveload",
	"performance",
}

// Name returns the lowercase configuration key of a channel ("audio",
// "network", ...). Out-of-range values render as "default".
func (c Channel) Name() string {
	return channelNames[normChannel(c)]
}

// ChannelFromName resolves a configuration key back to its channel. The
// lookup is case-insensitive. Unknown names return CH_DEFAULT and false.
func ChannelFromName(name string) (Channel, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range channelNames {
		if n == name {
			return Channel(i), true
		}
	}
	return CH_DEFAULT, false
}

// scopeNames maps every scope to its configuration key.
var scopeNames = [_SCOPE_MAX_for_checks_only]string{
	"both",
	"editor",
	"build",
}

// Name returns the configuration key of a scope ("both", "editor", "build").
func (s Scope) Name() string {
	return scopeNames[normScope(s)]
}

// ScopeFromName resolves a configuration key back to its scope. Unknown
// names return SCOPE_BOTH and false (fail-open: an unrecognized scope never
// deactivates a channel).
func ScopeFromName(name string) (Scope, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range scopeNames {
		if n == name {
			return Scope(i), true
		}
	}
	return SCOPE_BOTH, false
}

// activeIn reports whether the scope activates the channel in the given
// environment.
func (s Scope) activeIn(env Environment) bool {
	switch normScope(s) {
	case SCOPE_EDITOR_ONLY:
		return env == ENV_EDITOR
	case SCOPE_BUILD_ONLY:
		return env == ENV_BUILD
	default:
		return true
	}
}

// Color is an RGB hint attached to a client and carried on every entry it
// emits. Sinks decide whether and how to render it.
type Color struct {
	R, G, B uint8
}

// Hex renders the color as a "#rrggbb" string (the form terminal style
// libraries and editor GUIs both accept).
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Predefined per-level colors used by NewClient when the caller does not
// pick one.
var LevelColors = [_LVL_MAX_for_checks_only]Color{
	{R: 0xdd, G: 0xdd, B: 0xdd}, //LVL_INFO
	{R: 0xe5, G: 0xc0, B: 0x7b}, //LVL_WARN
	{R: 0xe0, G: 0x6c, B: 0x75}, //LVL_ERROR
	{R: 0xff, G: 0x2d, B: 0x2d}, //LVL_FATAL
}

// ChannelConfig is the activation policy for one channel: whether it is
// enabled at all and in which environments it is active. A channel with no
// config is treated as {enabled, SCOPE_BOTH}.
type ChannelConfig struct {
	Channel Channel
	Scope   Scope
	Enabled bool
}

// Entry is the unit handed to sinks: the fully formatted message plus the
// metadata a sink may want for rendering or routing. Target is an opaque
// reference to the object the message is about (may be nil); its handling
// is entirely up to the sink.
type Entry struct {
	Time    time.Time
	Level   LogLevel
	Channel Channel
	Message string
	Color   Color
	Target  any
}

/////////////////////////////////////////////////////////////////////////////////////////

// Generic byte normalization helper.
func norm_byte[T ~byte](val, overlimit, def T) T {
	if val < overlimit {
		return val
	} else {
		return def
	}
}

// Ensures a provided LogLevel is within the valid range
func normLevel(level LogLevel) LogLevel {
	return norm_byte(level, _LVL_MAX_for_checks_only, LVL_INFO)
}

// Ensures a provided Channel is within the valid range
func normChannel(ch Channel) Channel {
	return norm_byte(ch, _CH_MAX_for_checks_only, CH_DEFAULT)
}

// Ensures a provided Scope is within the valid range
func normScope(s Scope) Scope {
	return norm_byte(s, _SCOPE_MAX_for_checks_only, SCOPE_BOTH)
}

// Converts a panic value into a compact readable string (used when
// translating sink panics into fallback messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}
