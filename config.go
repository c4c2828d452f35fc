package ijslog

/*
External configuration of the channel registry and global gate.

Configuration precedence (highest to lowest):
 1. Environment variables (IJSLOG_CHANNELS_AUDIO_SCOPE, IJSLOG_ENABLED, ...)
 2. YAML config file
 3. Fail-open defaults (everything enabled, SCOPE_BOTH)

YAML shape:

	enabled: true
	environment: editor
	channels:
	  audio:       { enabled: true,  scope: both }
	  network:     { enabled: false }
	  performance: { enabled: true,  scope: editor }

A missing file is not an error — the registry simply stays at its fail-open
defaults. Unknown channel or scope names are noted on the fallback writer
and skipped; a bad config must never silently suppress all logging.
*/

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// ChannelSetting is one channel's block in the config file. Pointer fields
// distinguish "absent" from "explicitly false/empty".
type ChannelSetting struct {
	Enabled *bool
	Scope   string
}

// Config is the parsed external configuration. Zero value applies nothing.
type Config struct {
	Enabled     *bool // global gate; nil = leave alone
	Environment string
	Channels    map[string]ChannelSetting
}

// LoadConfig reads the YAML file at path (skipped when empty or absent),
// then layers IJSLOG_* environment variables on top.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if content, err := os.ReadFile(path); err == nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Environment variables override the file. The transformer maps
	// IJSLOG_CHANNELS_AUDIO_SCOPE -> channels.audio.scope.
	if err := k.Load(env.Provider(DEFAULT_ENV_PREFIX, ".", func(s string) string {
		s = strings.TrimPrefix(s, DEFAULT_ENV_PREFIX)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	return configFromKoanf(k), nil
}

// LoadConfigBytes parses raw YAML content without env layering. Intended
// for tests and for hosts that fetch configuration themselves.
func LoadConfigBytes(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return configFromKoanf(k), nil
}

// configFromKoanf extracts the known keys. Values are pulled individually
// (not unmarshalled) so env-provided strings and YAML-typed values are
// accepted interchangeably.
func configFromKoanf(k *koanf.Koanf) *Config {
	cfg := &Config{Channels: map[string]ChannelSetting{}}
	if k.Exists("enabled") {
		b := looseBool(k.Get("enabled"))
		cfg.Enabled = &b
	}
	cfg.Environment = strings.TrimSpace(k.String("environment"))
	for name := range k.Cut("channels").Raw() {
		setting := ChannelSetting{}
		base := "channels." + name
		if k.Exists(base + ".enabled") {
			b := looseBool(k.Get(base + ".enabled"))
			setting.Enabled = &b
		}
		setting.Scope = strings.TrimSpace(k.String(base + ".scope"))
		cfg.Channels[name] = setting
	}
	return cfg
}

// looseBool accepts YAML bools and env-var strings alike. Anything
// unparseable counts as true: configuration mistakes fail open.
func looseBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return true
		}
		return b
	default:
		return true
	}
}

/////////////////////////////////////////////////////////////////////////////////////////

// ApplyConfig pushes a parsed config into the logger: global gate,
// environment, then per-channel upserts. Unknown channel or scope names are
// noted on the fallback writer and skipped.
func (l *Logger) ApplyConfig(cfg *Config) *Logger {
	if cfg == nil {
		return l
	}
	if cfg.Enabled != nil {
		l.SetGlobalEnabled(*cfg.Enabled)
	}
	switch strings.ToLower(cfg.Environment) {
	case "":
		// keep current
	case "editor":
		l.registry.SetEnvironment(ENV_EDITOR)
	case "build":
		l.registry.SetEnvironment(ENV_BUILD)
	default:
		l.fbckWriteln("unknown environment `" + cfg.Environment + "`, " + _ERROR_MESSAGE_CONFIG_IGNORED)
	}
	for name, setting := range cfg.Channels {
		ch, ok := ChannelFromName(name)
		if !ok || ch == CH_DEFAULT {
			l.fbckWriteln("unknown channel `" + name + "`, " + _ERROR_MESSAGE_CONFIG_IGNORED)
			continue
		}
		if setting.Enabled != nil {
			l.registry.SetEnabled(ch, *setting.Enabled)
		}
		if setting.Scope != "" {
			scope, ok := ScopeFromName(setting.Scope)
			if !ok {
				l.fbckWriteln("unknown scope `" + setting.Scope + "` for channel `" + name + "`, " + _ERROR_MESSAGE_CONFIG_IGNORED)
				continue
			}
			l.registry.SetScope(ch, scope)
		}
	}
	return l
}

// LoadAndApplyConfig is LoadConfig + ApplyConfig with fail-open error
// handling: any load problem is noted on the fallback writer and the
// registry keeps its previous (or default) state.
func (l *Logger) LoadAndApplyConfig(path string) *Logger {
	cfg, err := LoadConfig(path)
	if err != nil {
		l.fbckWriteln(err.Error() + ", " + _ERROR_MESSAGE_CONFIG_IGNORED)
		return l
	}
	return l.ApplyConfig(cfg)
}

// WatchConfig loads the file now and re-applies it whenever it changes on
// disk (fsnotify underneath). Reload errors are noted on the fallback
// writer; the last good configuration stays active. The returned stop func
// ends the watch.
func (l *Logger) WatchConfig(path string) (stop func() error, err error) {
	l.LoadAndApplyConfig(path)
	f := file.Provider(path)
	err = f.Watch(func(event interface{}, err error) {
		if err != nil {
			l.fbckWriteln("config watch: " + err.Error())
			return
		}
		l.LoadAndApplyConfig(path)
	})
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	return f.Unwatch, nil
}
