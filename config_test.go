package ijslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
enabled: true
environment: build
channels:
  audio:       { enabled: true, scope: both }
  network:     { enabled: false }
  performance: { enabled: true, scope: editor }
`

func Test_Config_ParseYAML(t *testing.T) {
	cfg, err := LoadConfigBytes([]byte(testConfigYAML))
	require.NoError(t, err)

	require.NotNil(t, cfg.Enabled)
	assert.True(t, *cfg.Enabled)
	assert.Equal(t, "build", cfg.Environment)

	require.Contains(t, cfg.Channels, "audio")
	require.NotNil(t, cfg.Channels["audio"].Enabled)
	assert.True(t, *cfg.Channels["audio"].Enabled)
	assert.Equal(t, "both", cfg.Channels["audio"].Scope)

	require.NotNil(t, cfg.Channels["network"].Enabled)
	assert.False(t, *cfg.Channels["network"].Enabled)
	assert.Empty(t, cfg.Channels["network"].Scope)

	assert.Equal(t, "editor", cfg.Channels["performance"].Scope)
}

func Test_Config_ParseErrorIsReported(t *testing.T) {
	_, err := LoadConfigBytes([]byte("channels: ["))
	assert.Error(t, err)
}

func Test_Config_Apply(t *testing.T) {
	l, _, _ := newTestLogger(ENV_EDITOR)
	cfg, err := LoadConfigBytes([]byte(testConfigYAML))
	require.NoError(t, err)

	l.ApplyConfig(cfg)

	assert.Equal(t, ENV_BUILD, l.Registry().Environment())
	assert.True(t, l.IsGlobalEnabled())
	assert.True(t, l.Registry().IsEnabled(CH_AUDIO))
	assert.False(t, l.Registry().IsEnabled(CH_NETWORK))
	// performance is editor-scoped and the environment is build
	assert.False(t, l.Registry().IsEnabled(CH_PERFORMANCE))

	l.Registry().SetEnvironment(ENV_EDITOR)
	assert.True(t, l.Registry().IsEnabled(CH_PERFORMANCE))
}

func Test_Config_ApplyGlobalGate(t *testing.T) {
	l, sink, _ := newTestLogger(ENV_EDITOR)
	cfg, err := LoadConfigBytes([]byte("enabled: false"))
	require.NoError(t, err)
	l.ApplyConfig(cfg)

	assert.False(t, l.IsGlobalEnabled())
	assert.False(t, l.NewClient("", CH_DEFAULT).LogInfo("hidden"))
	assert.Empty(t, sink.entries)
}

func Test_Config_UnknownNamesFailOpen(t *testing.T) {
	fallback := &fakeWriter{}
	l := InitWithParams(ENV_EDITOR, fallback, &fakeSink{})

	cfg, err := LoadConfigBytes([]byte(`
environment: metaverse
channels:
  rendering: { enabled: false }
  audio:     { enabled: true, scope: sideways }
`))
	require.NoError(t, err)
	l.ApplyConfig(cfg)

	// nothing got disabled, the problems are on the fallback writer
	assert.Equal(t, ENV_EDITOR, l.Registry().Environment())
	assert.True(t, l.Registry().IsEnabled(CH_AUDIO))
	assert.Contains(t, fallback.String(), "unknown environment `metaverse`")
	assert.Contains(t, fallback.String(), "unknown channel `rendering`")
	assert.Contains(t, fallback.String(), "unknown scope `sideways`")
}

func Test_Config_NilAndEmptyApply(t *testing.T) {
	l, _, _ := newTestLogger(ENV_EDITOR)
	assert.NotPanics(t, func() { l.ApplyConfig(nil) })
	assert.NotPanics(t, func() { l.ApplyConfig(&Config{}) })
	assert.True(t, l.IsGlobalEnabled())
	assert.Equal(t, ENV_EDITOR, l.Registry().Environment())
}

func Test_Config_LoadMissingFileFailsOpen(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Enabled)
	assert.Empty(t, cfg.Channels)

	l, _, _ := newTestLogger(ENV_EDITOR)
	l.ApplyConfig(cfg)
	assert.True(t, l.Registry().IsEnabled(CH_AUDIO), "missing config must never suppress logging")
}

func Test_Config_LoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	t.Setenv("IJSLOG_CHANNELS_AUDIO_ENABLED", "false")
	t.Setenv("IJSLOG_ENVIRONMENT", "editor")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Channels["audio"].Enabled)
	assert.False(t, *cfg.Channels["audio"].Enabled, "env var overrides the file")
	assert.Equal(t, "editor", cfg.Environment)
	// untouched file values survive the layering
	require.Contains(t, cfg.Channels, "performance")
	assert.Equal(t, "editor", cfg.Channels["performance"].Scope)
}

func Test_Config_LoadAndApplyBadFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels: ["), 0o600))

	fallback := &fakeWriter{}
	l := InitWithParams(ENV_EDITOR, fallback, &fakeSink{})
	l.LoadAndApplyConfig(path)

	assert.Contains(t, fallback.String(), _ERROR_MESSAGE_CONFIG_IGNORED)
	assert.True(t, l.Registry().IsEnabled(CH_AUDIO))
	assert.True(t, l.IsGlobalEnabled())
}

func Test_Config_LooseBool(t *testing.T) {
	assert.True(t, looseBool(true))
	assert.False(t, looseBool(false))
	assert.True(t, looseBool("true"))
	assert.False(t, looseBool("0"))
	assert.False(t, looseBool(" false "))
	// unparseable values fail open
	assert.True(t, looseBool("maybe"))
	assert.True(t, looseBool(42))
}
