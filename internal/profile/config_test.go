package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ptero.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  path: ""
  level: debug
runtime:
  maxPasses: 1000
bridge:
  poolSize: 8
  tick: 5ms
codec:
  name: msgpack
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Log.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500, cfg.Log.File.MaxSize)
	assert.Equal(t, 1000, cfg.Runtime.MaxPasses)
	assert.True(t, cfg.Runtime.WarnUnstopped)
	assert.Equal(t, 8, cfg.Bridge.PoolSize)
	assert.Equal(t, 5*time.Millisecond, cfg.Bridge.Tick)
	assert.Equal(t, int64(3600), cfg.Bridge.WheelSize)
	assert.Equal(t, "msgpack", cfg.Codec.Name)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Runtime.MaxPasses = 64
	cfg.Bridge.Tick = 10 * time.Millisecond
	cfg.Codec.Name = "proto"

	data, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "maxPasses: 64")
	assert.Contains(t, string(data), "poolSize:")

	loaded, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
