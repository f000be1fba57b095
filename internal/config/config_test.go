package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/rdom/internal/errors"
	"github.com/vango-dev/rdom/pkg/scheduler"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, scheduler.DefaultRecursionLimit, cfg.Scheduler.RecursionLimit)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultRateLimit, cfg.Server.RateLimit)
	assert.Equal(t, DefaultBurst, cfg.Server.Burst)
	assert.Equal(t, DefaultNamespace, cfg.Metrics.Namespace)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigNotFound, errors.CodeOf(err))

	doc := `
scheduler:
  recursionLimit: 10
server:
  addr: "127.0.0.1:9000"
  burst: 5
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(doc), 0644))
	require.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Scheduler.RecursionLimit)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Server.Burst)
	assert.Equal(t, DefaultRateLimit, cfg.Server.RateLimit, "unset fields take defaults")
	assert.Equal(t, DefaultNamespace, cfg.Metrics.Namespace)
	assert.Equal(t, dir, cfg.Dir())
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		doc  string
		code string
	}{
		{"bad yaml", "server: [", errors.CodeConfigParse},
		{"negative burst", "server:\n  burst: -1\n", errors.CodeConfigInvalid},
		{"bad level", "log:\n  level: loud\n", errors.CodeConfigInvalid},
		{"bad format", "log:\n  format: xml\n", errors.CodeConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0644))
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	assert.Error(t, cfg.Save(), "Save without a path fails")

	cfg.Server.Addr = ":9999"
	cfg.Metrics.Namespace = "inspector"
	require.NoError(t, cfg.SaveTo(path))
	assert.Equal(t, path, cfg.Path())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", loaded.Server.Addr)
	assert.Equal(t, "inspector", loaded.Metrics.Namespace)
}

func TestLogger(t *testing.T) {
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)
}
