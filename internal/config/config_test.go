package config_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	cfg, err := config.NewLoader(t.TempDir(), config.Production).Load()
	require.NoError(t, err)

	assert.Equal(t, config.Production, cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Domain.Lookahead.MaxDepth)
	assert.Equal(t, 180.0, cfg.Domain.Geometry.StackGap)
	assert.Equal(t, []string{"defaults", "environment"}, cfg.LoadedFrom)
}

func TestLoad_TestEnvironmentDefaults(t *testing.T) {
	cfg, err := config.NewLoader(t.TempDir(), config.Test).Load()
	require.NoError(t, err)

	assert.Equal(t, "sequential", cfg.Seed.IDStrategy)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_LayerPriority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
server:
  port: 9000
  read_timeout: 5s
domain:
  lookahead:
    max_depth: 4
`)
	writeFile(t, dir, "production.toml", `
[server]
port = 9100

[logging]
level = "warn"
`)

	cfg, err := config.NewLoader(dir, config.Production).Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Domain.Lookahead.MaxDepth)
	assert.Equal(t, []string{
		"defaults",
		filepath.Join(dir, "base.yaml"),
		filepath.Join(dir, "production.toml"),
		"environment",
	}, cfg.LoadedFrom)
}

func TestLoad_YAMLPreferredOverJSONForSameLayer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server:\n  port: 9001\n")
	writeFile(t, dir, "base.json", `{"server": {"port": 9002}}`)

	cfg, err := config.NewLoader(dir, config.Production).Load()
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestLoad_LocalOnlyInDevelopment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "local.yaml", "server:\n  port: 7000\n")

	dev, err := config.NewLoader(dir, config.Development).Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, dev.Server.Port)
	assert.Equal(t, "console", dev.Logging.Format)

	prod, err := config.NewLoader(dir, config.Production).Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, prod.Server.Port)
}

func TestLoad_EnvironmentVariablesWin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server:\n  port: 9000\n")
	t.Setenv("IMPACTMAP_SERVER_PORT", "9500")
	t.Setenv("IMPACTMAP_SERVER_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("IMPACTMAP_METRICS_ENABLED", "false")
	t.Setenv("IMPACTMAP_LOOKAHEAD_MAX_DEPTH", "2")

	cfg, err := config.NewLoader(dir, config.Production).Load()
	require.NoError(t, err)

	assert.Equal(t, 9500, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 2, cfg.Domain.Lookahead.MaxDepth)
}

func TestLoad_MalformedEnvironmentVariable(t *testing.T) {
	t.Setenv("IMPACTMAP_SERVER_PORT", "eighty")

	_, err := config.NewLoader(t.TempDir(), config.Production).Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "malformed environment variables")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server:\n  prot: 9000\n")

	_, err := config.NewLoader(dir, config.Production).Load()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigLoad.String(), apperrors.GetCode(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{name: "port out of range", mutate: func(c *config.Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "lookahead depth zero", mutate: func(c *config.Config) { c.Domain.Lookahead.MaxDepth = 0 }, wantErr: true},
		{name: "unknown id strategy", mutate: func(c *config.Config) { c.Seed.IDStrategy = "random" }, wantErr: true},
		{
			name: "metrics enabled without namespace",
			mutate: func(c *config.Config) {
				c.Metrics.Enabled = true
				c.Metrics.Namespace = ""
			},
			wantErr: true,
		},
		{
			name: "metrics disabled without namespace",
			mutate: func(c *config.Config) {
				c.Metrics.Enabled = false
				c.Metrics.Namespace = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default(config.Production)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeConfigInvalid.String(), apperrors.GetCode(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestServerAddress(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8081", config.Server{Host: "127.0.0.1", Port: 8081}.Address())
}

func TestWatcher_ReloadNotifiesOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server:\n  port: 9000\n")
	loader := config.NewLoader(dir, config.Production)
	initial, err := loader.Load()
	require.NoError(t, err)

	w := config.NewWatcher(loader, initial, zap.NewNop())
	var calls int32
	w.OnChange(func(c *config.Config) {
		atomic.AddInt32(&calls, 1)
	})

	w.Reload()
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "unchanged configuration is not reported")

	writeFile(t, dir, "base.yaml", "server:\n  port: 9001\n")
	w.Reload()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 9001, w.Current().Server.Port)
}

func TestWatcher_InvalidReloadKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server:\n  port: 9000\n")
	loader := config.NewLoader(dir, config.Production)
	initial, err := loader.Load()
	require.NoError(t, err)

	w := config.NewWatcher(loader, initial, zap.NewNop())
	w.OnChange(func(*config.Config) { panic("must not be called") })

	writeFile(t, dir, "base.yaml", "server:\n  port: 0\n")
	w.Reload()
	assert.Equal(t, 9000, w.Current().Server.Port)
}

func TestWatcher_CallbackPanicIsRecovered(t *testing.T) {
	dir := t.TempDir()
	loader := config.NewLoader(dir, config.Production)
	initial, err := loader.Load()
	require.NoError(t, err)

	w := config.NewWatcher(loader, initial, zap.NewNop())
	var after int32
	w.OnChange(func(*config.Config) { panic("boom") })
	w.OnChange(func(*config.Config) { atomic.StoreInt32(&after, 1) })

	writeFile(t, dir, "base.yaml", "logging:\n  level: error\n")
	assert.NotPanics(t, w.Reload)
	assert.Equal(t, int32(1), atomic.LoadInt32(&after))
}

func TestWatcher_FileEventTriggersReload(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server:\n  port: 9000\n")
	loader := config.NewLoader(dir, config.Production)
	initial, err := loader.Load()
	require.NoError(t, err)

	w := config.NewWatcher(loader, initial, zap.NewNop()).WithDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start())
	defer w.Stop()

	writeFile(t, dir, "base.yaml", "server:\n  port: 9300\n")
	require.Eventually(t, func() bool {
		return w.Current().Server.Port == 9300
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := config.NewWatcher(config.NewLoader(t.TempDir(), config.Test), config.Default(config.Test), nil)
	w.Stop()
	w.Stop()
}
