package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/jobstack/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.DSN)
	assert.Equal(t, "marketplace", cfg.Game.Profile)
	assert.Equal(t, uint64(0), cfg.Game.Seed)
	assert.True(t, cfg.Reaper.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Reaper.IdleTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
store:
  driver: memory
game:
  profile: classic
  seed: 42
reaper:
  interval: 30s
logging:
  level: debug
  format: json
`), 0o644))

	t.Setenv("JOBSTACK_SERVER_PORT", "9100")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "environment wins over file")
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "classic", cfg.Game.Profile)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, 30*time.Second, cfg.Reaper.Interval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Server:  config.ServerConfig{Port: 8080},
			Store:   config.StoreConfig{Driver: "sqlite", DSN: ":memory:"},
			Game:    config.GameConfig{Profile: "classic"},
			Reaper:  config.ReaperConfig{Enabled: true, Interval: time.Minute, IdleTTL: time.Hour},
			Logging: config.LoggingConfig{Level: "info"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad port", func(c *config.Config) { c.Server.Port = 0 }},
		{"bad driver", func(c *config.Config) { c.Store.Driver = "postgres" }},
		{"sqlite without dsn", func(c *config.Config) { c.Store.DSN = "" }},
		{"no profile", func(c *config.Config) { c.Game.Profile = "" }},
		{"zero reaper interval", func(c *config.Config) { c.Reaper.Interval = 0 }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}

	base := valid()
	require.NoError(t, base.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	disabled := valid()
	disabled.Reaper = config.ReaperConfig{Enabled: false}
	assert.NoError(t, disabled.Validate())
}
