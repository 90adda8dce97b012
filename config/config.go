/*
Package config loads server and game settings.

SOURCES (later wins):
  1. Built-in defaults
  2. Optional YAML file (jobstack.yaml in ., ./configs, or an explicit path)
  3. .env file in the working directory, if present
  4. Environment variables prefixed with JOBSTACK_, e.g. JOBSTACK_SERVER_PORT,
     JOBSTACK_STORE_DRIVER, JOBSTACK_GAME_PROFILE, JOBSTACK_LOGGING_LEVEL

EXAMPLE FILE:
  server:
    port: 8080
  store:
    driver: sqlite
    dsn: ":memory:"
  game:
    profile: marketplace
    seed: 0
  reaper:
    enabled: true
    interval: 5m
    idle_ttl: 2h
  logging:
    level: info
    format: json
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main application configuration struct.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Game    GameConfig    `mapstructure:"game"`
	Reaper  ReaperConfig  `mapstructure:"reaper"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // memory or sqlite
	DSN    string `mapstructure:"dsn"`
}

type GameConfig struct {
	Profile     string `mapstructure:"profile"`
	ProfileFile string `mapstructure:"profile_file"`
	Seed        uint64 `mapstructure:"seed"` // 0 seeds from the clock
}

type ReaperConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	IdleTTL  time.Duration `mapstructure:"idle_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const envPrefix = "JOBSTACK"

// Load reads configuration. An empty path searches for jobstack.yaml and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("jobstack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", ":memory:")

	v.SetDefault("game.profile", "marketplace")
	v.SetDefault("game.profile_file", "")
	v.SetDefault("game.seed", 0)

	v.SetDefault("reaper.enabled", true)
	v.SetDefault("reaper.interval", 5*time.Minute)
	v.SetDefault("reaper.idle_ttl", 2*time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.DSN == "" {
			return errors.New("store.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("store.driver %q must be memory or sqlite", c.Store.Driver)
	}
	if c.Game.Profile == "" {
		return errors.New("game.profile is required")
	}
	if c.Reaper.Enabled && (c.Reaper.Interval <= 0 || c.Reaper.IdleTTL <= 0) {
		return errors.New("reaper.interval and reaper.idle_ttl must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
