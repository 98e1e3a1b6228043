package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // json | sqlite | memory
	Path    string `mapstructure:"path"`    // directory (json) or file (sqlite)
	Watch   bool   `mapstructure:"watch"`   // reload the TUI on external writes (json only)
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme  string `mapstructure:"theme"`  // classic | neon | mono
	Filter string `mapstructure:"filter"` // initial filter: all | active | completed
	Group  bool   `mapstructure:"group"`  // group `ls` output by pending/done
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Load reads configuration from file and env. Env var overrides use prefix TADA_.
// path overrides TADA_CONFIG; both empty means ~/.config/tada/config.toml if present.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.watch", true)
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.filter", "all")
	v.SetDefault("ui.group", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("TADA_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(configHome(), "tada"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TADA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no component can serve.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want json, sqlite or memory)", c.Storage.Backend)
	}
	return nil
}

// DataPath resolves the storage path, defaulting to the working directory
// for json and ./todos.db for sqlite.
func (c Config) DataPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendSQLite {
		return "todos.db"
	}
	return ""
}

func configHome() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return x
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}
