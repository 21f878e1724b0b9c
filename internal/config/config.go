package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvProd = "prod"
	EnvTest = "test"

	fileName = "config.yaml"
)

// Config holds everything the CLI needs to locate and present the standup.
type Config struct {
	// Dir is the laydown config directory holding the record file.
	Dir        string `yaml:"-" mapstructure:"-"`
	Env        string `yaml:"env" mapstructure:"env"`
	ArchiveDir string `yaml:"archive_dir" mapstructure:"archive_dir"`
	Editor     string `yaml:"editor" mapstructure:"editor"`
	Theme      string `yaml:"theme" mapstructure:"theme"`
	Debug      bool   `yaml:"debug" mapstructure:"debug"`
}

// DefaultDir returns <user config dir>/laydown, honoring LAYDOWN_CONFIG_DIR.
func DefaultDir() (string, error) {
	if d := strings.TrimSpace(os.Getenv("LAYDOWN_CONFIG_DIR")); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, "laydown"), nil
}

// Load reads dir/config.yaml when present and applies LAYDOWN_* env overrides.
// An empty dir means DefaultDir.
func Load(dir string) (*Config, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LAYDOWN")
	v.AutomaticEnv()
	v.SetDefault("env", EnvProd)
	v.SetDefault("archive_dir", "")
	v.SetDefault("editor", "")
	v.SetDefault("theme", "classic")
	v.SetDefault("debug", false)

	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Dir = dir
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	switch c.Env {
	case "", EnvProd:
		c.Env = EnvProd
	case EnvTest:
	default:
		return fmt.Errorf("config: unknown env %q (want %s or %s)", c.Env, EnvProd, EnvTest)
	}
	if strings.TrimSpace(c.ArchiveDir) == "" {
		c.ArchiveDir = filepath.Join(c.Dir, "archive")
	}
	if strings.TrimSpace(c.Editor) == "" {
		c.Editor = DefaultEditor()
	}
	return nil
}

// Apply layers command-line overrides on top of the loaded values. Empty
// strings leave the current value alone.
func (c *Config) Apply(env, theme string, debug bool) error {
	if strings.TrimSpace(env) != "" {
		c.Env = env
	}
	if strings.TrimSpace(theme) != "" {
		c.Theme = theme
	}
	c.Debug = c.Debug || debug
	return c.normalize()
}

// DefaultEditor follows $VISUAL, then $EDITOR, then vi.
func DefaultEditor() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// DataFile is the record file for the configured environment.
func (c *Config) DataFile() string {
	if c.Env == EnvTest {
		return filepath.Join(c.Dir, "test_laydown.yaml")
	}
	return filepath.Join(c.Dir, "laydown.yaml")
}

// Ensure creates the config directory.
func (c *Config) Ensure() error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", c.Dir, err)
	}
	return nil
}
