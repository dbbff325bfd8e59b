package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

// Output encodings understood by the command line tool.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// Config holds the edkey configuration loaded from TOML.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name such as "debug" or "warn".
	Level string `toml:"level"`
}

// OutputConfig controls how keys and signatures are printed.
type OutputConfig struct {
	Encoding string `toml:"encoding"`
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Encoding: EncodingHex,
		},
	}
}

// DefaultConfigPath returns the XDG default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "edkey", "config.toml")
}

// Load reads the configuration from the given path (TOML).
// If path is empty, it uses the XDG default. Missing file returns defaults.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}

	if info, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	} else if info.IsDir() {
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that every setting holds a known value.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	switch c.Output.Encoding {
	case EncodingHex, EncodingBase64:
	default:
		return fmt.Errorf("unknown output encoding %q", c.Output.Encoding)
	}

	return nil
}
