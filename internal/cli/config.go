package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ufmtooling/shapecanvas/pkg/pipeline"
)

// Config is the user configuration file (~/.config/shapecanvas/config.toml).
// Every field is optional; command-line flags override configured values.
//
// Example:
//
//	strategy = "hierarchical"
//	padding = 30.0
//	formats = ["svg", "json"]
//
//	[server]
//	addr = ":9000"
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Strategy     string   `toml:"strategy"`
	Padding      float64  `toml:"padding"`
	Margin       float64  `toml:"margin"`
	CanvasWidth  float64  `toml:"canvas_width"`
	CanvasHeight float64  `toml:"canvas_height"`
	Formats      []string `toml:"formats"`
	CacheDir     string   `toml:"cache_dir"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	RedisAddr     string `toml:"redis_addr"`
}

// DefaultServerAddr is the listen address when neither flag nor config sets one.
const DefaultServerAddr = ":8080"

// LoadConfig reads and parses a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefaultConfig loads the user's configuration file, returning an empty
// configuration when the file is absent or unreadable. Configuration is a
// convenience layer; a broken file must not stop the CLI.
func LoadDefaultConfig() *Config {
	path, err := configPath()
	if err != nil {
		return &Config{}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return &Config{}
	}
	return cfg
}

// configPath returns the configuration file path using the XDG standard
// (~/.config/shapecanvas/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// applyDefaults seeds pipeline options from the configuration. Flags bind to
// the seeded fields afterwards, so explicit flags still win.
func (cfg *Config) applyDefaults(opts *pipeline.Options) {
	if cfg == nil {
		return
	}
	if cfg.Strategy != "" {
		opts.Strategy = cfg.Strategy
	}
	if cfg.Padding > 0 {
		opts.Padding = cfg.Padding
	}
	if cfg.Margin > 0 {
		opts.MarginTop = cfg.Margin
		opts.MarginBottom = cfg.Margin
		opts.MarginLeft = cfg.Margin
		opts.MarginRight = cfg.Margin
	}
	if cfg.CanvasWidth > 0 && cfg.CanvasHeight > 0 {
		opts.CanvasWidth = cfg.CanvasWidth
		opts.CanvasHeight = cfg.CanvasHeight
	}
	if len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	}
}

// serverAddr resolves the listen address from flag, config, and default.
func (cfg *Config) serverAddr(flagAddr string) string {
	if flagAddr != "" {
		return flagAddr
	}
	if cfg != nil && cfg.Server.Addr != "" {
		return cfg.Server.Addr
	}
	return DefaultServerAddr
}
