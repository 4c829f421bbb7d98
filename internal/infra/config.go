package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no -config flag is given. A missing file at
// the default path is not an error; the built-in defaults apply.
const DefaultConfigPath = "configs/config.yaml"

// Config holds everything around the replay core: where reports go, whether
// the SQLite archive and the websocket monitor are on, logging, profiling.
// The capture file itself is a CLI argument, not config.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Report struct {
		// Dir receives the Stock_VWAP_HH.csv files. Defaults to the working
		// directory.
		Dir string `yaml:"dir"`
	} `yaml:"report"`

	Archive struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"archive"`

	Monitor struct {
		Enabled            bool   `yaml:"enabled"`
		URL                string `yaml:"url"`
		HandshakeTimeoutMS int    `yaml:"handshake_timeout_ms"`
	} `yaml:"monitor"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`

	Profiling struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"profiling"`
}

// LoadConfig reads and parses the YAML config at path. A missing file at the
// default path yields the built-in defaults; an explicitly named file must
// exist.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultConfigPath {
			cfg.setDefaults()
			return &cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.setDefaults()
	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.App.Name == "" {
		c.App.Name = "ItchGo"
	}
	if c.Report.Dir == "" {
		c.Report.Dir = "."
	}
	if c.Archive.Path == "" {
		c.Archive.Path = "vwap_archive.db"
	}
	if c.Monitor.HandshakeTimeoutMS == 0 {
		c.Monitor.HandshakeTimeoutMS = 10000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Profiling.Addr == "" {
		c.Profiling.Addr = "localhost:6060"
	}
}

// overrideWithEnv lets deployment scripts redirect outputs without editing
// the config file.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("ITCHGO_REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("ITCHGO_ARCHIVE_PATH"); v != "" {
		cfg.Archive.Path = v
	}
	if v := os.Getenv("ITCHGO_MONITOR_URL"); v != "" {
		cfg.Monitor.URL = v
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Report.Dir == "" {
		return fmt.Errorf("report.dir must not be empty")
	}

	if c.Monitor.Enabled {
		if c.Monitor.URL == "" || (!strings.HasPrefix(c.Monitor.URL, "ws://") && !strings.HasPrefix(c.Monitor.URL, "wss://")) {
			return fmt.Errorf("invalid monitor URL: %s", c.Monitor.URL)
		}
	}

	if c.Archive.Enabled && c.Archive.Path == "" {
		return fmt.Errorf("archive.path must not be empty when archive is enabled")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	return nil
}
