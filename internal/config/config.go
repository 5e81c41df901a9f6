package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all switchlogd configuration.
type Config struct {
	Listen  ListenConfig  `yaml:"listen"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ListenConfig holds the capture socket settings.
type ListenConfig struct {
	Addr string `yaml:"addr"` // UDP listen address, e.g. ":514"
}

// OutputConfig holds day-file settings.
type OutputConfig struct {
	Dir             string `yaml:"dir"`               // directory for per-day JSONL files
	UTCOffsetHours  int    `yaml:"utc_offset_hours"`  // fixed offset used to name day files
	CompressRotated bool   `yaml:"compress_rotated"`  // gzip closed day files
	Echo            bool   `yaml:"echo"`              // also print events to stdout
}

// LoggingConfig holds daemon log settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Listen:  ListenConfig{Addr: ":514"},
		Output:  OutputConfig{Dir: "switch_logs", Echo: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration in three layers: defaults, then the
// optional YAML file at path, then SWITCHLOGD_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Listen.Addr = getenv("SWITCHLOGD_LISTEN_ADDR", cfg.Listen.Addr)
	cfg.Output.Dir = getenv("SWITCHLOGD_DIR", cfg.Output.Dir)
	cfg.Output.UTCOffsetHours = getenvInt("SWITCHLOGD_UTC_OFFSET_HOURS", cfg.Output.UTCOffsetHours)
	cfg.Output.CompressRotated = getenvBool("SWITCHLOGD_COMPRESS_ROTATED", cfg.Output.CompressRotated)
	cfg.Output.Echo = getenvBool("SWITCHLOGD_ECHO", cfg.Output.Echo)
	cfg.Logging.Level = getenv("SWITCHLOGD_LOG_LEVEL", cfg.Logging.Level)
	return cfg, nil
}

// Location returns the fixed zone used for naming day files.
func (c Config) Location() *time.Location {
	if c.Output.UTCOffsetHours == 0 {
		return time.UTC
	}
	name := fmt.Sprintf("UTC%+d", c.Output.UTCOffsetHours)
	return time.FixedZone(name, c.Output.UTCOffsetHours*3600)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
