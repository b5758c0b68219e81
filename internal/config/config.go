package config

import (
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Node     NodeConfig     `yaml:"node"`
	Log      LogConfig      `yaml:"log"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Capture  CaptureConfig  `yaml:"capture"`
}

// NodeConfig controls how nodes reconcile their state with the controller
type NodeConfig struct {
	// AutoUpdate is enabled when an event subscription keeps nodes current.
	// Commands then trust their expected level instead of polling.
	AutoUpdate  bool     `yaml:"auto_update"`
	SettleDelay Duration `yaml:"settle_delay"` // Pause between a command and the follow-up poll (default: 500ms)
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Colors bool   `yaml:"colors"`
	JSON   bool   `yaml:"json"`
}

// GetLevel returns the configured level, lower-cased
func (c *LogConfig) GetLevel() string {
	return strings.ToLower(c.Level)
}

// EventBusConfig contains event bus settings
type EventBusConfig struct {
	Workers   int `yaml:"workers"`    // Number of worker goroutines (default: 4)
	QueueSize int `yaml:"queue_size"` // Event queue size (default: 100)
}

// GetWorkers returns worker count with default
func (c *EventBusConfig) GetWorkers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

// GetQueueSize returns queue size with default
func (c *EventBusConfig) GetQueueSize() int {
	if c.QueueSize <= 0 {
		return 100
	}
	return c.QueueSize
}

// CaptureConfig points at a directory of captured controller responses
type CaptureConfig struct {
	Dir string `yaml:"dir"`
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := expandEnvVars(string(data))

	cfg := Config{Log: LogConfig{Colors: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.setDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := Config{Log: LogConfig{Colors: true}}
	cfg.setDefaults()
	return &cfg
}

func (cfg *Config) setDefaults() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	// Node defaults
	if cfg.Node.SettleDelay == 0 {
		cfg.Node.SettleDelay = Duration(500 * time.Millisecond)
	}

	// Event bus defaults
	if cfg.EventBus.Workers == 0 {
		cfg.EventBus.Workers = 4
	}
	if cfg.EventBus.QueueSize == 0 {
		cfg.EventBus.QueueSize = 100
	}

	if cfg.Capture.Dir == "" {
		cfg.Capture.Dir = "./captures"
	}
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
