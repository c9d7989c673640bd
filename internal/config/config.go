package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"pkg.jsn.cam/lorem/pkg/lorem"
)

// DefaultPath is where the CLI looks for a config file unless --config is given.
const DefaultPath = "lorem.yaml"

// Config holds all lorem configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Store      StoreConfig      `yaml:"store"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DefaultMaxTokens bounds the words one server request may draw.
const DefaultMaxTokens = 1_000_000

// ServerConfig configures `lorem serve`.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// MaxCount rejects batch requests asking for more items.
	MaxCount int `yaml:"max_count"`
	// MaxTokens rejects batch requests that may draw more words in total.
	MaxTokens int `yaml:"max_tokens"`
	// Watch reloads generation settings when the config file changes.
	Watch bool `yaml:"watch"`
}

// GenerationConfig mirrors lorem.Values. An empty pool keeps the built-in one.
type GenerationConfig struct {
	Pool               []string    `yaml:"pool,omitempty"`
	WordRange          lorem.Range `yaml:"word_range"`
	CommaRange         lorem.Range `yaml:"comma_range"`
	SentenceRange      lorem.Range `yaml:"sentence_range"`
	Separator          string      `yaml:"separator"`
	ParagraphSeparator string      `yaml:"paragraph_separator"`
}

// StoreConfig selects the vocabulary backend.
type StoreConfig struct {
	Backend string `yaml:"backend"` // bolt, memory
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	v := lorem.DefaultValues()
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8077",
			ReadTimeout:     "10s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "5s",
			MaxCount:        10000,
			MaxTokens:       DefaultMaxTokens,
			Watch:           true,
		},
		Generation: GenerationConfig{
			WordRange:          v.WordRange,
			CommaRange:         v.CommaRange,
			SentenceRange:      v.SentenceRange,
			Separator:          v.Separator,
			ParagraphSeparator: v.ParagraphSeparator,
		},
		Store: StoreConfig{
			Backend: "bolt",
			Path:    filepath.Join(".lorem", "vocab.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies LOREM_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv("LOREM_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if db := os.Getenv("LOREM_DB"); db != "" {
		c.Store.Path = db
		if db == "memory" || db == ":memory:" {
			c.Store.Backend = "memory"
		}
	}
	if level := os.Getenv("LOREM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if n := os.Getenv("LOREM_MAX_COUNT"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil {
			return fmt.Errorf("invalid LOREM_MAX_COUNT %q: %w", n, err)
		}
		c.Server.MaxCount = v
	}
	if n := os.Getenv("LOREM_MAX_TOKENS"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil {
			return fmt.Errorf("invalid LOREM_MAX_TOKENS %q: %w", n, err)
		}
		c.Server.MaxTokens = v
	}
	return nil
}

// Validate checks ranges, durations, the backend and the log level.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is empty")
	}
	if c.Server.MaxCount < 1 {
		return fmt.Errorf("server.max_count must be positive, got %d", c.Server.MaxCount)
	}
	if c.Server.MaxTokens < 1 {
		return fmt.Errorf("server.max_tokens must be positive, got %d", c.Server.MaxTokens)
	}
	for name, d := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if err := c.Values().Validate(); err != nil {
		return fmt.Errorf("invalid generation settings: %w", err)
	}

	switch c.Store.Backend {
	case "bolt":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the bolt backend")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid store.backend: %s (valid: bolt, memory)", c.Store.Backend)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	return nil
}

// Values converts the generation section for lorem.Defaults.Apply.
func (c *Config) Values() lorem.Values {
	v := lorem.DefaultValues()
	if len(c.Generation.Pool) > 0 {
		v.Pool = append([]string(nil), c.Generation.Pool...)
	}
	v.WordRange = c.Generation.WordRange
	v.CommaRange = c.Generation.CommaRange
	v.SentenceRange = c.Generation.SentenceRange
	v.Separator = c.Generation.Separator
	v.ParagraphSeparator = c.Generation.ParagraphSeparator
	return v
}

// StorePath returns the path handed to store.Open.
func (c *Config) StorePath() string {
	if c.Store.Backend == "memory" {
		return ":memory:"
	}
	return c.Store.Path
}

// LogLevel returns the parsed level, info when invalid.
func (c *Config) LogLevel() zapcore.Level {
	l, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// ReadTimeout returns the server read timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 10*time.Second)
}

// WriteTimeout returns the server write timeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 30*time.Second)
}

// ShutdownTimeout bounds graceful shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
