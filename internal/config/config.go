package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Fetch     FetchConfig     `yaml:"fetch" envconfig:"FETCH"`
	Sentiment SentimentConfig `yaml:"sentiment" envconfig:"SENTIMENT"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration for the signals API.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/edgarcli.log"`
}

// PipelineConfig controls batch extraction behavior.
type PipelineConfig struct {
	// Parallelism bounds concurrent document extraction. 1 keeps the
	// reference sequential behavior; scoring is always performed after
	// the whole batch regardless.
	Parallelism            int     `yaml:"parallelism" envconfig:"PARALLELISM" default:"1"`
	HighConvictionCutoff   float64 `yaml:"high_conviction_cutoff" envconfig:"HIGH_CONVICTION_CUTOFF" default:"4.0"`
	MinFilingSizeBytes     int64   `yaml:"min_filing_size_bytes" envconfig:"MIN_FILING_SIZE_BYTES" default:"100"`
	SummaryTopTransactions int     `yaml:"summary_top_transactions" envconfig:"SUMMARY_TOP_TRANSACTIONS" default:"10"`
}

// FetchConfig controls the EDGAR document fetcher.
type FetchConfig struct {
	// UserAgent must identify the operator; the SEC rejects anonymous
	// clients.
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"edgarcli admin@example.com"`
	FallbackUserAgent string        `yaml:"fallback_user_agent" envconfig:"FALLBACK_USER_AGENT" default:"Go-http-client (research use) admin@example.com"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
	// RequestsPerSecond stays at or under the SEC's published 10 req/s cap.
	RequestsPerSecond float64 `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" default:"10"`
}

// SentimentConfig controls the transcript correlator.
type SentimentConfig struct {
	// WindowDays is the half-width of the join window around an
	// earnings call, in days.
	WindowDays int `yaml:"window_days" envconfig:"WINDOW_DAYS" default:"30"`
}

// PathsConfig contains file system path configuration.
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables (prefix EDGAR)
// and merges an optional YAML config file on top of the defaults.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EDGAR", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func configFilePath() string {
	if path := os.Getenv("EDGAR_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Pipeline.Parallelism < 1 {
		return fmt.Errorf("pipeline parallelism must be at least 1, got %d", c.Pipeline.Parallelism)
	}
	if c.Pipeline.HighConvictionCutoff < 0 || c.Pipeline.HighConvictionCutoff > 5 {
		return fmt.Errorf("high conviction cutoff must be within the 0-5 scale, got %g", c.Pipeline.HighConvictionCutoff)
	}
	if c.Fetch.RequestsPerSecond <= 0 || c.Fetch.RequestsPerSecond > 10 {
		return fmt.Errorf("fetch rate must be in (0, 10] requests per second, got %g", c.Fetch.RequestsPerSecond)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
