package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Analysis AnalysisConfig `yaml:"analysis"`
	View     ViewConfig     `yaml:"view"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Trends   TrendsConfig   `yaml:"trends"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Addr returns host:port for the listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.GetHost(), c.Port)
}

// Result source kinds.
const (
	SourceStatic = "static" // fixed demo payload, no network
	SourceRemote = "remote" // POST to an external analysis endpoint
	SourceLocal  = "local"  // in-process analysis orchestrator
)

// AnalysisConfig selects where analysis results come from and tunes the
// in-process chains.
type AnalysisConfig struct {
	Source         string  `yaml:"source"`
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	CatalogRetries int     `yaml:"catalog_retries"`
	LatencyScale   float64 `yaml:"latency_scale"` // multiplier on simulated chain latency; unset means 1
}

// Timeout returns the configured timeout as a duration
func (c AnalysisConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ViewConfig holds the cosmetic timing of the analysis screen.
type ViewConfig struct {
	StageCount      int `yaml:"stage_count"`
	StageIntervalMS int `yaml:"stage_interval_ms"`
	MinDisplayMS    int `yaml:"min_display_ms"`
	NotificationMS  int `yaml:"notification_ms"`
}

// StageInterval returns the delay between stage indicators.
func (c ViewConfig) StageInterval() time.Duration {
	return time.Duration(c.StageIntervalMS) * time.Millisecond
}

// MinDisplay returns the floor before results are shown.
func (c ViewConfig) MinDisplay() time.Duration {
	return time.Duration(c.MinDisplayMS) * time.Millisecond
}

// NotificationTTL returns how long a notification stays visible.
func (c ViewConfig) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationMS) * time.Millisecond
}

// Catalog source kinds.
const (
	CatalogBuiltin = "builtin"
	CatalogFile    = "file"
	CatalogS3      = "s3"
	CatalogRemote  = "remote" // GET {analysis.base_url}/api/demo-data
)

// CatalogConfig says where the sample campaigns for the demo button live.
type CatalogConfig struct {
	Source    string `yaml:"source"`
	Path      string `yaml:"path"`
	S3Bucket  string `yaml:"s3_bucket"`
	S3Key     string `yaml:"s3_key"`
	AWSRegion string `yaml:"aws_region"`
}

// TrendsConfig holds the optional headline feed for the trend chain.
type TrendsConfig struct {
	FeedURL        string `yaml:"feed_url"`
	MaxItems       int    `yaml:"max_items"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c TrendsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig enables the cross-replica analysis lock.
type RedisConfig struct {
	URL            string `yaml:"url"`
	LockTTLSeconds int    `yaml:"lock_ttl_seconds"`
}

// LockTTL returns the analysis lock expiry.
func (c RedisConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// SessionConfig holds browser session settings.
type SessionConfig struct {
	CookieName         string `yaml:"cookie_name"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns how long an unused session is kept.
func (c SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, as if an
// empty file had been loaded.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:8000"}
	}
	if cfg.Analysis.Source == "" {
		cfg.Analysis.Source = SourceLocal
	}
	if cfg.Analysis.TimeoutSeconds == 0 {
		cfg.Analysis.TimeoutSeconds = 30
	}
	if cfg.Analysis.CatalogRetries == 0 {
		cfg.Analysis.CatalogRetries = 3
	}
	if cfg.Analysis.LatencyScale == 0 {
		cfg.Analysis.LatencyScale = 1
	}
	if cfg.View.StageCount == 0 {
		cfg.View.StageCount = 4
	}
	if cfg.View.StageIntervalMS == 0 {
		cfg.View.StageIntervalMS = 700
	}
	if cfg.View.MinDisplayMS == 0 {
		cfg.View.MinDisplayMS = 3000
	}
	if cfg.View.NotificationMS == 0 {
		cfg.View.NotificationMS = 3000
	}
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogBuiltin
		if cfg.Analysis.Source == SourceRemote {
			cfg.Catalog.Source = CatalogRemote
		}
	}
	if cfg.Catalog.AWSRegion == "" {
		cfg.Catalog.AWSRegion = "us-east-1"
	}
	if cfg.Trends.MaxItems == 0 {
		cfg.Trends.MaxItems = 2
	}
	if cfg.Trends.TimeoutSeconds == 0 {
		cfg.Trends.TimeoutSeconds = 5
	}
	if cfg.Redis.LockTTLSeconds == 0 {
		cfg.Redis.LockTTLSeconds = 60
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "campaign_session"
	}
	if cfg.Session.IdleTimeoutMinutes == 0 {
		cfg.Session.IdleTimeoutMinutes = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func (cfg *Config) validate() error {
	switch cfg.Analysis.Source {
	case SourceStatic, SourceLocal:
	case SourceRemote:
		if cfg.Analysis.BaseURL == "" {
			return fmt.Errorf("analysis.base_url is required for source %q", SourceRemote)
		}
	default:
		return fmt.Errorf("unknown analysis.source %q", cfg.Analysis.Source)
	}

	switch cfg.Catalog.Source {
	case CatalogBuiltin:
	case CatalogFile:
		if cfg.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source %q", CatalogFile)
		}
	case CatalogS3:
		if cfg.Catalog.S3Bucket == "" || cfg.Catalog.S3Key == "" {
			return fmt.Errorf("catalog.s3_bucket and catalog.s3_key are required for source %q", CatalogS3)
		}
	case CatalogRemote:
		if cfg.Analysis.Source != SourceRemote {
			return fmt.Errorf("catalog.source %q requires analysis.source %q", CatalogRemote, SourceRemote)
		}
	default:
		return fmt.Errorf("unknown catalog.source %q", cfg.Catalog.Source)
	}

	if cfg.View.StageCount < 0 || cfg.View.StageIntervalMS < 0 || cfg.View.MinDisplayMS < 0 {
		return fmt.Errorf("view timings must not be negative")
	}
	return nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars.
// An empty path skips the file and starts from defaults.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("ANALYSIS_SOURCE"); v != "" {
		cfg.Analysis.Source = v
	}
	if v := os.Getenv("ANALYSIS_BASE_URL"); v != "" {
		cfg.Analysis.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("TRENDS_FEED_URL"); v != "" {
		cfg.Trends.FeedURL = v
	}
	if v := os.Getenv("CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := os.Getenv("CATALOG_S3_BUCKET"); v != "" {
		cfg.Catalog.S3Bucket = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
