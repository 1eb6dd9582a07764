package config

import "time"

// Config holds runtime settings for the registration CLI.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DraftDBPath    string

	// UploadBackend is "api" (school API) or "s3" (direct bucket upload).
	UploadBackend  string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	// MaxAttachmentSize is in bytes.
	MaxAttachmentSize int64

	// LogBackend is "slog" or "zap".
	LogBackend  string
	LogLevel    string
	Environment string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://main-website-api.arabicglobalschool.com/api"
	c.RequestTimeout = 25 * time.Second
	c.DraftDBPath = "registration.db"
	c.UploadBackend = "api"
	c.S3Region = "us-east-1"
	c.MaxAttachmentSize = 5 << 20
	c.LogBackend = "slog"
	c.LogLevel = "warn"
	c.Environment = "production"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
