package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
	Email    EmailConfig
	Archive  ArchiveConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UploadConfig holds upload handling settings.
type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LLMProviderConfig holds settings for a single document-understanding provider.
type LLMProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds document-understanding capability settings with
// multi-provider fallback support.
type LLMConfig struct {
	Primary   LLMProviderConfig `mapstructure:"primary"`
	Secondary LLMProviderConfig `mapstructure:"secondary"`
	Tertiary  LLMProviderConfig `mapstructure:"tertiary"`
}

// Providers returns the configured providers in fallback order.
func (l *LLMConfig) Providers() []*LLMProviderConfig {
	var out []*LLMProviderConfig
	for _, p := range []LLMProviderConfig{l.Primary, l.Secondary, l.Tertiary} {
		if p.Provider != "" {
			cp := p
			out = append(out, &cp)
		}
	}
	return out
}

// PipelineConfig holds batch processing settings.
type PipelineConfig struct {
	Concurrency  int           `mapstructure:"concurrency"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// EmailConfig holds report delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ArchiveConfig holds optional S3 archiving settings for processed uploads.
// Archiving is disabled when Bucket is empty.
type ArchiveConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the INVOICEAGENT_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICEAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "5m")
	v.SetDefault("server.environment", "development")

	// Upload defaults
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_file_size_mb", 16)

	// LLM provider defaults
	v.SetDefault("llm.primary.provider", "openai")
	v.SetDefault("llm.primary.api_key", "")
	v.SetDefault("llm.primary.default_model", "")
	v.SetDefault("llm.primary.timeout_secs", 120)
	v.SetDefault("llm.secondary.provider", "")
	v.SetDefault("llm.secondary.api_key", "")
	v.SetDefault("llm.secondary.default_model", "")
	v.SetDefault("llm.secondary.timeout_secs", 120)
	v.SetDefault("llm.tertiary.provider", "")
	v.SetDefault("llm.tertiary.api_key", "")
	v.SetDefault("llm.tertiary.default_model", "")
	v.SetDefault("llm.tertiary.timeout_secs", 120)

	// Pipeline defaults
	v.SetDefault("pipeline.concurrency", 4)
	v.SetDefault("pipeline.batch_timeout", "4m")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@invoiceagent.local")
	v.SetDefault("email.from_name", "Invoice Agent")

	// Archive defaults (disabled unless a bucket is set)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.access_key", "")
	v.SetDefault("archive.secret_key", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "INVOICEAGENT_SERVER_PORT",
		"server.read_timeout":           "INVOICEAGENT_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "INVOICEAGENT_SERVER_WRITE_TIMEOUT",
		"server.environment":            "INVOICEAGENT_SERVER_ENVIRONMENT",
		"upload.dir":                    "INVOICEAGENT_UPLOAD_DIR",
		"upload.max_file_size_mb":       "INVOICEAGENT_UPLOAD_MAX_FILE_SIZE_MB",
		"llm.primary.provider":          "INVOICEAGENT_LLM_PRIMARY_PROVIDER",
		"llm.primary.api_key":           "INVOICEAGENT_LLM_PRIMARY_API_KEY",
		"llm.primary.default_model":     "INVOICEAGENT_LLM_PRIMARY_DEFAULT_MODEL",
		"llm.primary.timeout_secs":      "INVOICEAGENT_LLM_PRIMARY_TIMEOUT_SECS",
		"llm.secondary.provider":        "INVOICEAGENT_LLM_SECONDARY_PROVIDER",
		"llm.secondary.api_key":         "INVOICEAGENT_LLM_SECONDARY_API_KEY",
		"llm.secondary.default_model":   "INVOICEAGENT_LLM_SECONDARY_DEFAULT_MODEL",
		"llm.secondary.timeout_secs":    "INVOICEAGENT_LLM_SECONDARY_TIMEOUT_SECS",
		"llm.tertiary.provider":         "INVOICEAGENT_LLM_TERTIARY_PROVIDER",
		"llm.tertiary.api_key":          "INVOICEAGENT_LLM_TERTIARY_API_KEY",
		"llm.tertiary.default_model":    "INVOICEAGENT_LLM_TERTIARY_DEFAULT_MODEL",
		"llm.tertiary.timeout_secs":     "INVOICEAGENT_LLM_TERTIARY_TIMEOUT_SECS",
		"pipeline.concurrency":          "INVOICEAGENT_PIPELINE_CONCURRENCY",
		"pipeline.batch_timeout":        "INVOICEAGENT_PIPELINE_BATCH_TIMEOUT",
		"email.provider":                "INVOICEAGENT_EMAIL_PROVIDER",
		"email.region":                  "INVOICEAGENT_EMAIL_REGION",
		"email.from_address":            "INVOICEAGENT_EMAIL_FROM_ADDRESS",
		"email.from_name":               "INVOICEAGENT_EMAIL_FROM_NAME",
		"archive.region":                "INVOICEAGENT_ARCHIVE_REGION",
		"archive.bucket":                "INVOICEAGENT_ARCHIVE_BUCKET",
		"archive.endpoint":              "INVOICEAGENT_ARCHIVE_ENDPOINT",
		"archive.access_key":            "INVOICEAGENT_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":            "INVOICEAGENT_ARCHIVE_SECRET_KEY",
		"cors.allowed_origins":          "INVOICEAGENT_CORS_ALLOWED_ORIGINS",
		"log.level":                     "INVOICEAGENT_LOG_LEVEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// INVOICEAGENT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICEAGENT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upload = UploadConfig{
		Dir:           v.GetString("upload.dir"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.LLM = LLMConfig{
		Primary: LLMProviderConfig{
			Provider:     v.GetString("llm.primary.provider"),
			APIKey:       v.GetString("llm.primary.api_key"),
			DefaultModel: v.GetString("llm.primary.default_model"),
			TimeoutSecs:  v.GetInt("llm.primary.timeout_secs"),
		},
		Secondary: LLMProviderConfig{
			Provider:     v.GetString("llm.secondary.provider"),
			APIKey:       v.GetString("llm.secondary.api_key"),
			DefaultModel: v.GetString("llm.secondary.default_model"),
			TimeoutSecs:  v.GetInt("llm.secondary.timeout_secs"),
		},
		Tertiary: LLMProviderConfig{
			Provider:     v.GetString("llm.tertiary.provider"),
			APIKey:       v.GetString("llm.tertiary.api_key"),
			DefaultModel: v.GetString("llm.tertiary.default_model"),
			TimeoutSecs:  v.GetInt("llm.tertiary.timeout_secs"),
		},
	}
	cfg.Pipeline = PipelineConfig{
		Concurrency:  v.GetInt("pipeline.concurrency"),
		BatchTimeout: v.GetDuration("pipeline.batch_timeout"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Archive = ArchiveConfig{
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}

	return cfg, nil
}
