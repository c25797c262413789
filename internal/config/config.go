package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	S3      S3Config
	Report  ReportConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// S3Config holds the object storage used to archive batch reports. An empty
// bucket disables archiving.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether a bucket is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// ReportConfig bounds batch uploads and picks the default report format.
type ReportConfig struct {
	MaxUploadSizeMB int64  `mapstructure:"max_upload_size_mb"`
	MaxRows         int    `mapstructure:"max_rows"`
	DefaultFormat   string `mapstructure:"default_format"`
	Locale          string `mapstructure:"locale"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Load reads configuration from environment variables with the BRFISCAL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BRFISCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// S3 defaults; archiving stays off until a bucket is set
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "reports")
	v.SetDefault("s3.presign_expiry", 3600)

	// Report defaults
	v.SetDefault("report.max_upload_size_mb", 10)
	v.SetDefault("report.max_rows", 10000)
	v.SetDefault("report.default_format", "xlsx")
	v.SetDefault("report.locale", "pt-BR")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "BRFISCAL_SERVER_PORT",
		"server.read_timeout":       "BRFISCAL_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "BRFISCAL_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":   "BRFISCAL_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":        "BRFISCAL_SERVER_ENVIRONMENT",
		"log.level":                 "BRFISCAL_LOG_LEVEL",
		"log.format":                "BRFISCAL_LOG_FORMAT",
		"cors.allowed_origins":      "BRFISCAL_CORS_ALLOWED_ORIGINS",
		"s3.region":                 "BRFISCAL_S3_REGION",
		"s3.bucket":                 "BRFISCAL_S3_BUCKET",
		"s3.endpoint":               "BRFISCAL_S3_ENDPOINT",
		"s3.access_key":             "BRFISCAL_S3_ACCESS_KEY",
		"s3.secret_key":             "BRFISCAL_S3_SECRET_KEY",
		"s3.prefix":                 "BRFISCAL_S3_PREFIX",
		"s3.presign_expiry":         "BRFISCAL_S3_PRESIGN_EXPIRY",
		"report.max_upload_size_mb": "BRFISCAL_REPORT_MAX_UPLOAD_SIZE_MB",
		"report.max_rows":           "BRFISCAL_REPORT_MAX_ROWS",
		"report.default_format":     "BRFISCAL_REPORT_DEFAULT_FORMAT",
		"report.locale":             "BRFISCAL_REPORT_LOCALE",
		"metrics.enabled":           "BRFISCAL_METRICS_ENABLED",
		"metrics.path":              "BRFISCAL_METRICS_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BRFISCAL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BRFISCAL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		Prefix:        strings.Trim(v.GetString("s3.prefix"), "/"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Report = ReportConfig{
		MaxUploadSizeMB: v.GetInt64("report.max_upload_size_mb"),
		MaxRows:         v.GetInt("report.max_rows"),
		DefaultFormat:   strings.ToLower(v.GetString("report.default_format")),
		Locale:          v.GetString("report.locale"),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
