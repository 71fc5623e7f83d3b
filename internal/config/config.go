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
	Gemini  GeminiConfig
	Storage StorageConfig
	Store   StoreConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GeminiConfig holds settings for the Gemini model client.
type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// StorageConfig selects and configures the object storage backend that
// holds source documents and configuration documents.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"` // "local" or "s3"
	LocalRoot string `mapstructure:"local_root"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// StoreConfig holds the object keys of the configuration documents.
type StoreConfig struct {
	GlobalKey       string `mapstructure:"global_key"`
	OverridesPrefix string `mapstructure:"overrides_prefix"`
	DocumentsPrefix string `mapstructure:"documents_prefix"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the INVANA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout_secs", 120)

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_root", "data")
	v.SetDefault("storage.bucket", "invana-documents")
	v.SetDefault("storage.region", "eu-central-1")
	v.SetDefault("storage.endpoint", "")

	// Store defaults
	v.SetDefault("store.global_key", "config/extraction.json")
	v.SetDefault("store.overrides_prefix", "config/clients/")
	v.SetDefault("store.documents_prefix", "documents/")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "INVANA_SERVER_PORT",
		"server.read_timeout":    "INVANA_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "INVANA_SERVER_WRITE_TIMEOUT",
		"server.environment":     "INVANA_SERVER_ENVIRONMENT",
		"log.level":              "INVANA_LOG_LEVEL",
		"log.format":             "INVANA_LOG_FORMAT",
		"gemini.api_key":         "INVANA_GEMINI_API_KEY",
		"gemini.model":           "INVANA_GEMINI_MODEL",
		"gemini.timeout_secs":    "INVANA_GEMINI_TIMEOUT_SECS",
		"storage.backend":        "INVANA_STORAGE_BACKEND",
		"storage.local_root":     "INVANA_STORAGE_LOCAL_ROOT",
		"storage.bucket":         "INVANA_STORAGE_BUCKET",
		"storage.region":         "INVANA_STORAGE_REGION",
		"storage.endpoint":       "INVANA_STORAGE_ENDPOINT",
		"storage.access_key":     "INVANA_STORAGE_ACCESS_KEY",
		"storage.secret_key":     "INVANA_STORAGE_SECRET_KEY",
		"store.global_key":       "INVANA_STORE_GLOBAL_KEY",
		"store.overrides_prefix": "INVANA_STORE_OVERRIDES_PREFIX",
		"store.documents_prefix": "INVANA_STORE_DOCUMENTS_PREFIX",
		"cors.allowed_origins":   "INVANA_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVANA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVANA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Gemini = GeminiConfig{
		APIKey:      v.GetString("gemini.api_key"),
		Model:       v.GetString("gemini.model"),
		TimeoutSecs: v.GetInt("gemini.timeout_secs"),
	}
	cfg.Storage = StorageConfig{
		Backend:   v.GetString("storage.backend"),
		LocalRoot: v.GetString("storage.local_root"),
		Bucket:    v.GetString("storage.bucket"),
		Region:    v.GetString("storage.region"),
		Endpoint:  v.GetString("storage.endpoint"),
		AccessKey: v.GetString("storage.access_key"),
		SecretKey: v.GetString("storage.secret_key"),
	}
	cfg.Store = StoreConfig{
		GlobalKey:       v.GetString("store.global_key"),
		OverridesPrefix: v.GetString("store.overrides_prefix"),
		DocumentsPrefix: v.GetString("store.documents_prefix"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
