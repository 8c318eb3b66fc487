package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// MongoDB
	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Object storage
	StorageDriver      string `mapstructure:"STORAGE_DRIVER"` // local | s3
	S3Region           string `mapstructure:"S3_REGION"`
	S3Bucket           string `mapstructure:"S3_BUCKET"`
	S3PublicBaseURL    string `mapstructure:"S3_PUBLIC_BASE_URL"`
	LocalUploadDir     string `mapstructure:"LOCAL_UPLOAD_DIR"`
	LocalUploadURLBase string `mapstructure:"LOCAL_UPLOAD_URL_PREFIX"`

	// Admin gate — single shared credential pair checked by the Basic-Auth
	// middleware on mutating routes. When ADMIN_PASSWORD_HASH is set it takes
	// precedence over the plaintext ADMIN_PASSWORD (use cmd/genhash).
	AdminUsername     string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword     string `mapstructure:"ADMIN_PASSWORD"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Site
	PublicBaseURL  string `mapstructure:"PUBLIC_BASE_URL"`
	WhatsAppNumber string `mapstructure:"WHATSAPP_NUMBER"`

	// Placeholder sweeper
	SweepIntervalMinutes int `mapstructure:"SWEEP_INTERVAL_MINUTES"`
	SweepMaxAgeMinutes   int `mapstructure:"SWEEP_MAX_AGE_MINUTES"`

	// List cache
	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "siteclaudia")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("LOCAL_UPLOAD_DIR", "./storage/uploads")
	viper.SetDefault("LOCAL_UPLOAD_URL_PREFIX", "/uploads")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("WHATSAPP_NUMBER", "553888319214")
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 30)
	viper.SetDefault("SWEEP_MAX_AGE_MINUTES", 60)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
