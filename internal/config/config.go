package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Minio      MinioConfig
	Navigation NavigationConfig
	Audit      AuditConfig
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig represents PostgreSQL configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig represents token verification configuration. Tokens are issued
// by an external identity provider; this service only verifies them.
type AuthConfig struct {
	JWTSecret string
	JWKSURL   string
}

// MinioConfig represents object storage configuration. Branding features
// are disabled when Endpoint is empty.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NavigationConfig tunes tree projection and its caches
type NavigationConfig struct {
	KeepEmptyMenus          bool
	ProjectionCacheSize     int
	ProjectionCacheTTL      time.Duration
	ProjectionCacheDisabled bool
	PermissionCacheTTL      time.Duration
}

// AuditConfig tunes the audit trail retention job
type AuditConfig struct {
	RetentionDays int
}

// InitConfig initializes viper configuration.
// env: environment name (dev, test, prod)
func InitConfig(env string) {
	if env == "" {
		env = "dev"
	}

	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Read config file (optional, ignore error if not found)
	_ = viper.ReadInConfig()

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", env)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MINIO_USE_SSL", false)

	viper.SetDefault("NAV_KEEP_EMPTY_MENUS", false)
	viper.SetDefault("NAV_PROJECTION_CACHE_SIZE", 512)
	viper.SetDefault("NAV_PROJECTION_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("NAV_PROJECTION_CACHE_DISABLED", false)
	viper.SetDefault("PERM_CACHE_TTL_SECONDS", 60)

	viper.SetDefault("AUDIT_RETENTION_DAYS", 90)
}

// Load loads configuration from viper
func Load() (*Config, error) {
	databaseURL := viper.GetString("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required (set via environment variable or .env file)")
	}

	config := &Config{
		Server: ServerConfig{
			Port: viper.GetString("PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			URL: databaseURL,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			JWKSURL:   viper.GetString("JWKS_URL"),
		},
		Minio: MinioConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		Navigation: NavigationConfig{
			KeepEmptyMenus:          viper.GetBool("NAV_KEEP_EMPTY_MENUS"),
			ProjectionCacheSize:     viper.GetInt("NAV_PROJECTION_CACHE_SIZE"),
			ProjectionCacheTTL:      time.Duration(viper.GetInt("NAV_PROJECTION_CACHE_TTL_SECONDS")) * time.Second,
			ProjectionCacheDisabled: viper.GetBool("NAV_PROJECTION_CACHE_DISABLED"),
			PermissionCacheTTL:      time.Duration(viper.GetInt("PERM_CACHE_TTL_SECONDS")) * time.Second,
		},
		Audit: AuditConfig{
			RetentionDays: viper.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}

	if config.Auth.JWTSecret == "" && config.Auth.JWKSURL == "" {
		return nil, fmt.Errorf("either JWT_SECRET or JWKS_URL is required")
	}

	return config, nil
}

// LoadDatabaseURL returns only the database DSN, for commands that need
// nothing else from the environment (migrate, seed).
func LoadDatabaseURL() (string, error) {
	databaseURL := viper.GetString("DATABASE_URL")
	if databaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL is required (set via environment variable or .env file)")
	}
	return databaseURL, nil
}
