package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the YAML file.
const (
	EnvDatabaseDSN   = "CRM_DB_DSN"
	EnvRedisURL      = "CRM_REDIS_URL"
	EnvJWTSecret     = "CRM_JWT_SECRET"
	EnvAdminPassword = "CRM_ADMIN_PASSWORD_HASH"
	EnvS3AccessKeyID = "CRM_S3_ACCESS_KEY_ID"
	EnvS3SecretKey   = "CRM_S3_SECRET_ACCESS_KEY"
	EnvStaticDir     = "CRM_STATIC_DIR"
)

// LoadEnvFile loads a dotenv file into the process environment. Variables
// already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnvOverlay(cfg *AppConfig) {
	if v := env(EnvDatabaseDSN); v != "" {
		cfg.Database.DSN = v
	}
	if v := env(EnvRedisURL); v != "" {
		cfg.Redis.URL = normalizeRedisRawURL(v)
	}
	if v := env(EnvJWTSecret); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := env(EnvAdminPassword); v != "" {
		cfg.Auth.PasswordHash = v
	}
	if v := env(EnvS3AccessKeyID); v != "" {
		cfg.Storage.AccessKeyID = v
	}
	if v := env(EnvS3SecretKey); v != "" {
		cfg.Storage.SecretAccessKey = v
	}
	if v := env(EnvStaticDir); v != "" {
		cfg.Storage.StaticDir = v
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
