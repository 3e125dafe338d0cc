package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"
	defaultTimezone   = "Asia/Kolkata"
	defaultSiteURL    = "http://localhost:3000"
	defaultDBDriver   = DriverMySQL
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultPGPort     = 5432
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "crm_admin"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0
	defaultAdminUser  = "admin"
	defaultTokenTTL   = 72 * time.Hour
	defaultMaxSizeMB  = 10
	defaultStorage    = StorageLocal
	defaultPublicBase = "/api/v1/objects"
)

// Database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Storage drivers.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

var defaultAllowedFormats = []string{"jpg", "jpeg", "png", "webp", "gif", "avif", "mp4", "webm", "pdf"}
