package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/tripdesk/crm-admin/internal/config"
	"github.com/tripdesk/crm-admin/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and optionally runs migrations.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	db, err := openDB(cfg, resolveLogLevel(cfg))
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// EnsureSchema applies migrations in a short-lived setup connection.
func EnsureSchema(cfg *config.AppConfig) error {
	db, err := openDB(cfg, resolveLogLevel(cfg))
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db: %w", err)
	}
	defer sqlDB.Close()

	if err := Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsProduction() {
		return logger.Warn
	}
	return logger.Info
}

func openDB(cfg *config.AppConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{DSN: cfg.Database.DSNValue()})
	default:
		dialector = mysql.New(mysql.Config{
			DSN:               cfg.Database.DSNValue(),
			DefaultStringSize: 191,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// Migrate runs the versioned schema migrations.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250601_create_catalog_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ActivityModel{}, &models.TransportModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("activities", "transports")
			},
		},
		{
			ID: "20250601_create_content_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ContentModel{}, &models.HeroSlideModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("contents", "hero_slides")
			},
		},
		{
			ID: "20250601_create_itineraries",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ItineraryModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("itineraries")
			},
		},
		{
			ID: "20250615_create_ledgers",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.LedgerModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("ledgers")
			},
		},
		{
			ID: "20250701_create_file_references",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.FileReferenceModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("file_references")
			},
		},
		{
			ID: "20250720_create_slug_trackers",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.SlugTrackerModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("slug_trackers")
			},
		},
	})
	return m.Migrate()
}
