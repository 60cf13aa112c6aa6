package db

import (
	"fmt" // DSN assembly

	"derphost/internal/config" // Application configuration
	"derphost/internal/domain" // Importing domain models

	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
)

// Open connects to the configured database. SQLite is the default and
// matches the original single-file deployment; MySQL is selected with
// DB_DRIVER=mysql.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "", "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

// Migrate performs automatic migration for the database schema.
// AutoMigrate is idempotent: existing tables are left alone.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&domain.User{}, &domain.Session{}, &domain.Page{})
}
