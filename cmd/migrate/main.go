package main

import (
	"derphost/internal/config" // Application configuration
	"derphost/internal/db"     // Database open and migration

	"github.com/sirupsen/logrus" // Structured logging
)

// Standalone schema migration binary
func main() {
	cfg := config.LoadConfig() // Load configuration
	gdb, err := db.Open(cfg)   // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// AutoMigrate creates missing tables, columns and indexes
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
}
