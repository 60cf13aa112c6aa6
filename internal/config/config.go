package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: sqlite (default) or mysql
	DBPath     string // SQLite database file path
	DBUser     string // MySQL user
	DBPassword string // MySQL password
	DBHost     string // MySQL host
	DBPort     string // MySQL port
	DBName     string // MySQL database name
	RedisAddr  string // Redis server address (empty disables caching)
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:    os.Getenv("APP_PORT"),          // Application port
		DBDriver:   os.Getenv("DB_DRIVER"),         // Database driver
		DBPath:     os.Getenv("DB_PATH"),           // SQLite file path
		DBUser:     os.Getenv("DB_USER"),           // MySQL user
		DBPassword: os.Getenv("DB_PASSWORD"),       // MySQL password
		DBHost:     os.Getenv("DB_HOST"),           // MySQL host
		DBPort:     os.Getenv("DB_PORT"),           // MySQL port
		DBName:     os.Getenv("DB_NAME"),           // MySQL database name
		RedisAddr:  os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:    redisDB,                        // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment
	}
	// Defaults matching the original single-binary deployment
	if cfg.AppPort == "" {
		cfg.AppPort = "3000"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "sqlite"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "derp.db"
	}
	return cfg
}
