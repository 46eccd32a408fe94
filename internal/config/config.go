package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration. It is built once at startup
// and never mutated afterwards.
type Config struct {
	AppPort         string // Application port
	DBUser          string // Database user
	DBPassword      string // Database password
	DBHost          string // Database host
	DBPort          string // Database port
	DBName          string // Database name
	JWTSecret       string // JWT signing secret
	TokenTTLMinutes int    // Access token lifetime in minutes
	IsProd          bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	ttl, err := strconv.Atoi(os.Getenv("TOKEN_TTL_MINUTES"))
	if err != nil || ttl <= 0 {
		ttl = 30 // Default token lifetime
	}
	return &Config{
		AppPort:         os.Getenv("APP_PORT"),          // Application port
		DBUser:          os.Getenv("DB_USER"),           // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:          os.Getenv("DB_HOST"),           // Database host
		DBPort:          os.Getenv("DB_PORT"),           // Database port
		DBName:          os.Getenv("DB_NAME"),           // Database name
		JWTSecret:       os.Getenv("JWT_SECRET"),        // JWT signing secret
		TokenTTLMinutes: ttl,                            // Access token lifetime
		IsProd:          os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// DSN builds the MySQL Data Source Name from the database settings
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
