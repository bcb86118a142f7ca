package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration
type Config struct {
	Port               string
	DBPath             string
	JWTSecret          string
	OSRMBaseURL        string // empty disables the routing collaborator
	DefaultSampleCount int
}

// Load reads configuration from the environment, with .env as a
// fallback source
func Load() *Config {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/analyses.db"
	}

	sampleCount := 12
	if v := os.Getenv("DEFAULT_SAMPLE_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 2 {
			sampleCount = n
		}
	}

	return &Config{
		Port:               port,
		DBPath:             dbPath,
		JWTSecret:          os.Getenv("JWT_SECRET"),
		OSRMBaseURL:        os.Getenv("OSRM_URL"),
		DefaultSampleCount: sampleCount,
	}
}
