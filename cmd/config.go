package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Database drivers accepted in DB_DRIVER.
const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort         string
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	DBPath           string
	RedisURL         string
	CleanupCron      string
	SequencingCron   string
	EngineConfigPath string
	LogLevel         string
}

// LoadConfig reads envFile, when it exists, into the environment and builds
// a Config from it. Variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:         envOr("HTTP_PORT", "8080"),
		DBDriver:         envOr("DB_DRIVER", DBDriverPostgres),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           envOr("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSslMode:        envOr("DB_SSLMODE", "disable"),
		DBPath:           envOr("DB_PATH", "routeengine.db"),
		RedisURL:         os.Getenv("REDIS_URL"),
		CleanupCron:      os.Getenv("CLEANUP_CRON"),
		SequencingCron:   os.Getenv("SEQUENCING_CRON"),
		EngineConfigPath: os.Getenv("ENGINE_CONFIG"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.DBDriver {
	case DBDriverPostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return errors.New("config: DB_HOST, DB_USER and DB_NAME are required for postgres")
		}
	case DBDriverSQLite:
		if c.DBPath == "" {
			return errors.New("config: DB_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// PostgresDSN renders the connection string for gorm.io/driver/postgres.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
