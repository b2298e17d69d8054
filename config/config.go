package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env  string
		Port string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	JWT struct {
		AccessTokenSecret        string
		AccessTokenExpiryMinutes int
		RefreshTokenSecret       string
		RefreshTokenExpiryDays   int
	}
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "pickleball_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", "dev-access-secret")
	cfg.JWT.RefreshTokenSecret = getEnv("JWT_REFRESH_TOKEN_SECRET", "dev-refresh-secret")

	var err error
	cfg.JWT.AccessTokenExpiryMinutes, err = getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 15)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %w", err)
	}
	cfg.JWT.RefreshTokenExpiryDays, err = getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRY_DAYS", 7)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TOKEN_EXPIRY_DAYS: %w", err)
	}

	if cfg.App.Env == "production" && cfg.JWT.AccessTokenSecret == "dev-access-secret" {
		log.Println("WARNING: Using default JWT secrets in production. Set JWT_ACCESS_TOKEN_SECRET and JWT_REFRESH_TOKEN_SECRET.")
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes a connection to the database and sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	log.Println("Successfully connected to database")
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database. Called
// once at startup.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		if _, err = ConnectDB(*appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
