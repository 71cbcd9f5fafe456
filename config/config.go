package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
)

type Config struct {
	App struct {
		Env           string `env:"APP_ENV" envDefault:"development"`
		Port          string `env:"PORT"    envDefault:"8088"`
		FrontendURL   string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
		LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
		UploadDir     string `env:"UPLOAD_DIR"   envDefault:"./public/uploads"`
		PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8088"`
		BcryptCost    int    `env:"BCRYPT_COST" envDefault:"12"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"scoutnet_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"`
		AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"1440"`
		RefreshTokenSecret       string `env:"JWT_REFRESH_TOKEN_SECRET"`
		RefreshTokenExpiryDays   int    `env:"JWT_REFRESH_TOKEN_EXPIRY_DAYS"   envDefault:"7"`
	}
	Storage struct {
		Driver          string `env:"STORAGE_DRIVER" envDefault:"local"` // local | s3
		Endpoint        string `env:"S3_ENDPOINT"`
		Region          string `env:"S3_REGION" envDefault:"auto"`
		Bucket          string `env:"S3_BUCKET"`
		AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
		CDNBaseURL      string `env:"CDN_BASE_URL"`
		MaxImageMB      int    `env:"UPLOAD_MAX_IMAGE_MB" envDefault:"10"`
		MaxVideoMB      int    `env:"UPLOAD_MAX_VIDEO_MB" envDefault:"100"`
	}
	Redis struct {
		Addr       string `env:"REDIS_ADDR"`
		Password   string `env:"REDIS_PASSWORD"`
		TTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`
	}
	RateLimit struct {
		AuthPerMinute int `env:"AUTH_RATE_PER_MINUTE" envDefault:"20"`
		AuthBurst     int `env:"AUTH_RATE_BURST" envDefault:"5"`
	}
	Admin struct {
		Name     string `env:"ADMIN_NAME" envDefault:"Administrator"`
		Email    string `env:"ADMIN_EMAIL"`
		Password string `env:"ADMIN_PASSWORD"`
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// MaxImageBytes is the upload limit for images.
func (c *Config) MaxImageBytes() int64 {
	return int64(c.Storage.MaxImageMB) << 20
}

// MaxVideoBytes is the upload limit for videos.
func (c *Config) MaxVideoBytes() int64 {
	return int64(c.Storage.MaxVideoMB) << 20
}

// CacheTTL is how long cached search results live.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

const (
	defaultAccessSecret  = "your-very-strong-access-secret"
	defaultRefreshSecret = "your-very-strong-refresh-secret"
)

// LoadConfig loads configuration from environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	// Missing .env is fine, production sets variables directly.
	if err := godotenv.Load(); err != nil {
		logger.Logger.Debug().Msg("No .env file found, relying on system environment variables")
	}

	cfg := &Config{}
	var err error

	// --- App Configuration ---
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.App.UploadDir = getEnv("UPLOAD_DIR", "./public/uploads")
	cfg.App.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.App.Port)
	if cfg.App.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}

	// --- Database Configuration ---
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "scoutnet_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// --- JWT Configuration ---
	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", defaultAccessSecret)
	cfg.JWT.RefreshTokenSecret = getEnv("JWT_REFRESH_TOKEN_SECRET", defaultRefreshSecret)
	if cfg.JWT.AccessTokenExpiryMinutes, err = getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 1440); err != nil {
		return nil, err
	}
	if cfg.JWT.RefreshTokenExpiryDays, err = getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRY_DAYS", 7); err != nil {
		return nil, err
	}

	// --- Media storage ---
	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", "local")
	cfg.Storage.Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.Storage.Region = getEnv("S3_REGION", "auto")
	cfg.Storage.Bucket = getEnv("S3_BUCKET", "")
	cfg.Storage.AccessKeyID = getEnv("S3_ACCESS_KEY_ID", "")
	cfg.Storage.SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", "")
	cfg.Storage.CDNBaseURL = getEnv("CDN_BASE_URL", "")
	if cfg.Storage.MaxImageMB, err = getEnvAsInt("UPLOAD_MAX_IMAGE_MB", 10); err != nil {
		return nil, err
	}
	if cfg.Storage.MaxVideoMB, err = getEnvAsInt("UPLOAD_MAX_VIDEO_MB", 100); err != nil {
		return nil, err
	}
	if cfg.Storage.Driver != "local" && cfg.Storage.Driver != "s3" {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: expected local or s3", cfg.Storage.Driver)
	}

	// --- Redis / rate limiting ---
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	if cfg.Redis.TTLSeconds, err = getEnvAsInt("CACHE_TTL_SECONDS", 60); err != nil {
		return nil, err
	}
	if cfg.RateLimit.AuthPerMinute, err = getEnvAsInt("AUTH_RATE_PER_MINUTE", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimit.AuthBurst, err = getEnvAsInt("AUTH_RATE_BURST", 5); err != nil {
		return nil, err
	}

	// --- Admin seed ---
	cfg.Admin.Name = getEnv("ADMIN_NAME", "Administrator")
	cfg.Admin.Email = getEnv("ADMIN_EMAIL", "")
	cfg.Admin.Password = getEnv("ADMIN_PASSWORD", "")

	if cfg.JWT.AccessTokenSecret == defaultAccessSecret || cfg.JWT.RefreshTokenSecret == defaultRefreshSecret {
		logger.Logger.Warn().Msg("Using default JWT secrets. Set JWT_ACCESS_TOKEN_SECRET and JWT_REFRESH_TOKEN_SECRET for production.")
	}
	if cfg.DB.Password == "password" && cfg.IsProduction() {
		logger.Logger.Warn().Msg("Using default DB password in production. Set DB_PASSWORD.")
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{TranslateError: true}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	logger.Logger.Info().Str("host", dbCfg.DB.Host).Str("db", dbCfg.DB.Name).Msg("Successfully connected to database")
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of the application.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		logger.Init("scoutnet", appConfig.App.Env, appConfig.App.LogLevel)

		if _, err = ConnectDB(*appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		logger.Logger.Fatal().Msg("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
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
