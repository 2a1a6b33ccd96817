package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Training TrainingConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port            int
	APIPrefix       string
	ShutdownTimeout time.Duration
	// MaxBodyBytes caps JSON request bodies; larger bodies are rejected.
	MaxBodyBytes int64
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// GetDSN returns DATABASE_URL when set, otherwise a key/value DSN built
// from the individual settings.
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	PingAttempts int
	PingBackoff  time.Duration
	LocalTTL     time.Duration
}

type CORSConfig struct {
	AllowedOrigins string
}

type TrainingConfig struct {
	Delay        time.Duration
	ModelVersion string
}

type WorkerConfig struct {
	ReconcileInterval time.Duration
	MetricsAddr       string
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisEnabled, err := getBoolEnv("REDIS_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}

	trainingDelayMS, err := getIntEnv("TRAINING_DELAY_MS", 3000)
	if err != nil {
		return nil, fmt.Errorf("invalid TRAINING_DELAY_MS: %w", err)
	}

	reconcileSec, err := getIntEnv("RECONCILE_INTERVAL_SEC", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_INTERVAL_SEC: %w", err)
	}
	if reconcileSec <= 0 {
		return nil, fmt.Errorf("invalid RECONCILE_INTERVAL_SEC: must be positive, got %d", reconcileSec)
	}

	maxBodyBytes, err := getIntEnv("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_BODY_BYTES: %w", err)
	}
	if maxBodyBytes <= 0 {
		return nil, fmt.Errorf("invalid MAX_BODY_BYTES: must be positive, got %d", maxBodyBytes)
	}

	cfg := &Config{
		Env: getEnv("ENV", "production"),
		Server: ServerConfig{
			Port:            serverPort,
			APIPrefix:       strings.TrimRight(getEnv("API_PREFIX", "/api"), "/"),
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    int64(maxBodyBytes),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "sustainability"),
			Password: getEnv("DB_PASSWORD", "sustainability_dev_password"),
			Name:     getEnv("DB_NAME", "sustainability"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:      redisEnabled,
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         redisPort,
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           redisDB,
			PingAttempts: 5,
			PingBackoff:  2 * time.Second,
			LocalTTL:     time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Training: TrainingConfig{
			Delay:        time.Duration(trainingDelayMS) * time.Millisecond,
			ModelVersion: getEnv("MODEL_VERSION", "1.0"),
		},
		Worker: WorkerConfig{
			ReconcileInterval: time.Duration(reconcileSec) * time.Second,
			MetricsAddr:       getEnv("METRICS_ADDR", ":9090"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
