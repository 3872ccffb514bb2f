package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shenikar/gym_presence/internal/models"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Verification policy
	MaxDistanceMeters        float64 `env:"POLICY_MAX_DISTANCE_METERS" envDefault:"80"`
	MaxAccuracyMeters        float64 `env:"POLICY_MAX_ACCURACY_METERS" envDefault:"30"`
	HighConfidenceMeters     float64 `env:"POLICY_HIGH_CONFIDENCE_METERS" envDefault:"50"`
	MediumConfidenceMeters   float64 `env:"POLICY_MEDIUM_CONFIDENCE_METERS" envDefault:"100"`
	SpoofMaxSpeedKmh         float64 `env:"SPOOF_MAX_SPEED_KMH" envDefault:"300"`
	SpoofSuspiciousAccuracyM float64 `env:"SPOOF_SUSPICIOUS_ACCURACY_METERS" envDefault:"1"`

	// Session / linking
	LocateTimeout     time.Duration `env:"LOCATE_TIMEOUT" envDefault:"10s"`
	SampleMaxAge      time.Duration `env:"SAMPLE_MAX_AGE" envDefault:"2m"`
	LinkWindow        time.Duration `env:"LINK_WINDOW" envDefault:"24h"`
	SampleHistorySize int           `env:"SAMPLE_HISTORY_SIZE" envDefault:"10"`
	SampleHistoryTTL  time.Duration `env:"SAMPLE_HISTORY_TTL" envDefault:"24h"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		DBMaxConns:               int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		RedisAddr:                getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  getEnvAsInt("REDIS_DB", 0),
		WebhookURL:               os.Getenv("WEBHOOK_URL"),
		WebhookSecret:            os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:           getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:        getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:         getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		MaxDistanceMeters:        getEnvAsFloat("POLICY_MAX_DISTANCE_METERS", 80),
		MaxAccuracyMeters:        getEnvAsFloat("POLICY_MAX_ACCURACY_METERS", 30),
		HighConfidenceMeters:     getEnvAsFloat("POLICY_HIGH_CONFIDENCE_METERS", 50),
		MediumConfidenceMeters:   getEnvAsFloat("POLICY_MEDIUM_CONFIDENCE_METERS", 100),
		SpoofMaxSpeedKmh:         getEnvAsFloat("SPOOF_MAX_SPEED_KMH", 300),
		SpoofSuspiciousAccuracyM: getEnvAsFloat("SPOOF_SUSPICIOUS_ACCURACY_METERS", 1),
		LocateTimeout:            getEnvAsDuration("LOCATE_TIMEOUT", 10*time.Second),
		SampleMaxAge:             getEnvAsDuration("SAMPLE_MAX_AGE", 2*time.Minute),
		LinkWindow:               getEnvAsDuration("LINK_WINDOW", 24*time.Hour),
		SampleHistorySize:        getEnvAsInt("SAMPLE_HISTORY_SIZE", 10),
		SampleHistoryTTL:         getEnvAsDuration("SAMPLE_HISTORY_TTL", 24*time.Hour),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if err := cfg.Policy().Validate(); err != nil {
		return nil, fmt.Errorf("invalid verification policy: %w", err)
	}

	return cfg, nil
}

// Policy собирает политику проверки из конфигурации
func (c *Config) Policy() models.VerificationPolicy {
	return models.VerificationPolicy{
		MaxDistanceMeters:        c.MaxDistanceMeters,
		MaxAccuracyMeters:        c.MaxAccuracyMeters,
		HighConfidenceDistance:   c.HighConfidenceMeters,
		MediumConfidenceDistance: c.MediumConfidenceMeters,
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
