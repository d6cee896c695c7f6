package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	DB      DBConfig
	Session SessionConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Kafka   KafkaConfig
	Limit   RateLimitConfig
}

type AppConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

// DBConfig selects the storage engine. Path is only used by sqlite.
type DBConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type SessionConfig struct {
	Store string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
}

type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
	// Peers allowed to report the client address in X-Forwarded-For
	TrustedProxies []string
}

// Storage engines
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Session stores
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "patient_data.db")
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("KAFKA_BOOKING_TOPIC", "consultation-booked")
	v.SetDefault("LOGIN_RATE_LIMIT", 1.0)
	v.SetDefault("LOGIN_RATE_BURST", 5)

	// .env is optional; plain environment variables are enough
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 12 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Session: SessionConfig{
			Store: v.GetString("SESSION_STORE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			BookingTopic: v.GetString("KAFKA_BOOKING_TOPIC"),
		},
		Limit: RateLimitConfig{
			LoginPerSecond: v.GetFloat64("LOGIN_RATE_LIMIT"),
			LoginBurst:     v.GetInt("LOGIN_RATE_BURST"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
	}

	if config.JWT.Secret == "" {
		if config.App.Env == "production" {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		config.JWT.Secret = "dev-secret"
	}

	return config, nil
}
