package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Kafka    KafkaConfig
	Tracking TrackingConfig
	Payment  PaymentConfig
	Data     DataConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins string
}

// LogConfig selects the log encoder and level.
type LogConfig struct {
	JSON  bool
	Debug bool
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// KafkaConfig holds the event bus configuration. Empty Brokers logs events instead.
type KafkaConfig struct {
	Brokers string
	Topic   string
}

// TrackingConfig drives the simulated status playback.
type TrackingConfig struct {
	Interval time.Duration
	Loop     bool
}

// PaymentConfig drives the simulated payment provider.
type PaymentConfig struct {
	Delay      time.Duration
	MaxRetries int
}

// DataConfig points at optional catalog and roster files. Empty uses the
// built-in demo data.
type DataConfig struct {
	CatalogFile string
	RosterFile  string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               getEnv("SERVER_PORT", "8080"),
			ReadTimeout:        getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:       getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
		},
		Log: LogConfig{
			JSON:  getEnv("LOG_FORMAT", "") == "JSON",
			Debug: getBoolEnv("LOG_DEBUG", false),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "swiftbus-booking"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Kafka: KafkaConfig{
			Brokers: getEnv("KAFKA_BROKERS", ""),
			Topic:   getEnv("KAFKA_TOPIC", "swiftbus.bookings"),
		},
		Tracking: TrackingConfig{
			Interval: getDurationEnv("TRACKING_INTERVAL", 10*time.Second),
			Loop:     getBoolEnv("TRACKING_LOOP", false),
		},
		Payment: PaymentConfig{
			Delay:      getDurationEnv("PAYMENT_DELAY", 2*time.Second),
			MaxRetries: getIntEnv("PAYMENT_MAX_RETRIES", 3),
		},
		Data: DataConfig{
			CatalogFile: getEnv("CATALOG_FILE", ""),
			RosterFile:  getEnv("ROSTER_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}
