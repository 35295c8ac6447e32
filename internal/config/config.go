package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName         string
	HTTPAddr        string
	LogLevel        string
	ShutdownTimeout time.Duration

	DatabaseDSN string
	AutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL          time.Duration
	SessionCookieSecure bool

	EventBroker  string
	KafkaBrokers []string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var errs []error
	cfg := Config{
		AppName:       getString("APP_NAME", "train-booking"),
		HTTPAddr:      getString("HTTP_ADDR", ":8080"),
		LogLevel:      getString("LOG_LEVEL", "info"),
		DatabaseDSN:   getString("DATABASE_DSN", ""),
		RedisAddr:     getString("REDIS_ADDR", ""),
		RedisPassword: getString("REDIS_PASSWORD", ""),
		EventBroker:   getString("EVENT_BROKER", "gochannel"),
		KafkaBrokers:  getList("KAFKA_BROKERS"),
	}
	cfg.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", 5*time.Second, &errs)
	cfg.SessionTTL = getDuration("SESSION_TTL", 24*time.Hour, &errs)
	cfg.AutoMigrate = getBool("AUTO_MIGRATE", true, &errs)
	cfg.SessionCookieSecure = getBool("SESSION_COOKIE_SECURE", false, &errs)
	cfg.RedisDB = getInt("REDIS_DB", 0, &errs)

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func getString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getList(key string) []string {
	raw := getString(key, "")
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := getString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return value
}

func getBool(key string, fallback bool, errs *[]error) bool {
	raw := getString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return value
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := getString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return value
}
