package cmd

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
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	KafkaBrokers           string
	KafkaNotificationTopic string

	CancellationWindow time.Duration
	SweepInterval      time.Duration
	SweepRetryInterval time.Duration

	NotifyWorkers     int
	NotifyQueueSize   int
	NotifyMaxAttempts int
}

// LoadConfig reads the environment after loading envFile, if present. Variables
// already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	r := envReader{}
	cfg := Config{
		HTTPPort:   r.str("HTTP_PORT", "8080"),
		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", ""),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", ""),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		JWTSecret: r.str("JWT_SECRET", ""),

		KafkaBrokers:           r.str("KAFKA_BROKERS", ""),
		KafkaNotificationTopic: r.str("KAFKA_NOTIFICATION_TOPIC", "fulfillment.notifications"),

		CancellationWindow: r.duration("CANCELLATION_WINDOW", 24*time.Hour),
		SweepInterval:      r.duration("SWEEP_INTERVAL", time.Hour),
		SweepRetryInterval: r.duration("SWEEP_RETRY_INTERVAL", 5*time.Minute),

		NotifyWorkers:     r.integer("NOTIFY_WORKERS", 2),
		NotifyQueueSize:   r.integer("NOTIFY_QUEUE_SIZE", 256),
		NotifyMaxAttempts: r.integer("NOTIFY_MAX_ATTEMPTS", 3),
	}

	if cfg.JWTSecret == "" {
		r.errs = append(r.errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.DBName == "" {
		r.errs = append(r.errs, errors.New("DB_NAME is required"))
	}
	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

type envReader struct {
	errs []error
}

func (r *envReader) str(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a positive duration", key, v))
		return def
	}
	return d
}

func (r *envReader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a positive integer", key, v))
		return def
	}
	return n
}
