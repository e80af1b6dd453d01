package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"family-connect-go/pkg/logger"
)

type Config struct {
	HTTPPort           string
	Env                string
	AdminEmails        []string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	DB                 DBConfig
	Kafka              KafkaConfig
	Mail               MailConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// KafkaConfig drives the push-notification sink. An empty broker list selects the log-only sink.
type KafkaConfig struct {
	Brokers            []string
	NotificationsTopic string
	WriteTimeout       time.Duration
}

// MailConfig drives reset-token delivery over SES. An empty FromEmail disables sending.
type MailConfig struct {
	AWSRegion   string
	FromEmail   string
	FromName    string
	AppName     string
	SendTimeout time.Duration
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		AdminEmails:        getEnvList("ADMIN_EMAILS"),
		CORSAllowedOrigins: getEnvListDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:8081"}),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", getEnv("DATABASE_URL", "")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "family_connect"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Kafka: KafkaConfig{
			Brokers:            getEnvList("KAFKA_BROKERS"),
			NotificationsTopic: getEnv("KAFKA_NOTIFICATIONS_TOPIC", "family-connect.notifications"),
			WriteTimeout:       getEnvDuration("KAFKA_WRITE_TIMEOUT", 5*time.Second),
		},
		Mail: MailConfig{
			AWSRegion:   getEnv("AWS_REGION", "ap-southeast-2"),
			FromEmail:   getEnv("SES_FROM_EMAIL", ""),
			FromName:    getEnv("SES_FROM_NAME", "Family Connect"),
			AppName:     getEnv("APP_NAME", "Family Connect"),
			SendTimeout: getEnvDuration("SES_SEND_TIMEOUT", 10*time.Second),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string) []string {
	return getEnvListDefault(key, nil)
}

func getEnvListDefault(key string, fallback []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
