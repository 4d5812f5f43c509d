package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	aws_pkg "github.com/yashrajoria/storefront/backend/pkg/aws"
	"github.com/yashrajoria/storefront/backend/services/storefront/database"
)

const secretName = "storefront/CREDENTIALS"

// Config holds all configuration for the storefront service.
type Config struct {
	Port string
	Env  string

	Database database.Options

	RedisURL string
	CartTTL  time.Duration

	SessionSecret string

	CheckoutDelay      time.Duration
	PaymentDeclineRate float64

	AllowedOrigins []string

	S3Bucket    string
	S3Prefix    string
	S3PublicURL string

	OrderSNSTopicARN string
	KafkaBrokers     []string
	OrderEventsTopic string

	CloudWatchEnabled bool
	MetricsNamespace  string
	LogGroup          string

	AuthRatePerMinute int
	AuthRateBurst     int
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig reads configuration from environment variables (and a .env file
// when present) with optional Secrets Manager override.
func LoadConfig(logger *zap.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	var errs []string
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
		Database: database.Options{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		RedisURL:          os.Getenv("REDIS_URL"),
		CartTTL:           getDuration("CART_TTL", 24*time.Hour, &errs),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		CheckoutDelay:     getDuration("CHECKOUT_DELAY", 2*time.Second, &errs),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Prefix:          getEnv("S3_PREFIX", "products"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		OrderSNSTopicARN:  os.Getenv("ORDER_SNS_TOPIC_ARN"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic:  getEnv("ORDER_EVENTS_TOPIC", "order-events"),
		CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
		MetricsNamespace:  getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),
		LogGroup:          getEnv("CLOUDWATCH_LOG_GROUP", "/storefront/services"),
		AuthRatePerMinute: getInt("AUTH_RATE_PER_MINUTE", 20, &errs),
		AuthRateBurst:     getInt("AUTH_RATE_BURST", 10, &errs),
	}

	if v := os.Getenv("PAYMENT_DECLINE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 || rate > 1 {
			errs = append(errs, "PAYMENT_DECLINE_RATE must be between 0 and 1")
		}
		cfg.PaymentDeclineRate = rate
	}

	// Override credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if err := applySecrets(context.Background(), cfg); err != nil {
			logger.Warn("Secrets Manager override failed, keeping environment values", zap.Error(err))
		}
	}

	if cfg.Database.User == "" || cfg.Database.Password == "" || cfg.Database.Name == "" {
		errs = append(errs, "database config incomplete (POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB)")
	}
	if cfg.SessionSecret == "" {
		errs = append(errs, "SESSION_SECRET is required")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func applySecrets(ctx context.Context, cfg *Config) error {
	awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
	if err != nil {
		return err
	}
	m, err := aws_pkg.NewSecretsClient(awsCfg).GetSecretMap(ctx, secretName)
	if err != nil {
		return err
	}
	overrideFromSecret(cfg, m)
	return nil
}

func overrideFromSecret(cfg *Config, m map[string]string) {
	set := func(dst *string, key string) {
		if v, ok := m[key]; ok && v != "" {
			*dst = v
		}
	}
	set(&cfg.Database.User, "POSTGRES_USER")
	set(&cfg.Database.Password, "POSTGRES_PASSWORD")
	set(&cfg.Database.Name, "POSTGRES_DB")
	set(&cfg.Database.Host, "POSTGRES_HOST")
	set(&cfg.Database.Port, "POSTGRES_PORT")
	set(&cfg.SessionSecret, "SESSION_SECRET")
	set(&cfg.RedisURL, "REDIS_URL")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration, errs *[]string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		*errs = append(*errs, fmt.Sprintf("%s must be a non-negative duration", key))
		return fallback
	}
	return d
}

func getInt(key string, fallback int, errs *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be an integer", key))
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSuffix(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
