package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string
	Env  string

	MongoURI string
	MongoDB  string

	RedisURL  string
	BasketTTL time.Duration

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	JWTSecret string

	RateLimitWindow time.Duration
	RateLimitMax    int

	WebhookDedupEnabled bool
	WebhookDedupTTL     time.Duration

	OrderSNSTopicARN string // SNS topic ARN for order events, empty disables publishing
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("APP_ENV", "development"),
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDB:             getEnv("MONGO_DB", "storefront"),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		BasketTTL:           getDuration("BASKET_TTL", 72*time.Hour),
		PostgresUser:        os.Getenv("POSTGRES_USER"),
		PostgresPassword:    os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:          os.Getenv("POSTGRES_DB"),
		PostgresHost:        os.Getenv("POSTGRES_HOST"),
		PostgresPort:        getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
		StripeSecretKey:     os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            getEnv("CHECKOUT_CURRENCY", "gbp"),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/success"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/basket"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		RateLimitWindow:     getDuration("RATE_LIMIT_WINDOW", time.Hour),
		RateLimitMax:        getInt("RATE_LIMIT_MAX", 100),
		WebhookDedupEnabled: getBool("WEBHOOK_DEDUP_ENABLED", false),
		WebhookDedupTTL:     getDuration("WEBHOOK_DEDUP_TTL", 24*time.Hour),
		OrderSNSTopicARN:    os.Getenv("ORDER_SNS_TOPIC_ARN"),
	}

	// STRIPE_WEBHOOK_SECRET is not required at startup; the webhook handler
	// reports its absence per request.
	if cfg.MongoURI == "" || cfg.StripeSecretKey == "" || cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	return cfg, nil
}

// PostgresConfigured reports whether the webhook audit database is set up.
func (c *Config) PostgresConfigured() bool {
	return c.PostgresHost != "" && c.PostgresUser != "" && c.PostgresDB != ""
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
