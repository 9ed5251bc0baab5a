package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	StripeSecretKey     string
	StripeWebhookSecret string
	SuccessURL          string
	CancelURL           string
	KafkaBrokers        []string
	SessionRequestTopic string
	SessionRequestGroup string
	Env                 string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                os.Getenv("PORT"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SuccessURL:          os.Getenv("SUCCESS_URL"),
		CancelURL:           os.Getenv("CANCEL_URL"),
		KafkaBrokers:        splitBrokers(os.Getenv("KAFKA_BROKERS")),
		SessionRequestTopic: getEnv("SESSION_REQUEST_TOPIC", "payment-session-requests"),
		SessionRequestGroup: getEnv("SESSION_REQUEST_GROUP", "payments-service-group"),
		Env:                 getEnv("ENV", "development"),
	}

	if cfg.Port == "" || cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" ||
		cfg.SuccessURL == "" || cfg.CancelURL == "" || len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("missing required environment variables")
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
