package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env collects process configuration. Values come from the environment, with an
// optional .env file loaded first for local development.
type Env struct {
	AppAddr     string
	GinMode     string
	DBDSN       string
	JWTSecret   string
	RedisAddr   string
	CacheTTL    time.Duration
	AmqpURL     string
	PaymentHold time.Duration
}

func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	cacheTTL := 5 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("OPTION_CACHE_TTL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cacheTTL = d
		}
	}

	paymentHold := 2 * time.Second
	if raw := strings.TrimSpace(os.Getenv("PAYMENT_HOLD")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			paymentHold = d
		}
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:       strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret:   secret,
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CacheTTL:    cacheTTL,
		AmqpURL:     strings.TrimSpace(os.Getenv("AMQP_URL")),
		PaymentHold: paymentHold,
	}
}
