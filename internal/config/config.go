package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// SMTP carries the outbound-mail credentials. It is injected into the
// mailer at construction; the mailer checks for missing values at the
// call site instead of failing at startup, since the reactive core can
// run without mail configured.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SMTP) Configured() bool {
	return s.Host != "" && s.From != ""
}

type Config struct {
	HTTPAddr      string
	DatabaseURL   string
	JWTSecret     string
	InternalToken string
	SMTP          SMTP
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; real env vars win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		InternalToken: os.Getenv("INTERNAL_TOKEN"),
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
