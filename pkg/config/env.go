package config

import (
	"log/slog"
	"os"

	"github.com/aretw0/carousel/internal/logging"
)

// Env holds process settings for the serve command. Flags override them.
type Env struct {
	Addr      string
	LogLevel  slog.Level
	LogFile   string
	RedisAddr string
}

// LoadEnv reads CAROUSEL_* variables.
func LoadEnv() (Env, error) {
	e := Env{
		Addr:      envOr("CAROUSEL_ADDR", ":8080"),
		LogFile:   os.Getenv("CAROUSEL_LOG_FILE"),
		RedisAddr: os.Getenv("CAROUSEL_REDIS"),
	}

	level, err := logging.ParseLevel(envOr("CAROUSEL_LOG_LEVEL", "info"))
	if err != nil {
		return Env{}, err
	}
	e.LogLevel = level
	return e, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
