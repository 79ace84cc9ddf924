package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBPath         string
	RabbitURL      string
	RabbitExchange string
	SeedOnStart    bool
	ServiceEnv     string
}

// Load reads configuration from the environment, with an optional .env file.
// An empty RabbitURL disables event publishing.
func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		DBPath:         env("BOOKSTORE_DB_PATH", "./data/bookstore.db"),
		RabbitURL:      env("RABBIT_URL", ""),
		RabbitExchange: env("RABBIT_EXCHANGE", "domain_events"),
		SeedOnStart:    env("SEED_ON_START", "true") == "true",
		ServiceEnv:     env("SERVICE_ENV", "dev"),
	}
	log.Info().
		Str("db", cfg.DBPath).
		Str("exchange", cfg.RabbitExchange).
		Bool("seed", cfg.SeedOnStart).
		Str("env", cfg.ServiceEnv).
		Msg("config loaded")
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
