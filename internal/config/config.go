package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration, loaded from the environment
type Config struct {
	// Discord credentials
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`

	// Optional guild ID for development (server-specific commands)
	GuildID string `env:"GUILD_ID"`

	// Redis connection
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads an optional .env file, then parses the environment
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN environment variable is required")
	}

	return &cfg, nil
}
