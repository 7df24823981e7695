// Package config loads process configuration from the environment, grounded
// on MuhammadChandra19-exchange/services/*/pkg/config's caarlos0/env +
// godotenv pattern.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything cmd/httpserver needs to stand up an Exchange and
// its HTTP facade.
type Config struct {
	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":8080"`
	EventBusCapacity int   `env:"EVENT_BUS_CAPACITY" envDefault:"10000"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`

	Redis RedisConfig `envPrefix:"REDIS_"`
}

// RedisConfig configures the optional secondary snapshot cache. It is only
// wired up when Enabled is true; the in-memory cache is always present
// regardless.
type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// Load reads configuration from the environment, first loading a .env file
// if one is present in the working directory; a missing .env is not an
// error.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
