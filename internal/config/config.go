package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	History  History `yaml:"history"`
	Search   Search  `yaml:"search"`
	Bot      Bot     `yaml:"bot"`
	Redis    Redis   `yaml:"redis"`
}

type History struct {
	Capacity int `yaml:"capacity" env:"HISTORY_CAPACITY" env-default:"10000"`
}

type Search struct {
	MaxNodes int           `yaml:"max-nodes" env:"SEARCH_MAX_NODES" env-default:"2000000"`
	Timeout  time.Duration `yaml:"timeout" env:"SEARCH_TIMEOUT" env-default:"10s"`
}

type Bot struct {
	Side string `yaml:"side" env:"BOT_SIDE" env-default:"b"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"0s"`
}

// Load - reads path when it exists, otherwise the environment alone.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
