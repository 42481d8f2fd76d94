package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Client   Client `yaml:"client"`
}

// Redis configures the optional result archive. An empty host disables it
// and the server runs fully in memory.
type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Client struct {
	ServerAddr     string        `yaml:"server-addr" env:"SERVER_ADDR" env-default:"localhost:9090"`
	PollInterval   time.Duration `yaml:"poll-interval" env:"POLL_INTERVAL" env-default:"2s"`
	RequestTimeout time.Duration `yaml:"request-timeout" env:"REQUEST_TIMEOUT" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Addr - the redis address, or "" when the archive is disabled.
func (that *Redis) Addr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
