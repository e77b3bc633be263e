package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel            string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort            string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	TCPPort             string `yaml:"tcp-port" env:"TCP_PORT" env-default:"6000"`
	WSPort              string `yaml:"ws-port" env:"WS_PORT" env-default:"9091"`
	RoundTimeoutSeconds int    `yaml:"round-timeout-seconds" env:"ROUND_TIMEOUT_SECONDS" env-default:"30"`
	Redis               Redis  `yaml:"redis"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad reads the config file when present; otherwise the server runs on
// its fixed defaults, so a bare binary needs no configuration at all.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load default config: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// RoundTimeout is the authoritative server-side round deadline; zero disables
// it and leaves timeouts entirely to the client-asserted signal.
func (that *Config) RoundTimeout() time.Duration {
	return time.Duration(that.RoundTimeoutSeconds) * time.Second
}

func (that *Redis) GetAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
