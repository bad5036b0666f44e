package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	SocketPath string `yaml:"socket-path" env:"SOCKET_PATH" env-default:"/ws"`
	Redis      Redis  `yaml:"redis" env-prefix:"REDIS_"`
}

type Redis struct {
	Enabled    bool          `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"PORT" env-default:"6379"`
	JournalKey string        `yaml:"journal-key" env:"JOURNAL_KEY" env-default:"session:rounds"`
	Timeout    time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"2s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// SlogLevel - the configured log level; unknown names fall back to info.
func (that *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(that.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}
