package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-stepback/internal"
	"github.com/rocketscienceinc/tictactoe-stepback/internal/config"
)

const (
	serviceName       = "tictactoe-stepback"
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "config.yml"
)

// main - loads the config, builds the logger and runs the session servers until a signal arrives.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "%s stopped: %v\n", serviceName, err)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(configPath())

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: conf.SlogLevel()})).
		With("service", serviceName)

	logger.Info("Config loaded", "log-level", conf.LogLevel, "journal", conf.Redis.Enabled)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("session servers failed: %w", err))
	}
}

// configPath - CONFIG_PATH, or config.yml in the working directory.
func configPath() string {
	if path := os.Getenv(configPathEnv); path != "" {
		return path
	}

	return defaultConfigPath
}
