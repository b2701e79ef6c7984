package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/FrankTrani/Stock-Prediction/internal/cli"
	"github.com/FrankTrani/Stock-Prediction/internal/config"
	"github.com/FrankTrani/Stock-Prediction/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configDir())
	if err != nil {
		return err
	}

	logger := logging.NewLoggerWithConfig(logging.DefaultLogConfig())
	return cli.NewRootCmd(cfg, logger).Execute()
}

// configDir resolves the config directory before cobra parses flags, so
// configuration is loaded once and shared by every command. Precedence:
// --config flag, SCREENER_CONFIG_DIR, then the default directory.
func configDir() string {
	args := os.Args[1:]
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case len(arg) > len("--config=") && arg[:len("--config=")] == "--config=":
			return arg[len("--config="):]
		}
	}
	if dir := os.Getenv("SCREENER_CONFIG_DIR"); dir != "" {
		return dir
	}
	return config.DefaultConfigDir()
}
