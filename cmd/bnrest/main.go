package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"bnrest/internal/infrastructure/config"
	"bnrest/internal/infrastructure/exchange/binance"
	"bnrest/internal/infrastructure/logger"
	"bnrest/internal/infrastructure/svc"
)

const (
	defaultConfigPath = "configs/config.toml"
	defaultEnvFile    = ".env"
)

var (
	configPath string
	envFile    string
	verbose    bool

	cfg *config.Config
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bnrest"
	app.Usage = "signed and public calls against the Binance spot REST API"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       defaultConfigPath,
			Usage:       "path to config.toml; defaults apply when the default path is absent",
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "env-file",
			Value:       defaultEnvFile,
			Usage:       "dotenv file providing APIKEY and SECRETKEY",
			Destination: &envFile,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "log at debug level",
			Destination: &verbose,
		},
	}
	app.Before = setup
	app.Commands = []*cli.Command{
		pingCommand,
		timeCommand,
		depthCommand,
		callCommand,
		endpointsCommand,
		journalCommand,
	}
	return app
}

func setup(c *cli.Context) error {
	if err := loadEnvFile(envFile, c.IsSet("env-file")); err != nil {
		return err
	}

	loaded, err := loadConfig(configPath, c.IsSet("config"))
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger.SetupWriter(c.App.ErrWriter, level)
	return nil
}

// loadEnvFile loads path into the environment without overriding variables
// already set. A missing default file is not an error.
func loadEnvFile(path string, explicit bool) error {
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	loaded, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return loaded, nil
}

// setupService resolves credentials and builds the service context.
func setupService(c *cli.Context) (*svc.ServiceContext, error) {
	creds, err := binance.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	return svc.New(c.Context, cfg, creds)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("bnrest failed")
		stop()
		os.Exit(1)
	}
}
