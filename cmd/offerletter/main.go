package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pratham13103/OfferLetter-Verification/internal/config"
	"github.com/pratham13103/OfferLetter-Verification/library/yamlreader"
)

const defaultConfigPath = "config/application-local.yaml"

var (
	configPath string
	logLevel   string
	logPretty  bool
)

func main() {
	root := &cobra.Command{
		Use:           "offerletter",
		Short:         "Offer letter service: records in Postgres, .docx generation from a template",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: runServe,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (env CONFIG_PATH)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "zerolog level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "human-readable console log")

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("команда завершилась с ошибкой")
		os.Exit(1)
	}
}

func setupLogging() error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if logPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return nil
}

func resolveConfigPath() string {
	_ = godotenv.Load(".env")

	if configPath != "" {
		return configPath
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}

	return defaultConfigPath
}

func loadConfig() (*config.Config, error) {
	path := resolveConfigPath()

	cfg, err := yamlreader.NewConfig[config.Config](path)
	if err != nil {
		log.Error().Str("path", path).Err(err).Msg("ошибка чтения конфигурации приложения")
		return nil, err
	}

	return cfg, nil
}
