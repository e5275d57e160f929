package main

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pratham13103/OfferLetter-Verification/internal/api"
	"github.com/pratham13103/OfferLetter-Verification/internal/config"
	"github.com/pratham13103/OfferLetter-Verification/internal/exchange/consumer"
	"github.com/pratham13103/OfferLetter-Verification/internal/exchange/producer"
	"github.com/pratham13103/OfferLetter-Verification/internal/letter"
	"github.com/pratham13103/OfferLetter-Verification/internal/migrations"
	"github.com/pratham13103/OfferLetter-Verification/internal/repository/events"
	"github.com/pratham13103/OfferLetter-Verification/internal/repository/offerletter"
	"github.com/pratham13103/OfferLetter-Verification/library/pg"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (and the audit consumer when Kafka is configured)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	rootCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.Info().Str("kafka", cfg.Kafka.Bootstrap.Get()).Bool("auto_migrate", cfg.Postgres.AutoMigrate.Get()).Msg("config loaded")

	if cfg.Postgres.AutoMigrate.Get() {
		if err := migrateUp(cfg.Postgres.Conn.Value); err != nil {
			return err
		}
	}

	pgClient, err := pg.NewPG(rootCtx, cfg.Postgres.Conn.Value, cfg.Postgres.MaxConns.Get(), log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("postgres init failed")
		return err
	}
	defer pgClient.Close()

	generator, err := letter.NewGenerator(letter.Config{
		TemplatePath: cfg.Template.Path.Get(),
		OutputDir:    cfg.Template.OutputDir.Get(),
	}, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("template init failed")
		return err
	}

	deps := api.ServiceDeps{
		Port:          cfg.UserAPI.Port.Value,
		AllowedOrigin: cfg.UserAPI.AllowedOrigin.Value,
		Letters:       offerletter.NewRepository(pgClient.Pool()),
		Generator:     generator,
		Log:           log.Logger,
	}

	group, gctx := errgroup.WithContext(rootCtx)

	if cfg.KafkaEnabled() {
		eventsRepo := events.NewRepository(pgClient.Pool())

		letterProducer, err := initLetterProducer(cfg)
		if err != nil {
			log.Error().Err(err).Msg("kafka producer init failed")
			return err
		}
		defer func() { _ = letterProducer.Close() }()

		deps.Events = eventsRepo
		deps.Producer = letterProducer

		auditConsumer := consumer.NewAuditRunner(cfg.Brokers(), cfg.Kafka.Topic.Value, cfg.Kafka.GroupID.Value, eventsRepo, log.Logger)

		group.Go(func() error {
			log.Info().Msg("запуск consumer_audit")
			if err := auditConsumer.Start(gctx); err != nil {
				log.Error().Err(err).Msg("consumer_audit завершился с ошибкой")
				return err
			}

			log.Info().Msg("consumer_audit остановлен")

			return nil
		})
	} else {
		log.Warn().Msg("kafka.bootstrap не задан, события выключены")
	}

	apiService := api.NewService(deps)

	group.Go(func() error {
		log.Info().Msg("запуск HTTP API")
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API завершился с ошибкой")
			return err
		}

		log.Info().Msg("HTTP API остановлен")

		return nil
	})

	err = group.Wait()
	if rootCtx.Err() != nil {
		log.Info().Msg("signal received, graceful shutdown done")
	}

	return err
}

func initLetterProducer(cfg *config.Config) (*producer.LetterProducer, error) {
	sp, err := producer.NewSyncProducer(cfg.Brokers())
	if err != nil {
		return nil, err
	}

	return producer.NewLetterProducer(sp, producer.Config{
		Topic:  cfg.Kafka.Topic.Value,
		Source: cfg.Kafka.Source.Value,
	}, log.Logger), nil
}

func migrateUp(conn string) error {
	m, err := migrations.New(conn, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("migrations init failed")
		return err
	}
	defer func() { _ = m.Close() }()

	return m.Up()
}
