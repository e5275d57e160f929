package consumer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

type EventsRepository interface {
	ExistsMessage(ctx context.Context, messageID uuid.UUID) (bool, error)
	InsertEvent(ctx context.Context, ev dto.LetterEvent) error
	InsertDLQ(ctx context.Context, dlq dto.KafkaDLQ) error
}

type Runner struct {
	brokers   []string
	groupID   string
	topic     string
	handler   *handler
	log       zerolog.Logger
	createCfg func() *sarama.Config
}

// NewAuditRunner читает события офферных писем и сохраняет их в аудит.
func NewAuditRunner(brokers []string, topic, groupID string, events EventsRepository, log zerolog.Logger) *Runner {
	h := &handler{
		events:      events,
		log:         log.With().Str("consumer", "audit").Logger(),
		commitOnDLQ: true,
	}

	createCfg := func() *sarama.Config {
		cfg := sarama.NewConfig()
		cfg.Version = sarama.V3_3_2_0
		cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
		cfg.Consumer.Return.Errors = true
		// коммит управляется вызовами session.MarkMessage
		return cfg
	}

	return &Runner{
		brokers:   brokers,
		groupID:   groupID,
		topic:     topic,
		handler:   h,
		log:       log.With().Str("topic", topic).Str("group", groupID).Logger(),
		createCfg: createCfg,
	}
}

// Start consumes until ctx is canceled. Consume errors are retried after a
// short pause.
func (r *Runner) Start(ctx context.Context) error {
	consumerGroup, err := sarama.NewConsumerGroup(r.brokers, r.groupID, r.createCfg())
	if err != nil {
		return err
	}
	defer func() { _ = consumerGroup.Close() }()

	go func() {
		for err := range consumerGroup.Errors() {
			if err == nil || errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled") {
				continue
			}

			r.log.Error().Err(err).Msg("consumer group error")
		}
	}()

	r.log.Info().Msg("consumer started")
	defer r.log.Info().Msg("consumer stopped")

	for {
		if ctx.Err() != nil {
			return nil
		}

		err := consumerGroup.Consume(ctx, []string{r.topic}, r.handler)
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil
		}

		if err != nil {
			r.log.Error().Err(err).Msg("consume error")

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
}
