package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

type Config struct {
	Topic  string
	Source string
}

// LetterProducer публикует события жизненного цикла офферных писем.
type LetterProducer struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	now    func() time.Time
	log    zerolog.Logger
}

func NewLetterProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *LetterProducer {
	return &LetterProducer{
		sp:     sp,
		topic:  cfg.Topic,
		source: cfg.Source,
		now:    time.Now,
		log:    log.With().Str("component", "LetterProducer").Logger(),
	}
}

// NewSyncProducer connects a synchronous producer to the given brokers.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_3_2_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	sp, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("sarama.NewSyncProducer: %w", err)
	}

	return sp, nil
}

func (p *LetterProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}

	return p.sp.Close()
}

func (p *LetterProducer) ProduceCreated(ctx context.Context, rec dto.OfferLetter) error {
	return p.produce(ctx, KindCreated, rec, "")
}

func (p *LetterProducer) ProduceGenerated(ctx context.Context, rec dto.OfferLetter, fileName string) error {
	return p.produce(ctx, KindGenerated, rec, fileName)
}

func (p *LetterProducer) produce(ctx context.Context, kind string, rec dto.OfferLetter, fileName string) error {
	env := Envelope[LetterPayload]{
		Kind:          kind,
		MessageID:     uuid.New(),
		OfferLetterID: rec.ID,
		Payload: LetterPayload{
			OfferLetterID: rec.ID,
			Name:          rec.Name,
			Duration:      rec.Duration,
			StartDate:     rec.StartDate,
			EndDate:       rec.EndDate,
			FileName:      fileName,
		},
		Timestamp: p.now().UTC(),
		Source:    p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return p.send(ctx, strconv.FormatInt(rec.ID, 10), body, map[string]string{
		"event-kind":   kind,
		"message-id":   env.MessageID.String(),
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *LetterProducer) send(_ context.Context, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", p.topic).
			Str("key", key).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", p.topic).
		Str("key", key).
		Str("kind", headers["event-kind"]).
		Int32("partition", part).
		Int64("offset", off).
		Msg("kafka message sent")

	return nil
}
