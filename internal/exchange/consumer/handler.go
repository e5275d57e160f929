package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

// handler пишет события по офферным письмам в аудит; невалидные уходят в DLQ.
type handler struct {
	events      EventsRepository
	log         zerolog.Logger
	commitOnDLQ bool
}

func (h *handler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *handler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if ok := h.process(sess.Context(), msg); ok {
			sess.MarkMessage(msg, "")
		}
	}

	return nil
}

// process returns true when the offset may be committed.
func (h *handler) process(ctx context.Context, msg *sarama.ConsumerMessage) bool {
	var env envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("invalid_json: %v", err))
		return h.commitOnDLQ
	}

	if env.MessageID == uuid.Nil {
		h.toDLQ(ctx, msg, "missing required field message_id")
		return h.commitOnDLQ
	}

	exists, err := h.events.ExistsMessage(ctx, env.MessageID)
	if err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("events.ExistsMessage: %v", err))
		return h.commitOnDLQ
	}

	if exists {
		h.log.Info().
			Str("message_id", env.MessageID.String()).
			Int64("offer_letter_id", env.OfferLetterID).
			Msg("duplicate message, skip (idempotency)")
		return true // уже обработано ранее
	}

	if verr := validateEnvelope(env); verr != "" {
		h.toDLQ(ctx, msg, verr)
		return h.commitOnDLQ
	}

	var payload letterPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("invalid_payload: %v", err))
		return h.commitOnDLQ
	}

	if verr := validatePayload(env.Kind, env.OfferLetterID, payload); verr != "" {
		h.toDLQ(ctx, msg, verr)
		return h.commitOnDLQ
	}

	err = h.events.InsertEvent(ctx, dto.LetterEvent{
		MessageID:     env.MessageID,
		Kind:          env.Kind,
		OfferLetterID: env.OfferLetterID,
		Topic:         msg.Topic,
		Key:           string(msg.Key),
		Partition:     int(msg.Partition),
		Offset:        msg.Offset,
		Payload:       append([]byte(nil), msg.Value...),
	})
	if err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("events.InsertEvent: %v", err))
		return h.commitOnDLQ
	}

	h.log.Debug().
		Str("message_id", env.MessageID.String()).
		Str("kind", env.Kind).
		Int64("offer_letter_id", env.OfferLetterID).
		Msg("event stored")

	return true
}

func (h *handler) toDLQ(ctx context.Context, msg *sarama.ConsumerMessage, reason string) {
	err := h.events.InsertDLQ(ctx, dto.KafkaDLQ{
		Topic:   msg.Topic,
		Key:     string(msg.Key),
		Payload: append([]byte(nil), msg.Value...),
		Error:   reason,
	})
	if err != nil {
		h.log.Error().Err(err).Str("reason", reason).Msg("events.InsertDLQ")
	}

	h.log.Warn().
		Str("topic", msg.Topic).
		Int32("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("reason", reason).
		Msg("message sent to DLQ")
}
