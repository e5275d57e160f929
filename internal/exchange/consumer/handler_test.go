package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

type fakeEvents struct {
	seen      map[uuid.UUID]bool
	events    []dto.LetterEvent
	dlq       []dto.KafkaDLQ
	existsErr error
	insertErr error
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{seen: map[uuid.UUID]bool{}}
}

func (f *fakeEvents) ExistsMessage(_ context.Context, id uuid.UUID) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}

	return f.seen[id], nil
}

func (f *fakeEvents) InsertEvent(_ context.Context, ev dto.LetterEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}

	f.seen[ev.MessageID] = true
	f.events = append(f.events, ev)

	return nil
}

func (f *fakeEvents) InsertDLQ(_ context.Context, d dto.KafkaDLQ) error {
	f.dlq = append(f.dlq, d)
	return nil
}

func newHandler(events EventsRepository) *handler {
	return &handler{events: events, log: zerolog.Nop(), commitOnDLQ: true}
}

func message(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:     "offer-letters",
		Key:       []byte("5"),
		Value:     []byte(value),
		Partition: 0,
		Offset:    3,
	}
}

func created(id uuid.UUID) string {
	return fmt.Sprintf(`{
  "kind": "created",
  "message_id": %q,
  "offer_letter_id": 5,
  "payload": {"offer_letter_id": 5, "name": "Jane Doe", "duration": "3 months",
              "start_date": "January 15, 2025", "end_date": "April 15, 2025"},
  "timestamp": "2025-01-10T09:00:00Z",
  "source": "offer-letter-api"
}`, id)
}

func TestProcessStoresEvent(t *testing.T) {
	events := newFakeEvents()
	h := newHandler(events)
	id := uuid.New()

	ok := h.process(context.Background(), message(created(id)))
	require.True(t, ok)

	require.Len(t, events.events, 1)
	ev := events.events[0]
	assert.Equal(t, id, ev.MessageID)
	assert.Equal(t, "created", ev.Kind)
	assert.Equal(t, int64(5), ev.OfferLetterID)
	assert.Equal(t, "5", ev.Key)
	assert.Equal(t, int64(3), ev.Offset)
	assert.Empty(t, events.dlq)
}

func TestProcessDuplicateIsSkipped(t *testing.T) {
	events := newFakeEvents()
	h := newHandler(events)
	id := uuid.New()

	require.True(t, h.process(context.Background(), message(created(id))))
	require.True(t, h.process(context.Background(), message(created(id))))

	assert.Len(t, events.events, 1)
	assert.Empty(t, events.dlq)
}

func TestProcessInvalidMessagesGoToDLQ(t *testing.T) {
	id := uuid.New()

	cases := map[string]struct {
		value  string
		reason string
	}{
		"not json": {
			value:  `{`,
			reason: "invalid_json",
		},
		"no message id": {
			value:  `{"kind":"created","offer_letter_id":5,"payload":{}}`,
			reason: "message_id",
		},
		"unknown kind": {
			value:  fmt.Sprintf(`{"kind":"deleted","message_id":%q,"offer_letter_id":5,"payload":{}}`, id),
			reason: "kind",
		},
		"bad id": {
			value:  fmt.Sprintf(`{"kind":"created","message_id":%q,"offer_letter_id":0,"payload":{}}`, id),
			reason: "offer_letter_id",
		},
		"corrupt date": {
			value: fmt.Sprintf(`{"kind":"created","message_id":%q,"offer_letter_id":5,
				"payload":{"offer_letter_id":5,"name":"Jane","start_date":"15/01/2025","end_date":"April 15, 2025"}}`, id),
			reason: "payload.start_date",
		},
		"generated without file": {
			value: fmt.Sprintf(`{"kind":"generated","message_id":%q,"offer_letter_id":5,
				"payload":{"offer_letter_id":5,"name":"Jane","start_date":"2025-01-15","end_date":"2025-04-15"}}`, id),
			reason: "payload.file_name",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			events := newFakeEvents()
			h := newHandler(events)

			ok := h.process(context.Background(), message(tc.value))
			assert.True(t, ok, "commitOnDLQ")

			assert.Empty(t, events.events)
			require.Len(t, events.dlq, 1)
			assert.Contains(t, events.dlq[0].Error, tc.reason)
			assert.Equal(t, tc.value, string(events.dlq[0].Payload))
		})
	}
}

func TestProcessRepositoryErrors(t *testing.T) {
	events := newFakeEvents()
	events.existsErr = errors.New("db down")

	h := newHandler(events)
	h.commitOnDLQ = false

	assert.False(t, h.process(context.Background(), message(created(uuid.New()))))
	require.Len(t, events.dlq, 1)
	assert.Contains(t, events.dlq[0].Error, "db down")

	events = newFakeEvents()
	events.insertErr = errors.New("constraint")
	h = newHandler(events)

	assert.True(t, h.process(context.Background(), message(created(uuid.New()))))
	require.Len(t, events.dlq, 1)
	assert.Contains(t, events.dlq[0].Error, "events.InsertEvent")
}
