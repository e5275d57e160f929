package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
	"github.com/pratham13103/OfferLetter-Verification/internal/repository/events"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *events.Repository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock, events.NewRepository(mock)
}

func TestExistsMessage(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`from offer_letter_events`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`from offer_letter_events`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`from offer_letter_events`).
		WithArgs(id).
		WillReturnError(errors.New("timeout"))

	ok, err := repo.ExistsMessage(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsMessage(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.ExistsMessage(context.Background(), id)
	assert.Error(t, err)
}

func TestInsertEvent(t *testing.T) {
	mock, repo := newMock(t)

	e := dto.LetterEvent{
		MessageID:     uuid.New(),
		Kind:          "created",
		OfferLetterID: 5,
		Topic:         "offer-letters",
		Key:           "5",
		Partition:     0,
		Offset:        11,
		Payload:       json.RawMessage(`{"id":5}`),
	}

	mock.ExpectExec(`insert into offer_letter_events`).
		WithArgs(e.MessageID, "created", int64(5), "offer-letters", "5", 0, int64(11), `{"id":5}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.InsertEvent(context.Background(), e))
}

func TestInsertDLQ(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec(`insert into offer_letter_dlq`).
		WithArgs("offer-letters", "k", "not json", "invalid json").
		WillReturnError(errors.New("disk full"))

	err := repo.InsertDLQ(context.Background(), dto.KafkaDLQ{
		Topic: "offer-letters", Key: "k", Payload: json.RawMessage("not json"), Error: "invalid json",
	})
	assert.ErrorContains(t, err, "disk full")
}

func TestListEvents(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`from offer_letter_events`).
		WithArgs(100, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "message_id", "kind", "offer_letter_id", "topic", "msg_key", "partition", "offset", "payload", "received_at",
		}).AddRow(int64(2), id, "generated", int64(5), "offer-letters", "5", 0, int64(12), []byte(`{"id":5}`), "2025-01-10T09:00:00+00"))

	got, err := repo.ListEvents(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].MessageID)
	assert.Equal(t, "generated", got[0].Kind)
	assert.JSONEq(t, `{"id":5}`, string(got[0].Payload))
}

func TestListDLQEmpty(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`from offer_letter_dlq`).
		WithArgs(10, 20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "topic", "msg_key", "payload", "error", "received_at"}))

	got, err := repo.ListDLQ(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
