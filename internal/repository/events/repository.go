package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository хранит аудит событий по офферным письмам и DLQ.
type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ExistsMessage(ctx context.Context, messageID uuid.UUID) (bool, error) {
	query := `
select 1
from offer_letter_events
where message_id = $1::uuid
limit 1;
`
	var x int

	err := r.pool.QueryRow(ctx, query, messageID).Scan(&x)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return true, nil
}

// InsertEvent stores an event once; a repeated message_id is ignored.
func (r *Repository) InsertEvent(ctx context.Context, e dto.LetterEvent) error {
	query := `
insert into offer_letter_events
  (message_id, kind, offer_letter_id, topic, msg_key, partition, "offset", payload, received_at)
values
  ($1::uuid, $2, $3, $4, $5, $6, $7, $8::jsonb, now())
on conflict (message_id) do nothing;
`
	_, err := r.pool.Exec(ctx, query,
		e.MessageID, e.Kind, e.OfferLetterID, e.Topic, e.Key, e.Partition, e.Offset, string(e.Payload))
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (r *Repository) InsertDLQ(ctx context.Context, dlq dto.KafkaDLQ) error {
	query := `
insert into offer_letter_dlq
  (topic, msg_key, payload, error, received_at)
values
  ($1, $2, $3, $4, now());
`
	_, err := r.pool.Exec(ctx, query, dlq.Topic, dlq.Key, string(dlq.Payload), dlq.Error)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

// ListEvents returns the newest events first. Empty audit is not an error.
func (r *Repository) ListEvents(ctx context.Context, limit, offset int) ([]dto.LetterEvent, error) {
	query := `
select id, message_id, kind, offer_letter_id, topic, msg_key, partition, "offset", payload,
       to_char(received_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
from offer_letter_events
order by id desc
limit $1 offset $2;
`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	out := make([]dto.LetterEvent, 0)
	for rows.Next() {
		var (
			e       dto.LetterEvent
			payload []byte
		)

		err = rows.Scan(&e.ID, &e.MessageID, &e.Kind, &e.OfferLetterID, &e.Topic, &e.Key,
			&e.Partition, &e.Offset, &payload, &e.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		e.Payload = payload
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func (r *Repository) ListDLQ(ctx context.Context, limit, offset int) ([]dto.KafkaDLQ, error) {
	query := `
select id, topic, msg_key, payload, error, to_char(received_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
from offer_letter_dlq
order by id desc
limit $1 offset $2;
`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	out := make([]dto.KafkaDLQ, 0)
	for rows.Next() {
		var (
			d       dto.KafkaDLQ
			payload []byte
		)

		err = rows.Scan(&d.ID, &d.Topic, &d.Key, &payload, &d.Error, &d.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		d.Payload = payload
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}
