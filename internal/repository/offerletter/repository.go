package offerletter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pratham13103/OfferLetter-Verification/internal/dates"
	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

// CreateParams: сырые поля из запроса, даты в формате MM-DD-YYYY.
type CreateParams struct {
	Name      string
	Duration  string
	StartDate string
	EndDate   string
}

// Create normalizes both dates to the long form and inserts the record.
// Any failure, including an unavailable database, is reported as
// a *dto.ValidationError.
func (r *Repository) Create(ctx context.Context, p CreateParams) (int64, error) {
	start, err := dates.NormalizeIntake(p.StartDate)
	if err != nil {
		return 0, &dto.ValidationError{Field: "start_date", Err: err}
	}

	end, err := dates.NormalizeIntake(p.EndDate)
	if err != nil {
		return 0, &dto.ValidationError{Field: "end_date", Err: err}
	}

	query := `
insert into offer_letters
  (name, duration, start_date, end_date)
values
  ($1, $2, $3, $4)
returning id;
`
	var id int64
	err = r.pool.QueryRow(ctx, query, p.Name, p.Duration, start, end).Scan(&id)
	if err != nil {
		return 0, &dto.ValidationError{Err: fmt.Errorf("pool.QueryRow: %w", err)}
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*dto.OfferLetter, error) {
	query := `
select id, name, duration, start_date, end_date, to_char(generated_on, 'YYYY-MM-DD')
from offer_letters
where id = $1;
`
	var o dto.OfferLetter

	err := r.pool.QueryRow(ctx, query, id).
		Scan(&o.ID, &o.Name, &o.Duration, &o.StartDate, &o.EndDate, &o.GeneratedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return &o, nil
}

// List returns every record ordered by id. An empty table is dto.ErrNotFound.
func (r *Repository) List(ctx context.Context) ([]dto.OfferLetter, error) {
	query := `
select id, name, duration, start_date, end_date, to_char(generated_on, 'YYYY-MM-DD')
from offer_letters
order by id;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.OfferLetter
	for rows.Next() {
		var o dto.OfferLetter

		err = rows.Scan(&o.ID, &o.Name, &o.Duration, &o.StartDate, &o.EndDate, &o.GeneratedOn)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	if len(out) == 0 {
		return nil, dto.ErrNotFound
	}

	return out, nil
}

// ListSummaries returns (id, name) pairs ordered by id. An empty table is
// dto.ErrNotFound.
func (r *Repository) ListSummaries(ctx context.Context) ([]dto.OfferLetterSummary, error) {
	query := `
select id, name
from offer_letters
order by id;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.OfferLetterSummary
	for rows.Next() {
		var s dto.OfferLetterSummary
		if err = rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	if len(out) == 0 {
		return nil, dto.ErrNotFound
	}

	return out, nil
}
