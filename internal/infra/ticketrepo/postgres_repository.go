package ticketrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/ticket"
)

const uniqueViolation = "23505"

// PostgresRepository persists tickets and draws in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save implements ticket.Repository.
func (r *PostgresRepository) Save(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tickets (id, member_id, numbers, source, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.MemberID, toInt32s(t.Numbers), t.Source, t.Memo, t.CreatedAt)
	if err != nil {
		return ticket.Ticket{}, err
	}
	return t, nil
}

// ListByMember implements ticket.Repository.
func (r *PostgresRepository) ListByMember(ctx context.Context, memberID int64) ([]ticket.Ticket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, member_id, numbers, source, memo, created_at
		FROM tickets
		WHERE member_id = $1
		ORDER BY created_at, id
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ticket.Ticket, 0)
	for rows.Next() {
		var (
			t       ticket.Ticket
			numbers []int32
			created time.Time
		)
		if err := rows.Scan(&t.ID, &t.MemberID, &numbers, &t.Source, &t.Memo, &created); err != nil {
			return nil, err
		}
		t.Numbers = fromInt32s(numbers)
		t.CreatedAt = created.UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete implements ticket.Repository.
func (r *PostgresRepository) Delete(ctx context.Context, memberID int64, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1 AND member_id = $2`, id, memberID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Record implements ticket.DrawRepository.
func (r *PostgresRepository) Record(ctx context.Context, d ticket.Draw) (ticket.Draw, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO draws (round, numbers, bonus, drawn_on)
		VALUES ($1, $2, $3, $4)
	`, d.Round, toInt32s(d.Numbers), d.Bonus, d.DrawnOn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ticket.Draw{}, ticket.ErrRoundExists
		}
		return ticket.Draw{}, err
	}
	return d, nil
}

// Latest implements ticket.DrawRepository.
func (r *PostgresRepository) Latest(ctx context.Context) (ticket.Draw, bool, error) {
	var (
		d       ticket.Draw
		numbers []int32
		drawn   time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT round, numbers, bonus, drawn_on
		FROM draws
		ORDER BY round DESC
		LIMIT 1
	`).Scan(&d.Round, &numbers, &d.Bonus, &drawn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Draw{}, false, nil
		}
		return ticket.Draw{}, false, err
	}
	d.Numbers = fromInt32s(numbers)
	d.DrawnOn = drawn.UTC()
	return d, true, nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func fromInt32s(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

var (
	_ ticket.Repository     = (*PostgresRepository)(nil)
	_ ticket.DrawRepository = (*PostgresRepository)(nil)
)
