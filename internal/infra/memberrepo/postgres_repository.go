package memberrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
)

const uniqueViolation = "23505"

// PostgresRepository persists members in Postgres. The birth input is kept
// as a JSONB document.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new member row.
func (r *PostgresRepository) Create(ctx context.Context, m auth.Member) (auth.Member, error) {
	birth, err := encodeBirth(m.Birth)
	if err != nil {
		return auth.Member{}, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO members (email, nickname, password_hash, birth)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, nickname, password_hash, birth, created_at
	`, m.Email, m.Nickname, m.PasswordHash, birth)
	created, err := scanMember(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.Member{}, auth.ErrEmailExists
		}
		return auth.Member{}, err
	}
	return created, nil
}

// GetByEmail fetches a member by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.Member, bool, error) {
	return r.queryOne(ctx, `
		SELECT id, email, nickname, password_hash, birth, created_at
		FROM members
		WHERE email = $1
		LIMIT 1
	`, email)
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.Member, bool, error) {
	return r.queryOne(ctx, `
		SELECT id, email, nickname, password_hash, birth, created_at
		FROM members
		WHERE id = $1
		LIMIT 1
	`, id)
}

// UpdateBirth stores the member's birth input.
func (r *PostgresRepository) UpdateBirth(ctx context.Context, id int64, birth saju.BirthInput) (auth.Member, bool, error) {
	payload, err := encodeBirth(&birth)
	if err != nil {
		return auth.Member{}, false, err
	}
	return r.queryOne(ctx, `
		UPDATE members SET birth = $2
		WHERE id = $1
		RETURNING id, email, nickname, password_hash, birth, created_at
	`, id, payload)
}

func (r *PostgresRepository) queryOne(ctx context.Context, sql string, args ...any) (auth.Member, bool, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return auth.Member{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.Member{}, false, rows.Err()
	}
	m, err := scanMember(rows)
	if err != nil {
		return auth.Member{}, false, err
	}
	return m, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (auth.Member, error) {
	var (
		m       auth.Member
		birth   []byte
		created time.Time
	)
	if err := row.Scan(&m.ID, &m.Email, &m.Nickname, &m.PasswordHash, &birth, &created); err != nil {
		return auth.Member{}, err
	}
	if len(birth) > 0 {
		var b saju.BirthInput
		if err := json.Unmarshal(birth, &b); err != nil {
			return auth.Member{}, err
		}
		m.Birth = &b
	}
	m.CreatedAt = created.UTC()
	return m, nil
}

func encodeBirth(b *saju.BirthInput) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

var _ auth.Repository = (*PostgresRepository)(nil)
