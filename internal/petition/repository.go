package petition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const signatureColumns = "id, signature_number, name, phone, email, state, created_at"

// Repository provides access to the signatures table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a repository over the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a signature. The signature_number comes from the table's
// identity column, so concurrent inserts never collide and numbers are never
// reused after a delete.
func (r *Repository) Create(ctx context.Context, input CreateSignatureInput) (*Signature, error) {
	const query = `
        INSERT INTO signatures (id, name, phone, email, state)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + signatureColumns

	var email, state *string
	if v := strings.TrimSpace(input.Email); v != "" {
		email = &v
	}
	if v := strings.TrimSpace(input.State); v != "" {
		state = &v
	}

	row := r.pool.QueryRow(ctx, query,
		uuid.New(),
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Phone),
		email,
		state,
	)

	return scanSignature(row)
}

// Get fetches one signature by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Signature, error) {
	const query = `SELECT ` + signatureColumns + ` FROM signatures WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanSignature(row)
}

// List returns one page plus the total count for the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Signature, int64, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if search := strings.TrimSpace(filter.Search); search != "" {
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d)", idx, idx))
		args = append(args, "%"+escapeLike(search)+"%")
		idx++
	}
	if filter.DateFrom != nil {
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, *filter.DateFrom)
		idx++
	}
	if filter.DateTo != nil {
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", idx))
		args = append(args, *filter.DateTo)
		idx++
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM signatures"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + signatureColumns + " FROM signatures" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	signatures, err := collectSignatures(rows)
	if err != nil {
		return nil, 0, err
	}

	return signatures, total, nil
}

// ListAll returns every signature ordered by signature_number ascending,
// for the CSV export.
func (r *Repository) ListAll(ctx context.Context) ([]Signature, error) {
	const query = `SELECT ` + signatureColumns + ` FROM signatures ORDER BY signature_number ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSignatures(rows)
}

// Recent returns the latest signatures, most recent first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Signature, error) {
	const query = `SELECT ` + signatureColumns + ` FROM signatures ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSignatures(rows)
}

// Delete removes a signature permanently. The identity sequence is not reset,
// so the removed signature_number is never handed out again.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM signatures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountSince counts total signatures plus those created at or after each boundary.
func (r *Repository) CountSince(ctx context.Context, today, week, month time.Time) (total, todayN, weekN, monthN int64, err error) {
	const query = `
        SELECT count(*),
               count(*) FILTER (WHERE created_at >= $1),
               count(*) FILTER (WHERE created_at >= $2),
               count(*) FILTER (WHERE created_at >= $3)
        FROM signatures`

	err = r.pool.QueryRow(ctx, query, today, week, month).Scan(&total, &todayN, &weekN, &monthN)
	return total, todayN, weekN, monthN, err
}

// DailyTrend returns per-day counts from the given boundary, ascending by day.
func (r *Repository) DailyTrend(ctx context.Context, since time.Time) ([]DailyCount, error) {
	const query = `
        SELECT to_char(created_at::date, 'YYYY-MM-DD'), count(*)
        FROM signatures
        WHERE created_at >= $1
        GROUP BY created_at::date
        ORDER BY created_at::date ASC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trend []DailyCount
	for rows.Next() {
		var dc DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		trend = append(trend, dc)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return trend, nil
}

func scanSignature(row pgx.Row) (*Signature, error) {
	var s Signature
	if err := row.Scan(&s.ID, &s.SignatureNumber, &s.Name, &s.Phone, &s.Email, &s.State, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func collectSignatures(rows pgx.Rows) ([]Signature, error) {
	var signatures []Signature
	for rows.Next() {
		sig, err := scanSignature(rows)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, *sig)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return signatures, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
