package generations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const generationColumns = "id, form_id, status, error, size_bytes, sections, duration_ms, created_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a generation.
func (r *PGRepo) Create(ctx context.Context, gen Generation) error {
	if gen.ID == "" || gen.FormID == "" {
		return ErrInvalidInput
	}
	const query = `
INSERT INTO generations (
    id, form_id, status, error, size_bytes, sections, duration_ms, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		gen.ID,
		gen.FormID,
		string(gen.Status),
		gen.Error,
		gen.SizeBytes,
		gen.Sections,
		gen.DurationMs,
		gen.CreatedAt,
	)
	return err
}

// GetByID returns a generation by ID within a form.
func (r *PGRepo) GetByID(ctx context.Context, formID, generationID string) (Generation, error) {
	const query = `
SELECT id, form_id, status, error, size_bytes, sections, duration_ms, created_at
FROM generations
WHERE id = $1 AND form_id = $2
LIMIT 1`
	gen, err := scanGeneration(r.DB.QueryRowContext(ctx, query, generationID, formID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Generation{}, ErrNotFound
		}
		return Generation{}, err
	}
	return gen, nil
}

// ListByForm lists generations ordered newest-first.
func (r *PGRepo) ListByForm(ctx context.Context, formID string, limit, offset int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query, args, err := psql.Select(generationColumns).
		From("generations").
		Where(sq.Eq{"form_id": formID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Generation{}
	for rows.Next() {
		gen, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, gen)
	}
	return out, rows.Err()
}

// DeleteByForm removes the generations of a form.
func (r *PGRepo) DeleteByForm(ctx context.Context, formID string) (int, error) {
	query, args, err := psql.Delete("generations").
		Where(sq.Eq{"form_id": formID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (Generation, error) {
	var gen Generation
	var status string
	err := row.Scan(
		&gen.ID,
		&gen.FormID,
		&status,
		&gen.Error,
		&gen.SizeBytes,
		&gen.Sections,
		&gen.DurationMs,
		&gen.CreatedAt,
	)
	gen.Status = Status(status)
	return gen, err
}

var _ Repo = (*PGRepo)(nil)
