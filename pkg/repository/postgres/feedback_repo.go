package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobfinder/pkg/feedback"
)

// FeedbackRepository хранит оценки вакансий: последняя запись побеждает.
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) (*FeedbackRepository, error) {
	r := &FeedbackRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FeedbackRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS job_feedback (
	job_reference TEXT PRIMARY KEY,
	value TEXT NOT NULL CHECK (value IN ('like', 'dislike')),
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *FeedbackRepository) Set(ctx context.Context, e feedback.Entry) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_feedback (job_reference, value, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (job_reference) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`, e.JobReference, e.Value, e.UpdatedAt)
	return err
}

func (r *FeedbackRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT job_reference, value FROM job_feedback`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var ref, value string
		if err := rows.Scan(&ref, &value); err != nil {
			return nil, err
		}
		out[ref] = value
	}
	return out, rows.Err()
}
