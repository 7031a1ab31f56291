package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobfinder/pkg/job"
)

// JobRepository хранит каталог вакансий.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	reference TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	company_name TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	remote TEXT NOT NULL DEFAULT '',
	salary TEXT NOT NULL DEFAULT '',
	education_level TEXT NOT NULL DEFAULT '',
	publication_date TIMESTAMPTZ,
	url TEXT NOT NULL DEFAULT '',
	logo_url TEXT NOT NULL DEFAULT '',
	provider TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	profile TEXT NOT NULL DEFAULT '',
	skills TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_publication_date ON jobs(publication_date DESC);
`)
	return err
}

// UpsertBatch перезаписывает вакансии по reference (одна запись на id).
func (r *JobRepository) UpsertBatch(ctx context.Context, jobs []job.Job) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	for _, j := range jobs {
		var pub *time.Time
		if !j.PublicationDate.IsZero() {
			t := j.PublicationDate.UTC()
			pub = &t
		}
		_, err = tx.Exec(ctx, `
INSERT INTO jobs (reference, title, company_name, city, country, remote, salary,
	education_level, publication_date, url, logo_url, provider, description, profile, skills, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (reference) DO UPDATE SET
	title = EXCLUDED.title,
	company_name = EXCLUDED.company_name,
	city = EXCLUDED.city,
	country = EXCLUDED.country,
	remote = EXCLUDED.remote,
	salary = EXCLUDED.salary,
	education_level = EXCLUDED.education_level,
	publication_date = EXCLUDED.publication_date,
	url = EXCLUDED.url,
	logo_url = EXCLUDED.logo_url,
	provider = EXCLUDED.provider,
	description = EXCLUDED.description,
	profile = EXCLUDED.profile,
	skills = EXCLUDED.skills,
	updated_at = EXCLUDED.updated_at
`, j.Reference, j.Title, j.CompanyName, j.City, j.Country, j.Remote, j.Salary,
			j.EducationLevel, pub, j.URL, j.LogoURL, j.Provider, j.Description, j.Profile, j.Skills, now)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *JobRepository) GetByReference(ctx context.Context, reference string) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT reference, title, company_name, city, country, remote, salary,
	education_level, publication_date, url, logo_url, provider, description, profile, skills
FROM jobs WHERE reference = $1
`, reference)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *JobRepository) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT reference, title, company_name, city, country, remote, salary,
	education_level, publication_date, url, logo_url, provider, description, profile, skills
FROM jobs
ORDER BY publication_date DESC NULLS LAST, reference
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var pub *time.Time
	if err := row.Scan(&j.Reference, &j.Title, &j.CompanyName, &j.City, &j.Country,
		&j.Remote, &j.Salary, &j.EducationLevel, &pub, &j.URL, &j.LogoURL,
		&j.Provider, &j.Description, &j.Profile, &j.Skills); err != nil {
		return job.Job{}, err
	}
	if pub != nil {
		j.PublicationDate = pub.UTC()
	}
	return j, nil
}
