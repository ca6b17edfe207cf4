package repository

import (
	"context"
	"errors"
	"fmt"

	"jobseek/internal/database"
	"jobseek/internal/domain/job"
)

var ErrNilDB = errors.New("nil db")

// JobRepository is the primary store for job postings.
type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	SaveAll(ctx context.Context, jobs []job.Job) ([]job.Job, error)
	ListActive(ctx context.Context, afterID int64, limit int) ([]job.Job, error)
	Count(ctx context.Context) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const insertJobSQL = `INSERT INTO jobs
	(title, company, description, skills, location, job_url, min_salary, max_salary, experience_level, posted_date, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id`

const selectJobColumns = `id, title, company, description, skills, location, job_url,
	min_salary, max_salary, experience_level, posted_date, is_active`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if r == nil || r.db == nil {
		return job.Job{}, ErrNilDB
	}
	return insertJob(ctx, r.db, j)
}

// SaveAll writes every job in one transaction. Either all rows are stored
// and returned with their assigned ids, or none are.
func (r *PostgresJobRepository) SaveAll(ctx context.Context, jobs []job.Job) ([]job.Job, error) {
	if r == nil || r.db == nil {
		return nil, ErrNilDB
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	out := make([]job.Job, 0, len(jobs))
	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		for i, j := range jobs {
			saved, err := insertJob(ctx, tx, j)
			if err != nil {
				return fmt.Errorf("insert job %d: %w", i, err)
			}
			out = append(out, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns up to limit active jobs with id > afterID, ordered by id.
func (r *PostgresJobRepository) ListActive(ctx context.Context, afterID int64, limit int) ([]job.Job, error) {
	if r == nil || r.db == nil {
		return nil, ErrNilDB
	}
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit %d", limit)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+selectJobColumns+`
		 FROM jobs
		 WHERE is_active = TRUE AND id > $1
		 ORDER BY id ASC
		 LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0, limit)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Description, &j.Skills, &j.Location, &j.JobURL,
			&j.MinSalary, &j.MaxSalary, &j.ExperienceLevel, &j.PostedDate, &j.IsActive,
		); err != nil {
			return nil, err
		}
		if j.Skills == nil {
			j.Skills = []string{}
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Count(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, ErrNilDB
	}
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func insertJob(ctx context.Context, q database.Querier, j job.Job) (job.Job, error) {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}

	var id int64
	err := q.QueryRow(ctx, insertJobSQL,
		j.Title, j.Company, j.Description, skills, j.Location, j.JobURL,
		j.MinSalary, j.MaxSalary, j.ExperienceLevel, j.PostedDate, j.IsActive,
	).Scan(&id)
	if err != nil {
		return job.Job{}, err
	}
	j.ID = id
	j.Skills = skills
	return j, nil
}
