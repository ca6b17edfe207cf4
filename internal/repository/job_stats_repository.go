package repository

import (
	"context"
	"database/sql"
	"time"

	"jobseek/internal/database"
	"jobseek/internal/domain/job"
)

// JobStatsRepository answers aggregate questions about the primary store.
type JobStatsRepository interface {
	CountActive(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	LevelStats(ctx context.Context) ([]job.LevelStat, error)
}

type PostgresJobStatsRepository struct {
	db database.DB
}

func NewPostgresJobStatsRepository(db database.DB) *PostgresJobStatsRepository {
	return &PostgresJobStatsRepository{db: db}
}

func (r *PostgresJobStatsRepository) CountActive(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, ErrNilDB
	}
	var c int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active = TRUE`).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresJobStatsRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if r == nil || r.db == nil {
		return 0, ErrNilDB
	}
	var c int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE created_at >= $1`, since).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresJobStatsRepository) LevelStats(ctx context.Context) ([]job.LevelStat, error) {
	if r == nil || r.db == nil {
		return nil, ErrNilDB
	}
	rows, err := r.db.Query(ctx,
		`SELECT experience_level, COUNT(*) AS total_jobs, MAX(posted_date) AS last_posted
		 FROM jobs
		 GROUP BY experience_level
		 ORDER BY total_jobs DESC, experience_level ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.LevelStat, 0)
	for rows.Next() {
		var level sql.NullString
		var total int64
		var last sql.NullTime
		if err := rows.Scan(&level, &total, &last); err != nil {
			return nil, err
		}
		st := job.LevelStat{Level: job.LevelMid, TotalJobs: total}
		if level.Valid && level.String != "" {
			st.Level = level.String
		}
		if last.Valid {
			st.LastPostedDate = last.Time.UTC()
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
