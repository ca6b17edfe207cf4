package usecase

import (
	"context"
	"log"
	"time"

	"jobseek/internal/domain/job"
)

type StatsUsecase interface {
	Count(ctx context.Context) (CountStats, error)
	Health(ctx context.Context) HealthStatus
	Overview(ctx context.Context) (job.Overview, error)
}

type CountStats struct {
	PrimaryStore int64 `json:"primaryStore"`
	SearchIndex  int64 `json:"searchIndex"`
	// Drift is PrimaryStore - SearchIndex.
	Drift int64 `json:"drift"`
}

type HealthStatus struct {
	DatabaseHealthy bool      `json:"databaseHealthy"`
	CacheHealthy    bool      `json:"cacheHealthy"`
	ServerTime      time.Time `json:"serverTime"`
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type overviewSource interface {
	CountActive(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	LevelStats(ctx context.Context) ([]job.LevelStat, error)
}

type Stats struct {
	store    counter
	index    counter
	db       pinger
	cache    pinger
	overview overviewSource
	now      func() time.Time
	logger   *log.Logger
}

// NewStatsUsecase takes optional db and cache pingers; a nil cache pinger
// reports the in-process cache as healthy.
func NewStatsUsecase(store, index counter, db, cache pinger, logger *log.Logger) *Stats {
	if logger == nil {
		logger = log.Default()
	}
	return &Stats{store: store, index: index, db: db, cache: cache, now: time.Now, logger: logger}
}

// WithOverview enables Overview backed by src.
func (u *Stats) WithOverview(src overviewSource) *Stats {
	u.overview = src
	return u
}

func (u *Stats) Count(ctx context.Context) (CountStats, error) {
	primary, err := u.store.Count(ctx)
	if err != nil {
		u.logger.Printf("[Stats] primary count failed: %v", err)
		return CountStats{}, ErrInternal
	}
	indexed, err := u.index.Count(ctx)
	if err != nil {
		u.logger.Printf("[Stats] index count failed: %v", err)
		return CountStats{}, ErrInternal
	}
	return CountStats{PrimaryStore: primary, SearchIndex: indexed, Drift: primary - indexed}, nil
}

func (u *Stats) Health(ctx context.Context) HealthStatus {
	st := HealthStatus{ServerTime: u.now().UTC(), CacheHealthy: true}
	if u.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		st.DatabaseHealthy = u.db.Ping(pingCtx) == nil
		cancel()
	}
	if u.cache != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		st.CacheHealthy = u.cache.Ping(pingCtx) == nil
		cancel()
	}
	return st
}

// Overview counts jobs created since local midnight as "today".
func (u *Stats) Overview(ctx context.Context) (job.Overview, error) {
	if u.overview == nil {
		u.logger.Printf("[Stats] overview requested but no source configured")
		return job.Overview{}, ErrInternal
	}

	now := u.now()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	total, err := u.store.Count(ctx)
	if err != nil {
		u.logger.Printf("[Stats] primary count failed: %v", err)
		return job.Overview{}, ErrInternal
	}
	active, err := u.overview.CountActive(ctx)
	if err != nil {
		u.logger.Printf("[Stats] active count failed: %v", err)
		return job.Overview{}, ErrInternal
	}
	today, err := u.overview.CountCreatedSince(ctx, midnight)
	if err != nil {
		u.logger.Printf("[Stats] today count failed: %v", err)
		return job.Overview{}, ErrInternal
	}
	levels, err := u.overview.LevelStats(ctx)
	if err != nil {
		u.logger.Printf("[Stats] level stats failed: %v", err)
		return job.Overview{}, ErrInternal
	}

	return job.Overview{
		TotalJobs:  total,
		ActiveJobs: active,
		JobsToday:  today,
		Levels:     levels,
		ServerTime: now.UTC(),
	}, nil
}
