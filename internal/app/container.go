package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"jobseek/internal/config"
	"jobseek/internal/database"
	"jobseek/internal/database/migration"
	dbpostgres "jobseek/internal/database/postgres"
	"jobseek/internal/infrastructure/cache"
	"jobseek/internal/pipeline"
	"jobseek/internal/repository"
	"jobseek/internal/scheduler"
	"jobseek/internal/searchindex"
	"jobseek/internal/usecase"
	"jobseek/internal/ws"
	"jobseek/migrations"
)

// Container owns every long-lived dependency of the service. The server and
// the CLI both build one; only the server starts the hub and scheduler.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Jobs  *repository.PostgresJobRepository
	Index searchindex.Index
	Cache usecase.SearchCache
	Hub   *ws.Hub

	ImportPipeline *pipeline.ImportPipeline
	SyncPipeline   *pipeline.SyncPipeline
	Scheduler      *scheduler.Scheduler

	Import usecase.ImportUsecase
	Search usecase.JobSearchUsecase
	Sync   usecase.SyncUsecase
	Stats  usecase.StatsUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	mig := migration.Runner{Dir: cfg.App.MigrationsDir, FS: migrations.FS, Logger: logger}
	if _, err := mig.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	index, err := searchindex.NewSQLiteIndex(cfg.Index.Path)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db, Index: index}

	cacheHealth, err := c.openCache(cfg.Redis)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Hub = ws.NewHub(logger)

	c.ImportPipeline = pipeline.NewImportPipeline(c.Jobs, cfg.Import.BatchSize, time.Now, logger)
	c.SyncPipeline = pipeline.NewSyncPipeline(c.Jobs, index, cfg.Sync.PageSize, logger)
	c.Scheduler = scheduler.New(c.SyncPipeline, cfg.Sync.Schedule, cfg.Sync.OnStartup, logger)

	c.Import = usecase.NewImportUsecase(c.ImportPipeline, c.Hub, logger)
	c.Search = usecase.NewJobSearchUsecase(index, c.Cache, logger)
	c.Sync = usecase.NewSyncUsecase(c.SyncPipeline, c.Cache, cfg.Sync.ClearCache, c.Hub, logger)
	c.Stats = usecase.NewStatsUsecase(c.Jobs, index, db, cacheHealth, logger).
		WithOverview(repository.NewPostgresJobStatsRepository(db))

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	if c.Index != nil {
		errs = append(errs, c.Index.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

// cachePinger is nil for the in-process cache, which is always healthy.
type cachePinger interface{ Ping(ctx context.Context) error }

// openCache prefers Redis when a host is configured and falls back to the
// in-process cache when the startup ping fails.
func (c *Container) openCache(cfg config.RedisConfig) (cachePinger, error) {
	if cfg.Host != "" {
		rc := cache.NewRedis(cfg, c.Logger)
		if rc.Connected() {
			c.Cache = rc
			return rc, nil
		}
		c.Logger.Printf("[Cache] falling back to in-process cache host=%s", cfg.Host)
	}
	mc, err := cache.NewMemory(cache.DefaultShards)
	if err != nil {
		return nil, err
	}
	c.Cache = mc
	return nil, nil
}
