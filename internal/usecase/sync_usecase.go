package usecase

import (
	"context"
	"errors"
	"log"

	"jobseek/internal/pipeline"
)

type SyncUsecase interface {
	Trigger(ctx context.Context) (pipeline.SyncReport, error)
	Status() SyncStatus
}

type SyncStatus struct {
	State      pipeline.State       `json:"state"`
	Running    bool                 `json:"running"`
	LastReport *pipeline.SyncReport `json:"lastReport"`
}

type syncRunner interface {
	Run(ctx context.Context) (pipeline.SyncReport, error)
	State() pipeline.State
	Running() bool
	LastReport() (pipeline.SyncReport, bool)
	OnComplete(fn func(pipeline.SyncReport))
}

type Sync struct {
	runner     syncRunner
	cache      SearchCache
	clearCache bool
	notifier   Notifier
	logger     *log.Logger
}

// NewSyncUsecase hooks into every finished pass of runner, whether it was
// started here or by the scheduler.
func NewSyncUsecase(runner syncRunner, cache SearchCache, clearCache bool, notifier Notifier, logger *log.Logger) *Sync {
	if logger == nil {
		logger = log.Default()
	}
	u := &Sync{runner: runner, cache: cache, clearCache: clearCache, notifier: notifier, logger: logger}
	runner.OnComplete(u.afterPass)
	return u
}

func (u *Sync) Trigger(ctx context.Context) (pipeline.SyncReport, error) {
	rep, err := u.runner.Run(ctx)
	if errors.Is(err, pipeline.ErrSyncInProgress) {
		return pipeline.SyncReport{}, ErrConflict
	}
	if err != nil {
		return rep, ErrInternal
	}
	return rep, nil
}

func (u *Sync) Status() SyncStatus {
	st := SyncStatus{State: u.runner.State(), Running: u.runner.Running()}
	if rep, ok := u.runner.LastReport(); ok {
		st.LastReport = &rep
	}
	return st
}

func (u *Sync) afterPass(rep pipeline.SyncReport) {
	if u.clearCache && u.cache != nil && rep.Written > 0 {
		if err := u.cache.Clear(context.Background()); err != nil {
			u.logger.Printf("[Sync] Cache clear after pass failed: %v", err)
		}
	}
	if u.notifier != nil {
		u.notifier.Notify(EventIndexSynced, map[string]any{
			"runId":       rep.RunID.String(),
			"written":     rep.Written,
			"failedPages": len(rep.FailedPages),
		})
	}
}
