package scheduler

import (
	"context"

	"jobseek/internal/domain/job"
)

var (
	blockingEntered = make(chan struct{})
	blockingRelease = make(chan struct{})
)

// blockingSource holds each read until blockingRelease is closed.
type blockingSource struct{}

func (blockingSource) ListActive(context.Context, int64, int) ([]job.Job, error) {
	blockingEntered <- struct{}{}
	<-blockingRelease
	return nil, nil
}
