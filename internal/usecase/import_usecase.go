package usecase

import (
	"context"
	"io"
	"log"

	"jobseek/internal/pipeline"
)

type ImportUsecase interface {
	ImportCSV(ctx context.Context, r io.Reader) pipeline.ImportResult
}

type csvImporter interface {
	ImportCSV(ctx context.Context, r io.Reader) pipeline.ImportResult
}

type Import struct {
	pipeline csvImporter
	notifier Notifier
	logger   *log.Logger
}

func NewImportUsecase(p csvImporter, notifier Notifier, logger *log.Logger) *Import {
	if logger == nil {
		logger = log.Default()
	}
	return &Import{pipeline: p, notifier: notifier, logger: logger}
}

// ImportCSV blocks until the whole stream has been processed.
func (u *Import) ImportCSV(ctx context.Context, r io.Reader) pipeline.ImportResult {
	res := u.pipeline.ImportCSV(ctx, r)
	if res.SuccessCount > 0 && u.notifier != nil {
		u.notifier.Notify(EventJobsImported, map[string]int{
			"successCount": res.SuccessCount,
			"errorCount":   res.ErrorCount,
		})
	}
	return res
}
