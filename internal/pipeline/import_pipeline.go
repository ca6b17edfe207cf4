package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"jobseek/internal/domain/job"
	"jobseek/internal/enrich"
	"jobseek/internal/extract"
)

const DefaultBatchSize = 50

// JobSaver is the bulk-write side of the primary store.
type JobSaver interface {
	SaveAll(ctx context.Context, jobs []job.Job) ([]job.Job, error)
}

type ImportResult struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}

// BatchWriteError rejects every row of one in-flight batch. Rows are not
// retried individually.
type BatchWriteError struct {
	Rows  int
	Final bool
	Err   error
}

func (e *BatchWriteError) Error() string {
	if e.Final {
		return "Final batch save failed: " + e.Err.Error()
	}
	return "Batch save failed: " + e.Err.Error()
}

func (e *BatchWriteError) Unwrap() error { return e.Err }

type ImportPipeline struct {
	store     JobSaver
	extractor *extract.Extractor
	batchSize int
	log       *log.Logger
}

func NewImportPipeline(store JobSaver, batchSize int, now func() time.Time, logger *log.Logger) *ImportPipeline {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ImportPipeline{
		store:     store,
		extractor: extract.NewExtractor(now),
		batchSize: batchSize,
		log:       logger,
	}
}

// ImportCSV reads a CSV stream with a header row and imports every data row.
func (p *ImportPipeline) ImportCSV(ctx context.Context, r io.Reader) ImportResult {
	src, err := NewCSVSource(r)
	if err != nil {
		p.log.Printf("pipeline=import status=error err=%v", err)
		return ImportResult{Errors: []string{"Import failed: " + err.Error()}}
	}
	return p.Import(ctx, src)
}

// Import processes records strictly in order. A rejected row never stops
// the rows after it; valid jobs are flushed to the store every batchSize
// rows and once more at end of stream.
func (p *ImportPipeline) Import(ctx context.Context, src RecordSource) ImportResult {
	start := time.Now()
	res := ImportResult{Errors: []string{}}
	batch := make([]job.Job, 0, p.batchSize)

	p.log.Printf("pipeline=import status=started batch_size=%d", p.batchSize)

	for row := 1; ; row++ {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var rre *RowReadError
			if !errors.As(err, &rre) {
				p.log.Printf("pipeline=import status=error row=%d err=%v", row, err)
				res.Errors = append(res.Errors, "Import failed: "+err.Error())
				break
			}
			p.rowError(&res, row, err)
			continue
		}

		fields, err := p.extractor.Extract(rec)
		if err != nil {
			p.rowError(&res, row, err)
			continue
		}

		batch = append(batch, enrich.Enrich(fields))
		if len(batch) >= p.batchSize {
			p.flush(ctx, &res, batch, false)
			batch = make([]job.Job, 0, p.batchSize)
		}
	}

	if len(batch) > 0 {
		p.flush(ctx, &res, batch, true)
	}

	p.log.Printf("pipeline=import status=finished success=%d errors=%d duration=%s",
		res.SuccessCount, res.ErrorCount, time.Since(start))
	return res
}

func (p *ImportPipeline) rowError(res *ImportResult, row int, err error) {
	msg := fmt.Sprintf("Row %d: %s", row, err.Error())
	res.ErrorCount++
	res.Errors = append(res.Errors, msg)
	p.log.Printf("pipeline=import status=row_rejected row=%d reason=%q", row, err.Error())
}

func (p *ImportPipeline) flush(ctx context.Context, res *ImportResult, batch []job.Job, final bool) {
	if _, err := p.store.SaveAll(ctx, batch); err != nil {
		werr := &BatchWriteError{Rows: len(batch), Final: final, Err: err}
		res.ErrorCount += len(batch)
		res.Errors = append(res.Errors, werr.Error())
		p.log.Printf("pipeline=import status=batch_failed rows=%d final=%t err=%v", len(batch), final, err)
		return
	}
	res.SuccessCount += len(batch)
	p.log.Printf("pipeline=import status=batch_saved rows=%d total=%d final=%t", len(batch), res.SuccessCount, final)
}
