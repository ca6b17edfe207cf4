package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"jobseek/internal/domain/job"

	"github.com/google/uuid"
)

const DefaultPageSize = 100

type State string

const (
	StateIdle       State = "IDLE"
	StateReading    State = "READING"
	StateProcessing State = "PROCESSING"
	StateWriting    State = "WRITING"
)

// ErrSyncInProgress is returned when a pass is triggered while another one
// is running. The trigger is rejected, not queued.
var ErrSyncInProgress = errors.New("sync already in progress")

// ActiveJobReader pages through active jobs by ascending id.
type ActiveJobReader interface {
	ListActive(ctx context.Context, afterID int64, limit int) ([]job.Job, error)
}

// DocumentWriter is the write side of the search index.
type DocumentWriter interface {
	BulkUpsert(ctx context.Context, docs []job.Document) error
}

// IndexWriteError rejects one page of documents. The pass continues with
// the next page.
type IndexWriteError struct {
	Page int
	Docs int
	Err  error
}

func (e *IndexWriteError) Error() string {
	return fmt.Sprintf("index write failed: page=%d docs=%d: %v", e.Page, e.Docs, e.Err)
}

func (e *IndexWriteError) Unwrap() error { return e.Err }

func (e *IndexWriteError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Page  int    `json:"page"`
		Docs  int    `json:"docs"`
		Error string `json:"error"`
	}{e.Page, e.Docs, e.Err.Error()})
}

type SyncReport struct {
	RunID       uuid.UUID          `json:"runId"`
	StartedAt   time.Time          `json:"startedAt"`
	Duration    time.Duration      `json:"-"`
	DurationMs  int64              `json:"durationMs"`
	Pages       int                `json:"pages"`
	Read        int                `json:"read"`
	Written     int                `json:"written"`
	FailedPages []*IndexWriteError `json:"failedPages"`
	ReadError   string             `json:"readError,omitempty"`
}

// SyncPipeline copies active jobs from the primary store into the search
// index, one page at a time. At most one pass runs at once.
type SyncPipeline struct {
	source   ActiveJobReader
	index    DocumentWriter
	pageSize int
	log      *log.Logger

	running atomic.Bool
	state   atomic.Value

	mu    sync.RWMutex
	last  *SyncReport
	hooks []func(SyncReport)
}

func NewSyncPipeline(source ActiveJobReader, index DocumentWriter, pageSize int, logger *log.Logger) *SyncPipeline {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = log.Default()
	}
	p := &SyncPipeline{source: source, index: index, pageSize: pageSize, log: logger}
	p.state.Store(StateIdle)
	return p
}

// OnComplete registers fn to run after every finished pass.
func (p *SyncPipeline) OnComplete(fn func(SyncReport)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	p.hooks = append(p.hooks, fn)
	p.mu.Unlock()
}

func (p *SyncPipeline) State() State {
	return p.state.Load().(State)
}

func (p *SyncPipeline) Running() bool {
	return p.running.Load()
}

// LastReport returns the report of the most recent finished pass.
func (p *SyncPipeline) LastReport() (SyncReport, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return SyncReport{}, false
	}
	return *p.last, true
}

// Run performs one full pass. A failed page write is recorded in the report
// and the pass moves on; a failed read ends the pass and is returned.
func (p *SyncPipeline) Run(ctx context.Context) (SyncReport, error) {
	if !p.running.CompareAndSwap(false, true) {
		p.log.Printf("pipeline=sync status=rejected reason=in_progress")
		return SyncReport{}, ErrSyncInProgress
	}
	defer p.running.Store(false)

	rep := SyncReport{RunID: uuid.New(), StartedAt: time.Now().UTC(), FailedPages: []*IndexWriteError{}}
	p.log.Printf("pipeline=sync status=started run_id=%s page_size=%d", rep.RunID, p.pageSize)

	runErr := p.pass(ctx, &rep)
	p.state.Store(StateIdle)
	rep.Duration = time.Since(rep.StartedAt)
	rep.DurationMs = rep.Duration.Milliseconds()

	if runErr != nil {
		rep.ReadError = runErr.Error()
		p.log.Printf("pipeline=sync status=error run_id=%s err=%v", rep.RunID, runErr)
	}
	p.log.Printf("pipeline=sync status=finished run_id=%s pages=%d read=%d written=%d failed_pages=%d duration=%s",
		rep.RunID, rep.Pages, rep.Read, rep.Written, len(rep.FailedPages), rep.Duration)

	p.mu.Lock()
	last := rep
	p.last = &last
	hooks := append([]func(SyncReport){}, p.hooks...)
	p.mu.Unlock()

	for _, fn := range hooks {
		fn(rep)
	}
	return rep, runErr
}

func (p *SyncPipeline) pass(ctx context.Context, rep *SyncReport) error {
	var afterID int64
	for page := 0; ; page++ {
		p.state.Store(StateReading)
		jobs, err := p.source.ListActive(ctx, afterID, p.pageSize)
		if err != nil {
			return fmt.Errorf("read page %d: %w", page, err)
		}
		if len(jobs) == 0 {
			return nil
		}
		rep.Pages++
		rep.Read += len(jobs)

		p.state.Store(StateProcessing)
		docs := make([]job.Document, 0, len(jobs))
		for _, j := range jobs {
			docs = append(docs, job.ToDocument(j))
		}
		afterID = jobs[len(jobs)-1].ID

		p.state.Store(StateWriting)
		if err := p.index.BulkUpsert(ctx, docs); err != nil {
			werr := &IndexWriteError{Page: page, Docs: len(docs), Err: err}
			rep.FailedPages = append(rep.FailedPages, werr)
			p.log.Printf("pipeline=sync status=page_failed run_id=%s page=%d docs=%d err=%v", rep.RunID, page, len(docs), err)
		} else {
			rep.Written += len(docs)
		}

		if len(jobs) < p.pageSize {
			return nil
		}
	}
}
