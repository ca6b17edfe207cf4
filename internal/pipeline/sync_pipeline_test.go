package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobseek/internal/domain/job"
)

func seedStore(t *testing.T, store *memStore, n int, inactiveEvery int) {
	t.Helper()
	jobs := make([]job.Job, 0, n)
	for i := 1; i <= n; i++ {
		jobs = append(jobs, job.Job{
			Title:           fmt.Sprintf("Job %d", i),
			Company:         "Acme",
			Skills:          []string{"Go"},
			ExperienceLevel: job.LevelMid,
			PostedDate:      fixedNow,
			IsActive:        inactiveEvery == 0 || i%inactiveEvery != 0,
		})
	}
	if _, err := store.SaveAll(context.Background(), jobs); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestSync_CopiesActiveJobsInPages(t *testing.T) {
	store := newMemStore()
	seedStore(t, store, 250, 10)
	idx := newFlakyIndex()
	p := NewSyncPipeline(store, idx, 100, quietLogger())

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Read != 225 || rep.Written != 225 || rep.Pages != 3 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	n, _ := idx.Count(context.Background())
	if n != 225 {
		t.Fatalf("expected 225 documents, got %d", n)
	}
	if p.State() != StateIdle || p.Running() {
		t.Fatalf("expected idle after pass, got %s", p.State())
	}
}

func TestSync_TwiceIsIdempotent(t *testing.T) {
	store := newMemStore()
	seedStore(t, store, 42, 0)
	idx := newFlakyIndex()
	p := NewSyncPipeline(store, idx, 100, quietLogger())

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, _ := idx.Count(context.Background())

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, _ := idx.Count(context.Background())

	if first != 42 || second != first {
		t.Fatalf("expected stable count 42, got %d then %d", first, second)
	}
}

func TestSync_FailedPageDoesNotAbortPass(t *testing.T) {
	store := newMemStore()
	seedStore(t, store, 30, 0)
	idx := newFlakyIndex()
	idx.failOn[1] = true
	p := NewSyncPipeline(store, idx, 10, quietLogger())

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Pages != 3 || rep.Read != 30 || rep.Written != 20 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(rep.FailedPages) != 1 || rep.FailedPages[0].Page != 1 || rep.FailedPages[0].Docs != 10 {
		t.Fatalf("unexpected failed pages: %+v", rep.FailedPages)
	}
	n, _ := idx.Count(context.Background())
	if n != 20 {
		t.Fatalf("expected 20 documents, got %d", n)
	}
}

func TestSync_ReadFailureEndsPass(t *testing.T) {
	store := newMemStore()
	store.failList = errors.New("connection refused")
	p := NewSyncPipeline(store, newFlakyIndex(), 10, quietLogger())

	rep, err := p.Run(context.Background())
	if err == nil {
		t.Fatalf("expected read error")
	}
	if rep.ReadError == "" {
		t.Fatalf("expected read error in report")
	}
	last, ok := p.LastReport()
	if !ok || last.RunID != rep.RunID {
		t.Fatalf("expected last report to be recorded")
	}
}

func TestSync_ConcurrentTriggerIsRejected(t *testing.T) {
	store := newMemStore()
	seedStore(t, store, 5, 0)
	idx := newFlakyIndex()
	idx.entered = make(chan struct{}, 10)
	idx.release = make(chan struct{})
	p := NewSyncPipeline(store, idx, 10, quietLogger())

	done := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background())
		done <- err
	}()

	select {
	case <-idx.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("first pass did not start")
	}
	if p.State() != StateWriting {
		t.Fatalf("expected WRITING state, got %s", p.State())
	}

	if _, err := p.Run(context.Background()); !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}

	close(idx.release)
	if err := <-done; err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("expected a new pass to run after the first finished, got %v", err)
	}
}

func TestSync_OnCompleteReceivesReport(t *testing.T) {
	store := newMemStore()
	seedStore(t, store, 3, 0)
	p := NewSyncPipeline(store, newFlakyIndex(), 10, quietLogger())

	var got []SyncReport
	p.OnComplete(func(r SyncReport) { got = append(got, r) })

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].RunID != rep.RunID || got[0].Written != 3 {
		t.Fatalf("unexpected hook calls: %+v", got)
	}
}
