package scheduler

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"jobseek/internal/pipeline"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls int
	err   error
	ran   chan struct{}
}

func (f *fakeRunner) Run(context.Context) (pipeline.SyncReport, error) {
	f.mu.Lock()
	f.calls++
	err := f.err
	f.mu.Unlock()
	if f.ran != nil {
		f.ran <- struct{}{}
	}
	return pipeline.SyncReport{}, err
}

func TestStart_RejectsInvalidSpec(t *testing.T) {
	s := New(&fakeRunner{}, "every now and then", false, log.New(&bytes.Buffer{}, "", 0))
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}

func TestStart_RunsOnStartup(t *testing.T) {
	r := &fakeRunner{ran: make(chan struct{}, 1)}
	s := New(r, "", true, log.New(&bytes.Buffer{}, "", 0))
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer s.Stop()

	select {
	case <-r.ran:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a startup pass")
	}
}

func TestRunSync_SkipsWhenInProgress(t *testing.T) {
	var buf bytes.Buffer
	r := &fakeRunner{err: pipeline.ErrSyncInProgress}
	s := New(r, DefaultSpec, false, log.New(&buf, "", 0))

	s.runSync(context.Background())

	if r.calls != 1 {
		t.Fatalf("expected one call, got %d", r.calls)
	}
	if !strings.Contains(buf.String(), "skipped") {
		t.Fatalf("expected skip log, got %q", buf.String())
	}
}

func TestRunSync_WithRealPipelineSkipsOverlappingTick(t *testing.T) {
	p := pipeline.NewSyncPipeline(blockingSource{}, nil, 10, log.New(&bytes.Buffer{}, "", 0))
	var buf bytes.Buffer
	s := New(p, DefaultSpec, false, log.New(&buf, "", 0))

	done := make(chan struct{})
	go func() {
		s.runSync(context.Background())
		close(done)
	}()
	<-blockingEntered

	s.runSync(context.Background())
	if !strings.Contains(buf.String(), "skipped") {
		t.Fatalf("expected overlapping tick to be skipped, got %q", buf.String())
	}
	close(blockingRelease)
	<-done
}
