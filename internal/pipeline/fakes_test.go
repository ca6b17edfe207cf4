package pipeline

import (
	"context"
	"fmt"
	"sync"

	"jobseek/internal/domain/job"
	"jobseek/internal/searchindex"
)

// memStore is an in-memory primary store with optional write failures.
type memStore struct {
	mu sync.Mutex

	jobs      []job.Job
	nextID    int64
	saveCalls []int
	failSave  map[int]error
	failList  error
}

func newMemStore() *memStore { return &memStore{nextID: 1, failSave: map[int]error{}} }

func (s *memStore) SaveAll(_ context.Context, jobs []job.Job) ([]job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := len(s.saveCalls)
	s.saveCalls = append(s.saveCalls, len(jobs))
	if err := s.failSave[call]; err != nil {
		return nil, err
	}
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		j.ID = s.nextID
		s.nextID++
		s.jobs = append(s.jobs, j)
		out = append(out, j)
	}
	return out, nil
}

func (s *memStore) ListActive(_ context.Context, afterID int64, limit int) ([]job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList != nil {
		return nil, s.failList
	}
	out := []job.Job{}
	for _, j := range s.jobs {
		if j.IsActive && j.ID > afterID && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *memStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// flakyIndex fails the listed BulkUpsert calls and can block until released.
type flakyIndex struct {
	*searchindex.MemoryIndex

	mu      sync.Mutex
	calls   int
	failOn  map[int]bool
	entered chan struct{}
	release chan struct{}
}

func newFlakyIndex() *flakyIndex {
	return &flakyIndex{MemoryIndex: searchindex.NewMemoryIndex(), failOn: map[int]bool{}}
}

func (f *flakyIndex) BulkUpsert(ctx context.Context, docs []job.Document) error {
	f.mu.Lock()
	call := f.calls
	f.calls++
	fail := f.failOn[call]
	entered, release := f.entered, f.release
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	if fail {
		return fmt.Errorf("index unavailable")
	}
	return f.MemoryIndex.BulkUpsert(ctx, docs)
}
