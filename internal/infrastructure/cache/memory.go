package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

const DefaultShards = 16

// Memory is an in-process result cache split into shards. Values are kept
// as JSON so callers never share decoded structures.
type Memory struct {
	shards []*shard
}

type shard struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemory(numShards int) (*Memory, error) {
	if numShards <= 0 {
		return nil, fmt.Errorf("numShards must be positive, got %d", numShards)
	}
	m := &Memory{shards: make([]*shard, numShards)}
	for i := range m.shards {
		m.shards[i] = &shard{items: map[string][]byte{}}
	}
	return m, nil
}

func (m *Memory) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()%uint32(len(m.shards))]
}

func (m *Memory) GetJSON(_ context.Context, key string, out any) (bool, error) {
	s := m.shardFor(key)
	s.mu.RLock()
	b, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. Entries never expire; ttl is ignored.
func (m *Memory) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s := m.shardFor(key)
	s.mu.Lock()
	s.items[key] = b
	s.mu.Unlock()
	return nil
}

// Clear drops every entry. Each shard swaps in a fresh map under its lock,
// so a reader sees an entry either fully present or gone.
func (m *Memory) Clear(context.Context) error {
	for _, s := range m.shards {
		s.mu.Lock()
		s.items = map[string][]byte{}
		s.mu.Unlock()
	}
	return nil
}

func (m *Memory) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}
