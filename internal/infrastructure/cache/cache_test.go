package cache

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Names []string `json:"names"`
	Total int      `json:"total"`
}

func TestNewMemory_RejectsNonPositiveShards(t *testing.T) {
	_, err := NewMemory(0)
	assert.EqualError(t, err, "numShards must be positive, got 0")
}

func TestMemory_SetGetClear(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemory(4)
	require.NoError(t, err)

	var out payload
	ok, err := m.GetJSON(ctx, KeyPrefix+"a", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	in := payload{Names: []string{"x", "y"}, Total: 2}
	require.NoError(t, m.SetJSON(ctx, KeyPrefix+"a", in, 0))

	ok, err = m.GetJSON(ctx, KeyPrefix+"a", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)

	in.Names[0] = "mutated"
	var again payload
	_, _ = m.GetJSON(ctx, KeyPrefix+"a", &again)
	assert.Equal(t, "x", again.Names[0])

	require.NoError(t, m.Clear(ctx))
	assert.Equal(t, 0, m.Len())
	ok, _ = m.GetJSON(ctx, KeyPrefix+"a", &out)
	assert.False(t, ok)
}

func TestMemory_ConcurrentAccessAndClear(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemory(DefaultShards)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("%s%d-%d", KeyPrefix, w, i%10)
				_ = m.SetJSON(ctx, key, payload{Total: i}, 0)
				var out payload
				if ok, err := m.GetJSON(ctx, key, &out); ok && err != nil {
					t.Errorf("partial entry for %s: %v", key, err)
				}
				if i%50 == 0 {
					_ = m.Clear(ctx)
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestRedis_UnavailableBypasses(t *testing.T) {
	ctx := context.Background()
	r := NewRedisWithClient(nil, log.New(io.Discard, "", 0))
	assert.False(t, r.Connected())

	var out payload
	ok, err := r.GetJSON(ctx, KeyPrefix+"a", &out)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.SetJSON(ctx, KeyPrefix+"a", payload{}, 0))
	assert.NoError(t, r.Clear(ctx))
	assert.Error(t, r.Ping(ctx))
}

func TestRedis_UnreachableServerIsBypassed(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	r := NewRedisWithClient(client, log.New(io.Discard, "", 0))

	var out payload
	ok, err := r.GetJSON(context.Background(), KeyPrefix+"a", &out)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.True(t, r.warnedUnavailable.Load())
}
