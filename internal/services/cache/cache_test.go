package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	mu           sync.Mutex
	hits, misses int
}

func (c *counter) CacheHit()  { c.mu.Lock(); c.hits++; c.mu.Unlock() }
func (c *counter) CacheMiss() { c.mu.Lock(); c.misses++; c.mu.Unlock() }

func TestSnapshotCacheGetSetDelete(t *testing.T) {
	obs := &counter{}
	c := New(obs)

	_, ok := c.Get("m1")
	assert.False(t, ok)

	c.Set("m1", models.CachedSnapshot{State: models.StateActive, Telemetry: models.Telemetry{Tool: "T1"}})
	got, ok := c.Get("m1")
	require.True(t, ok)
	assert.Equal(t, models.StateActive, got.State)

	got.Tool = "mutated"
	again, _ := c.Get("m1")
	assert.Equal(t, "T1", again.Tool, "callers receive copies")

	c.Delete("m1")
	_, ok = c.Get("m1")
	assert.False(t, ok)

	assert.Equal(t, 2, obs.hits)
	assert.Equal(t, 2, obs.misses)
}

func TestSnapshotCacheConcurrentAccess(t *testing.T) {
	c := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("m%d", i%4)
			c.Set(id, models.CachedSnapshot{State: models.StateIdle})
			c.Get(id)
			if i%3 == 0 {
				c.Delete(id)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 4)
}
