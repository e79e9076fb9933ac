package cache

import (
	"sync"

	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// Observer получает события попаданий и промахов, например для метрик
type Observer interface {
	CacheHit()
	CacheMiss()
}

// SnapshotCache хранит последний снимок каждого станка в памяти. TTL нет:
// отсутствие записи означает, что предыдущего показания не было.
type SnapshotCache struct {
	mu  sync.RWMutex
	m   map[string]models.CachedSnapshot
	obs Observer
}

func New(obs Observer) *SnapshotCache {
	return &SnapshotCache{m: make(map[string]models.CachedSnapshot), obs: obs}
}

// Get возвращает копию снимка
func (c *SnapshotCache) Get(machineID string) (*models.CachedSnapshot, bool) {
	c.mu.RLock()
	s, ok := c.m[machineID]
	c.mu.RUnlock()
	if !ok {
		if c.obs != nil {
			c.obs.CacheMiss()
		}
		return nil, false
	}
	if c.obs != nil {
		c.obs.CacheHit()
	}
	return &s, true
}

func (c *SnapshotCache) Set(machineID string, snapshot models.CachedSnapshot) {
	c.mu.Lock()
	c.m[machineID] = snapshot
	c.mu.Unlock()
}

func (c *SnapshotCache) Delete(machineID string) {
	c.mu.Lock()
	delete(c.m, machineID)
	c.mu.Unlock()
}

func (c *SnapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
