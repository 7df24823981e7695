package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/myronova/obx/internal/domain"
)

// InMemory is always-on: it never errors and never evicts, bounding memory
// to O(active symbols). The redis.Client-backed cache in this package
// composes with this one as an optional secondary, never a replacement.
type InMemory struct {
	mu    sync.RWMutex
	store map[string]domain.Snapshot
}

var _ SnapshotCache = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{store: make(map[string]domain.Snapshot)}
}

func (c *InMemory) SetSnapshot(_ context.Context, symbol string, snap domain.Snapshot) error {
	symbol = strings.ToUpper(symbol)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[symbol] = snap
	return nil
}

func (c *InMemory) GetSnapshot(_ context.Context, symbol string) (domain.Snapshot, error) {
	symbol = strings.ToUpper(symbol)
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.store[symbol]
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("no snapshot cached for %s", symbol)
	}
	return snap, nil
}
