package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/myronova/obx/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Redis is an optional secondary snapshot cache, grounded on
// olyamironova-exchange-engine/internal/adapter/cache.RedisCache (same
// go-redis/v9 client, same Set/Get-with-TTL shape), repointed from that
// repo's OrderbookSnapshot to this engine's domain.Snapshot.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SnapshotCache = (*Redis)(nil)

func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func snapshotKey(symbol string) string { return "snapshot:" + strings.ToUpper(symbol) }

func (c *Redis) SetSnapshot(ctx context.Context, symbol string, snap domain.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(symbol), b, c.ttl).Err()
}

func (c *Redis) GetSnapshot(ctx context.Context, symbol string) (domain.Snapshot, error) {
	b, err := c.client.Get(ctx, snapshotKey(symbol)).Bytes()
	if err != nil {
		return domain.Snapshot{}, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// Close releases the underlying connection pool.
func (c *Redis) Close() error { return c.client.Close() }
