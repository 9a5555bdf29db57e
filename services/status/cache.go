package status

import (
	"context"
	"encoding/json"
	"time"

	"seatwise/models"
	"seatwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SnapshotCache fronts the resolver for display reads. It is never
// authoritative: every ledger mutation invalidates the provider's entry, and
// a short TTL bounds the staleness of a snapshot that missed an
// invalidation.
type SnapshotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewSnapshotCache constructs a cache with the default TTL.
func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{Client: client, TTL: utils.StatusCacheTTL}
}

// Get returns the cached snapshot for a provider, or ok=false on a miss.
func (c *SnapshotCache) Get(ctx context.Context, providerID string) ([]models.UnitStatusView, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	data, err := c.Client.Get(ctx, utils.StatusCachePrefix+providerID).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("status cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var views []models.UnitStatusView
	if err := json.Unmarshal([]byte(data), &views); err != nil {
		utils.GetLogger().Warn("status cache entry corrupt, dropping", zap.Error(err))
		c.Invalidate(ctx, providerID)
		return nil, false
	}
	return views, true
}

// Set stores a freshly resolved snapshot.
func (c *SnapshotCache) Set(ctx context.Context, providerID string, views []models.UnitStatusView) {
	if c == nil || c.Client == nil {
		return
	}
	data, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, utils.StatusCachePrefix+providerID, data, c.TTL).Err(); err != nil {
		utils.GetLogger().Warn("status cache write failed", zap.Error(err))
	}
}

// Invalidate drops a provider's snapshot. Called on the same events the
// change notifier emits.
func (c *SnapshotCache) Invalidate(ctx context.Context, providerID string) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, utils.StatusCachePrefix+providerID).Err(); err != nil {
		utils.GetLogger().Warn("status cache invalidation failed", zap.Error(err))
	}
}
