package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mwangaza/dukahub-api/internal/domain/ledger"
)

// BalanceCache caches per-entity ledger summaries in Redis. A nil
// *BalanceCache is a valid no-op cache, so callers never need to
// branch on whether Redis is configured.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTTL = 5 * time.Minute

// NewBalanceCache wraps a Redis client. Pass a zero ttl to use the default.
func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &BalanceCache{client: client, ttl: ttl}
}

func balanceKey(tenantID, entityID uuid.UUID) string {
	return fmt.Sprintf("balance:%s:%s", tenantID, entityID)
}

// Get returns the cached summary for an entity, or (nil, nil) on a miss.
func (c *BalanceCache) Get(ctx context.Context, tenantID, entityID uuid.UUID) (*ledger.Summary, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, balanceKey(tenantID, entityID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary ledger.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Set stores a summary for an entity.
func (c *BalanceCache) Set(ctx context.Context, tenantID, entityID uuid.UUID, summary *ledger.Summary) error {
	if c == nil || summary == nil {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, balanceKey(tenantID, entityID), data, c.ttl).Err()
}

// Invalidate drops the cached summary for an entity. Called after every
// bill or payment write so reads never serve a stale balance.
func (c *BalanceCache) Invalidate(ctx context.Context, tenantID, entityID uuid.UUID) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, balanceKey(tenantID, entityID)).Err()
}
