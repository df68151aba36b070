package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"option-set-api/internal/dto"
)

const (
	cacheKeySetPrefix = "option_set:"
	cacheKeySetList   = "option_sets:all"
)

// SetCache is a read-through Redis cache for option set reads. Every write
// path invalidates; a nil client degrades to a no-op so the service works
// without Redis.
type SetCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSetCache creates a new SetCache
func NewSetCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SetCache {
	return &SetCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetSet returns a cached set response, if present
func (c *SetCache) GetSet(ctx context.Context, id uuid.UUID) (*dto.OptionSetResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKeySetPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var resp dto.OptionSetResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// PutSet stores a set response with the configured TTL
func (c *SetCache) PutSet(ctx context.Context, resp *dto.OptionSetResponse) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeySetPrefix+resp.SetID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.Error(err))
	}
}

// GetList returns the cached full set listing, if present
func (c *SetCache) GetList(ctx context.Context) ([]*dto.OptionSetResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKeySetList).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var resp []*dto.OptionSetResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	return resp, true
}

// PutList stores the full set listing with the configured TTL
func (c *SetCache) PutList(ctx context.Context, resp []*dto.OptionSetResponse) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeySetList, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry for one set and the listing
func (c *SetCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKeySetPrefix+id.String(), cacheKeySetList).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed", zap.Error(err))
	}
}
