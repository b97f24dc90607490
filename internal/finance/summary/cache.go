// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerly/api/internal/platform/constants"
)

// RedisCache stores computed monthly summaries in Redis with a short TTL.
//
// # Key Layout
//
//	finance:summary:<orgID>:<YYYY-MM>
//
// Keys are namespaced per org so a ledger write can drop every cached
// month of that org in one pass. The TTL is the backstop for the rare
// case where explicit invalidation fails.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a new [RedisCache].
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// cacheKey builds the per-org, per-month cache key.
func cacheKey(orgID, month string) string {
	return constants.RedisPrefixSummary + orgID + ":" + month
}

// Get returns the cached summary, or (nil, nil) on a miss.
func (cache *RedisCache) Get(ctx context.Context, orgID, month string) (*MonthlySummary, error) {
	payload, err := cache.client.Get(ctx, cacheKey(orgID, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("summary cache: get failed: %w", err)
	}

	sum := &MonthlySummary{}
	if err := json.Unmarshal(payload, sum); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}

	return sum, nil
}

// Set stores a computed summary under the org and month key.
func (cache *RedisCache) Set(ctx context.Context, orgID, month string, sum *MonthlySummary) error {
	payload, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("summary cache: marshal failed: %w", err)
	}

	if err := cache.client.Set(ctx, cacheKey(orgID, month), payload, constants.SummaryCacheTTL).Err(); err != nil {
		return fmt.Errorf("summary cache: set failed: %w", err)
	}

	return nil
}

// InvalidateOrg removes every cached month belonging to the org. Called
// after each ledger write; satisfies the transaction service's invalidator
// contract.
func (cache *RedisCache) InvalidateOrg(ctx context.Context, orgID string) error {
	pattern := constants.RedisPrefixSummary + orgID + ":*"

	iterator := cache.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0, 4)
	for iterator.Next(ctx) {
		keys = append(keys, iterator.Val())
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("summary cache: scan failed: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := cache.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("summary cache: delete failed: %w", err)
	}

	return nil
}
