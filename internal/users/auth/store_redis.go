// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCodeDispatchLimiter implements CodeDispatchLimiter using Redis.
type RedisCodeDispatchLimiter struct {
	client *redis.Client
}

// NewCodeDispatchLimiter creates a new Redis-backed CodeDispatchLimiter.
func NewCodeDispatchLimiter(client *redis.Client) *RedisCodeDispatchLimiter {
	return &RedisCodeDispatchLimiter{client: client}
}

/*
Reserve attempts to claim a dispatch slot for the given email.

Description: Uses SET NX with the cooldown as TTL, so the claim and the
expiry are a single atomic operation. The loser of a concurrent claim reads
back the remaining TTL of the winner's key.

Parameters:
  - ctx: context.Context
  - email: string
  - cooldown: time.Duration

Returns:
  - bool: true when the slot was free and is now claimed
  - time.Duration: remaining cooldown when the slot was occupied
  - error: Connectivity errors
*/
func (limiter *RedisCodeDispatchLimiter) Reserve(ctx context.Context, email string, cooldown time.Duration) (bool, time.Duration, error) {

	// Use constants for key prefix
	key := cooldownKeyPrefix + email

	// Claim the slot atomically
	claimed, err := limiter.client.SetNX(ctx, key, time.Now().Unix(), cooldown).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis_code_cooldown_reserve_failed: %w", err)
	}
	if claimed {
		return true, 0, nil
	}

	// Report how long the caller must wait
	remaining, err := limiter.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis_code_cooldown_ttl_failed: %w", err)
	}

	return false, remaining, nil
}
