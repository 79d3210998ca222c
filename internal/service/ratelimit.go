package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AllowRequest implements a fixed-window counter in Redis: the first hit in
// a window sets the expiry, later hits only increment. A nil client means
// rate limiting is disabled.
func AllowRequest(ctx context.Context, rdb *redis.Client, clientIP string, window time.Duration, max int) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:ip:%s", clientIP)

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(max), nil
}
