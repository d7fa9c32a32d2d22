package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateCounter provides fixed-window request counting backed by Redis.
// Key format: rate:<scope>:<client>:<window_start_unix>
type RateCounter struct {
	client *redis.Client
	window time.Duration
}

// NewRateCounter creates a RateCounter with the given window size.
func NewRateCounter(client *redis.Client, window time.Duration) *RateCounter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateCounter{client: client, window: window}
}

// Hit records one request for (scope, client) and returns the count seen in
// the current window. The key expires with the window, so idle clients cost
// nothing.
func (r *RateCounter) Hit(ctx context.Context, scope, client string) (int64, error) {
	key := r.key(scope, client, time.Now())

	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("rate hit: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return n, fmt.Errorf("rate expire: %w", err)
		}
	}
	return n, nil
}

func (r *RateCounter) key(scope, client string, now time.Time) string {
	windowStart := now.Truncate(r.window).Unix()
	return fmt.Sprintf("rate:%s:%s:%d", scope, client, windowStart)
}
