package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "fu-news:ratelimit:"

// fixedWindow increments the counter and starts the window on the first hit.
var fixedWindow = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

// RedisStore shares a fixed-window counter per client across instances.
type RedisStore struct {
	client redis.Scripter
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisStore(client redis.Scripter, cfg Config) *RedisStore {
	cfg = cfg.Normalize()

	return &RedisStore{
		client: client,
		limit:  cfg.Requests,
		window: cfg.Window,
		now:    time.Now,
	}
}

func (s *RedisStore) Take(ctx context.Context, key string) (Decision, error) {
	res, err := fixedWindow.Run(ctx, s.client, []string{redisKeyPrefix + key}, s.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("redis rate limit: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("redis rate limit: unexpected reply %v", res)
	}

	return s.decide(res[0], time.Duration(res[1])*time.Millisecond), nil
}

func (s *RedisStore) decide(count int64, ttl time.Duration) Decision {
	if ttl < 0 {
		ttl = s.window
	}

	return Decision{
		Allowed:   count <= int64(s.limit),
		Limit:     s.limit,
		Remaining: max(s.limit-int(count), 0),
		Reset:     s.now().Add(ttl),
	}
}
