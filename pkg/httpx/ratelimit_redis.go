package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucket refills whole tokens per interval and reports the wait until
// the next refill when the bucket is empty.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
	tokens = math.min(capacity, tokens + intervals)
	last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, retry_after_ms }
`)

// RedisLimiter shares token buckets between replicas through Redis.
type RedisLimiter struct {
	client redis.Scripter
	prefix string
	cfg    RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter stores buckets under "<prefix>:<key>".
func NewRedisLimiter(client redis.Scripter, prefix string, cfg RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, cfg: cfg, now: time.Now}
}

// RedisLimiterFactory namespaces each route group under "ratelimit:<name>".
func RedisLimiterFactory(client redis.Scripter) LimiterFactory {
	return func(name string, cfg RateLimitConfig) Limiter {
		return NewRedisLimiter(client, "ratelimit:"+name, cfg)
	}
}

func (l *RedisLimiter) Config() RateLimitConfig { return l.cfg }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	interval := l.cfg.Window / time.Duration(max(l.cfg.RequestsPerWindow, 1))
	ttl := max(l.cfg.Window*2/time.Second, 1)

	res, err := tokenBucket.Run(ctx, l.client,
		[]string{l.prefix + ":" + key},
		l.now().UnixMilli(),
		l.cfg.Burst,
		max(interval.Milliseconds(), 1),
		int64(ttl),
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: redis: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("ratelimit: unexpected script result %v", res)
	}

	return res[0] == 1, time.Duration(res[1]) * time.Millisecond, nil
}
