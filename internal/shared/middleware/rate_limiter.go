package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/response"
)

// RedisTokenBucket is a per-IP token bucket backed by Redis. State lives in a
// small hash per client; refill and take happen atomically in a Lua script.
// Redis being down fails open: availability beats throttling here.
type RedisTokenBucket struct {
	rdb      *redis.Client
	ratePerS float64
	burst    int
	script   *redis.Script
}

const tokenBucketLua = `
-- KEYS[1] = bucket key (hash with fields: tokens, ts)
-- ARGV[1] = ratePerS (float)
-- ARGV[2] = capacity (int)
-- Returns: {allowed (1/0), remaining_tokens (float), retry_after_ms (int)}
local key   = KEYS[1]
local rate  = tonumber(ARGV[1])
local cap   = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

local delta_ms = now_ms - ts
if delta_ms > 0 then
  local refill = (delta_ms / 1000.0) * rate
  tokens = math.min(cap, tokens + refill)
end

local allowed = 0
local retry_after_ms = 0

if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  allowed = 0
  retry_after_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HMSET', key, 'tokens', tokens, 'ts', now_ms)

local ttl_ms = math.ceil((cap / rate) * 1000.0)
redis.call('PEXPIRE', key, ttl_ms)

return {allowed, tokens, retry_after_ms}
`

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int) *RedisTokenBucket {
	return &RedisTokenBucket{
		rdb:      rdb,
		ratePerS: ratePerSecond,
		burst:    burst,
		script:   redis.NewScript(tokenBucketLua),
	}
}

func (tb *RedisTokenBucket) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		res, err := tb.script.Run(c.Request.Context(), tb.rdb, []string{key},
			strconv.FormatFloat(tb.ratePerS, 'f', -1, 64),
			strconv.Itoa(tb.burst),
		).Slice()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter redis error, allowing request")
			c.Next()
			return
		}

		allowed, _ := res[0].(int64)
		retryAfterMs := toInt64(res[2])

		c.Writer.Header().Set("X-RateLimit-Policy", "token-bucket")
		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(tb.burst))

		if allowed != 1 {
			sec := (retryAfterMs + 999) / 1000
			if sec < 1 {
				sec = 1
			}
			c.Writer.Header().Set("Retry-After", strconv.FormatInt(sec, 10))

			response.TooManyRequests(c, "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case string:
		parsed, _ := strconv.ParseInt(n, 10, 64)
		return parsed
	default:
		return 0
	}
}
