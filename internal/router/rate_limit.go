package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/config"
	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/i18n"
	"github.com/Markwebsolutions/abandoncart/internal/logger"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

// NewRateLimitRule 由配置生成规则
func NewRateLimitRule(prefix string, cfg config.RateLimitRuleConfig) RateLimitRule {
	return RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxRequests,
		MessageKey:    "error.too_many_requests",
	}
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimiter 窗口计数器
type RateLimiter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RedisRateLimiter 基于 Lua 脚本的计数
type RedisRateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter 创建 Redis 计数器
func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

// Hit 计数并返回剩余窗口
func (l *RedisRateLimiter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	result, err := rateLimitScript.Run(ctx, l.client, []string{key}, int(window/time.Second)).Result()
	if err != nil {
		return 0, 0, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit result: %v", result)
	}
	count, ok := toInt64(values[0])
	if !ok {
		return 0, 0, fmt.Errorf("unexpected rate limit count: %v", values[0])
	}
	ttlSeconds, _ := toInt64(values[1])
	return count, time.Duration(ttlSeconds) * time.Second, nil
}

// LocalRateLimiter 单进程计数，未启用 Redis 时使用
type LocalRateLimiter struct {
	store *gocache.Cache
}

// NewLocalRateLimiter 创建进程内计数器
func NewLocalRateLimiter() *LocalRateLimiter {
	return &LocalRateLimiter{store: gocache.New(time.Minute, 5*time.Minute)}
}

// Hit 计数并返回剩余窗口
func (l *LocalRateLimiter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if err := l.store.Add(key, int64(1), window); err == nil {
		return 1, window, nil
	}
	count, err := l.store.IncrementInt64(key, 1)
	if err != nil {
		// 计数刚好过期
		l.store.Set(key, int64(1), window)
		return 1, window, nil
	}
	ttl := window
	if _, expiresAt, ok := l.store.GetWithExpiration(key); ok && !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
	}
	return count, ttl, nil
}

// RateLimitMiddleware 频率限制中间件，limiter 为 nil 时不限流
func RateLimitMiddleware(limiter RateLimiter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		window := time.Duration(rule.WindowSeconds) * time.Second
		count, ttl, err := limiter.Hit(c.Request.Context(), key, window)
		if err != nil {
			logger.Errorw("rate_limit_unavailable", "key", key, "error", err)
			msg := i18n.T(i18n.ResolveLocale(c), "error.internal_error")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}
		if count > int64(rule.MaxRequests) {
			waitSeconds := int(ttl / time.Second)
			if waitSeconds < 1 {
				waitSeconds = rule.WindowSeconds
			}
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.too_many_requests"
			}
			logger.Warnw("rate_limited", "key", key, "count", count, "retry_after", waitSeconds)
			msg := i18n.T(i18n.ResolveLocale(c), msgKey)
			response.ErrorWithData(c, response.CodeTooManyRequests, msg, gin.H{"retry_after": waitSeconds})
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
