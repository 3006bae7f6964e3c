package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/config"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix        = "ac"
	localDefaultTTL      = 24 * time.Hour
	localCleanupInterval = 10 * time.Minute
)

var (
	redisClient *redis.Client
	redisPrefix = defaultPrefix
	// local 未启用 Redis 时的进程内缓存
	local = gocache.New(localDefaultTTL, localCleanupInterval)
)

// InitRedis 初始化 Redis 客户端；未启用时仅使用进程内缓存
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		redisClient = nil
		return nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	if prefix := strings.TrimSpace(cfg.Prefix); prefix != "" {
		redisPrefix = prefix
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return nil
}

// Enabled 判断 Redis 是否启用
func Enabled() bool {
	return redisClient != nil
}

// Client 获取 Redis 客户端
func Client() *redis.Client {
	return redisClient
}

// Close 关闭 Redis 连接
func Close() error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}

// GetJSON 读取 JSON 缓存
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	var payload []byte
	if Enabled() {
		val, err := redisClient.Get(ctx, buildKey(key)).Bytes()
		if err == redis.Nil {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		payload = val
	} else {
		val, ok := local.Get(buildKey(key))
		if !ok {
			return false, nil
		}
		payload, _ = val.([]byte)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存，ttl <= 0 表示不过期
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if Enabled() {
		if ttl < 0 {
			ttl = 0
		}
		return redisClient.Set(ctx, buildKey(key), payload, ttl).Err()
	}
	localTTL := gocache.NoExpiration
	if ttl > 0 {
		localTTL = ttl
	}
	local.Set(buildKey(key), payload, localTTL)
	return nil
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	if Enabled() {
		return redisClient.Del(ctx, buildKey(key)).Err()
	}
	local.Delete(buildKey(key))
	return nil
}

func buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return redisPrefix
	}
	return fmt.Sprintf("%s:%s", redisPrefix, trimmed)
}
