package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/config"
)

// Cache keys for report snapshots.
const (
	DashboardStatsKey  = "reports:dashboard"
	ProfitLossKeyFmt   = "reports:profit_loss:%s:%s"
	dashboardStatsTTL  = 1 * time.Minute
	profitLossCacheTTL = 5 * time.Minute
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// call becomes a no-op, so the service runs fine without Redis.
func Init(cfg *config.Config) error {
	host := cfg.Redis.Host
	if h := os.Getenv("REDIS_SERVICE_HOST"); h != "" {
		host = h
	}
	port := strconv.Itoa(cfg.Redis.Port)
	if p := os.Getenv("REDIS_SERVICE_PORT"); p != "" {
		port = p
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of username+password for the auth cache key
func hashCredentials(username, password string) string {
	h := sha256.New()
	h.Write([]byte(username + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth returns the cached user ID for valid credentials
func GetCachedAuth(ctx context.Context, username, password string) (string, bool) {
	if client == nil {
		return "", false
	}
	userID, err := client.Get(ctx, hashCredentials(username, password)).Result()
	if err != nil {
		return "", false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, username, password, userID string) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(username, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth (on password change)
func InvalidateAuth(ctx context.Context, username, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(username, password))
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// CacheDashboardStats stores the day's dashboard snapshot briefly; sales
// arrive often, so the TTL is short.
func CacheDashboardStats(ctx context.Context, data []byte) {
	SetCached(ctx, DashboardStatsKey, data, dashboardStatsTTL)
}

// CacheProfitLoss stores a date-range P/L report under its range key.
func CacheProfitLoss(ctx context.Context, key string, data []byte) {
	SetCached(ctx, key, data, profitLossCacheTTL)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateReportCaches clears report snapshots.
// Called when: RecordSale, AttributeCost, MarkItemDone
func InvalidateReportCaches(ctx context.Context) {
	InvalidatePattern(ctx, "reports:*")
}

// IsHealthy returns true if the Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
