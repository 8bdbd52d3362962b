package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dashboard summary cache keys. Each maps to one dashboard panel.
const (
	AvailableStockKey = "dashboard:available-stock"
	StockSummaryKey   = "dashboard:stock-summary"
	SaleSummaryKey    = "dashboard:sale-summary"
	ExpenseSummaryKey = "dashboard:expense-summary"

	SummaryTTL = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The server degrades gracefully
// without Redis: a nil client turns every cache call into a no-op.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
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

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
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

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateStockCaches clears the panels affected by stock writes.
// Called on create/update/delete of stock-in and stock-out records.
func InvalidateStockCaches(ctx context.Context) {
	InvalidateKeys(ctx, AvailableStockKey, StockSummaryKey)
}

// InvalidateSaleCaches clears the panels affected by client sale writes.
func InvalidateSaleCaches(ctx context.Context) {
	InvalidateKeys(ctx, SaleSummaryKey, AvailableStockKey)
}

// InvalidateExpenseCaches clears the panels affected by expense writes.
func InvalidateExpenseCaches(ctx context.Context) {
	InvalidateKeys(ctx, ExpenseSummaryKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
