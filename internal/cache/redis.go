package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Occupancy cache keys
const (
	OccupancyStatsKey  = "occupancy:stats"
	LayoutDataKeyFmt   = "occupancy:layout:%d"
	occupancySnapshots = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
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
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change/logout)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Del(ctx, key)
}

// GetCachedOccupancyStats returns the cached warehouse occupancy snapshot if available
func GetCachedOccupancyStats(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, OccupancyStatsKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheOccupancyStats caches the occupancy snapshot for 5 minutes
func CacheOccupancyStats(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, OccupancyStatsKey, data, occupancySnapshots)
}

// GetCachedLayoutData returns cached per-layout section data if available
func GetCachedLayoutData(ctx context.Context, layoutID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	key := fmt.Sprintf(LayoutDataKeyFmt, layoutID)
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheLayoutData caches per-layout section data for 5 minutes
func CacheLayoutData(ctx context.Context, layoutID int, data []byte) {
	if client == nil {
		return
	}
	key := fmt.Sprintf(LayoutDataKeyFmt, layoutID)
	client.Set(ctx, key, data, occupancySnapshots)
}

// InvalidateOccupancy drops occupancy snapshots after stock movements
func InvalidateOccupancy(ctx context.Context, layoutIDs ...int) {
	if client == nil {
		return
	}
	keys := []string{OccupancyStatsKey}
	for _, id := range layoutIDs {
		keys = append(keys, fmt.Sprintf(LayoutDataKeyFmt, id))
	}
	client.Del(ctx, keys...)
}
