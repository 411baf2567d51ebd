package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadTTL = 5 * time.Minute

// UnreadCache caches per-user unread badge counts in Redis. The cache
// is strictly read-through: counts are always recomputed from the
// database on miss and the cache is invalidated, never decremented,
// on any read-state change. A nil client disables caching entirely,
// which is how tests and Redis-less deployments run.
type UnreadCache struct {
	client *redis.Client
}

func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client}
}

// NewUnreadCacheFromAddr connects to Redis, or returns a disabled
// cache when addr is empty or the server is unreachable.
func NewUnreadCacheFromAddr(addr, password string, db int) *UnreadCache {
	if addr == "" {
		return &UnreadCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return &UnreadCache{}
	}

	return &UnreadCache{client: client}
}

func (c *UnreadCache) Enabled() bool {
	return c != nil && c.client != nil
}

func notificationKey(userID string) string {
	return fmt.Sprintf("unread:notifications:%s", userID)
}

func messageKey(userID string) string {
	return fmt.Sprintf("unread:messages:%s", userID)
}

// GetNotificationCount returns the cached count, or found=false on
// miss or when the cache is disabled.
func (c *UnreadCache) GetNotificationCount(ctx context.Context, userID string) (int64, bool) {
	return c.get(ctx, notificationKey(userID))
}

func (c *UnreadCache) SetNotificationCount(ctx context.Context, userID string, count int64) {
	c.set(ctx, notificationKey(userID), count)
}

func (c *UnreadCache) GetMessageCount(ctx context.Context, userID string) (int64, bool) {
	return c.get(ctx, messageKey(userID))
}

func (c *UnreadCache) SetMessageCount(ctx context.Context, userID string, count int64) {
	c.set(ctx, messageKey(userID), count)
}

// Invalidate drops both counters for a user. Called after any write
// that could change them; the next read recomputes from the database.
func (c *UnreadCache) Invalidate(ctx context.Context, userID string) {
	if !c.Enabled() {
		return
	}
	c.client.Del(ctx, notificationKey(userID), messageKey(userID))
}

func (c *UnreadCache) get(ctx context.Context, key string) (int64, bool) {
	if !c.Enabled() {
		return 0, false
	}
	count, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *UnreadCache) set(ctx context.Context, key string, count int64) {
	if !c.Enabled() {
		return
	}
	c.client.Set(ctx, key, count, unreadTTL)
}

func (c *UnreadCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
