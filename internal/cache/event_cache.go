package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-gin-event-ticketing/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 快取中沒有該活動
var ErrCacheMiss = errors.New("cache miss")

type EventCache interface {
	// 讀取：取得快取中的活動
	Get(ctx context.Context, eventID int) (*model.Event, error)
	// 寫入：以 TTL 寫入活動
	Set(ctx context.Context, event *model.Event) error
	// 失效：活動更新或刪除時移除快取
	Invalidate(ctx context.Context, eventID int) error
}

type RedisEventCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventCache(client *redis.Client, ttl time.Duration) EventCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisEventCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

// 活動 key
func (c *RedisEventCacheImpl) getEventKey(eventID int) string {
	return fmt.Sprintf("event:%d", eventID)
}

func (c *RedisEventCacheImpl) Get(ctx context.Context, eventID int) (*model.Event, error) {
	val, err := c.client.Get(ctx, c.getEventKey(eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal(val, &event); err != nil {
		return nil, fmt.Errorf("invalid cached event: %w", err)
	}
	return &event, nil
}

func (c *RedisEventCacheImpl) Set(ctx context.Context, event *model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return c.client.Set(ctx, c.getEventKey(event.ID), data, c.ttl).Err()
}

func (c *RedisEventCacheImpl) Invalidate(ctx context.Context, eventID int) error {
	return c.client.Del(ctx, c.getEventKey(eventID)).Err()
}
