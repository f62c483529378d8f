// Package cache implements domain.RecommendationCache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gatherplan/internal/domain"
)

const keyPrefix = "recommendations:"

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis returns a RecommendationCache storing one JSON value per event.
// A zero ttl keeps entries until they are replaced.
func NewRedis(rdb *redis.Client, ttl time.Duration) domain.RecommendationCache {
	return &redisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(eventID string) string {
	return keyPrefix + eventID
}

func (c *redisCache) Get(ctx context.Context, eventID string) ([]*domain.Venue, error) {
	b, err := c.rdb.Get(ctx, cacheKey(eventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*domain.Venue{}, nil
		}
		return nil, fmt.Errorf("get cached recommendations: %w", err)
	}
	var venues []*domain.Venue
	if err := json.Unmarshal(b, &venues); err != nil {
		return nil, fmt.Errorf("decode cached recommendations: %w", err)
	}
	out := make([]*domain.Venue, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.WithDefaults())
	}
	return out, nil
}

// Replace overwrites the event's entry in a single SET, so readers never see a partial list.
func (c *redisCache) Replace(ctx context.Context, eventID string, venues []*domain.Venue) error {
	if len(venues) == 0 {
		if err := c.rdb.Del(ctx, cacheKey(eventID)).Err(); err != nil {
			return fmt.Errorf("clear cached recommendations: %w", err)
		}
		return nil
	}
	stored := make([]*domain.Venue, 0, len(venues))
	for _, v := range venues {
		s := v.WithDefaults()
		s.MatchingComments = nil
		stored = append(stored, s)
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	if err := c.rdb.Set(ctx, cacheKey(eventID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached recommendations: %w", err)
	}
	return nil
}
