package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	recentSearchLimit = 10
	sessionTTL        = 30 * 24 * time.Hour
)

// RedisRecentSearches stores search history in a capped Redis list per
// session.
type RedisRecentSearches struct {
	client *redis.Client
}

func NewRedisRecentSearches(client *redis.Client) *RedisRecentSearches {
	return &RedisRecentSearches{client: client}
}

func recentKey(sessionID string) string { return "recent_searches:" + sessionID }

func (s *RedisRecentSearches) List(ctx context.Context, sessionID string) ([]string, error) {
	terms, err := s.client.LRange(ctx, recentKey(sessionID), 0, recentSearchLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent searches: %w", err)
	}
	return terms, nil
}

func (s *RedisRecentSearches) Add(ctx context.Context, sessionID, term string) error {
	key := recentKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, term) // de-duplicate, latest occurrence wins
	pipe.LPush(ctx, key, term)
	pipe.LTrim(ctx, key, 0, recentSearchLimit-1)
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add recent search: %w", err)
	}
	return nil
}

func (s *RedisRecentSearches) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, recentKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

// RedisWishlist stores saved tours in a Redis set per session.
type RedisWishlist struct {
	client *redis.Client
}

func NewRedisWishlist(client *redis.Client) *RedisWishlist {
	return &RedisWishlist{client: client}
}

func wishlistKey(sessionID string) string { return "wishlist:" + sessionID }

func (s *RedisWishlist) List(ctx context.Context, sessionID string) ([]uint, error) {
	members, err := s.client.SMembers(ctx, wishlistKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func (s *RedisWishlist) Add(ctx context.Context, sessionID string, tourID uint) error {
	key := wishlistKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key, strconv.FormatUint(uint64(tourID), 10))
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

func (s *RedisWishlist) Remove(ctx context.Context, sessionID string, tourID uint) error {
	if err := s.client.SRem(ctx, wishlistKey(sessionID), strconv.FormatUint(uint64(tourID), 10)).Err(); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}
