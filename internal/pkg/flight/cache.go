package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisLock is a SetNX lock shared by the caches.
type redisLock struct {
	redis RedisClient
}

func (l redisLock) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return l.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (l redisLock) ReleaseLock(ctx context.Context, key string) error {
	return l.redis.Del(ctx, key).Err()
}

// OfferCache keeps priced offers so a booking session can be opened by offer id.
type OfferCache struct {
	redisLock
}

func NewOfferCache(redis RedisClient) *OfferCache {
	return &OfferCache{
		redisLock: redisLock{redis: redis},
	}
}

func (c *OfferCache) GetLockKey(offerID string) string {
	return fmt.Sprintf("offer:lock:%s", offerID)
}

func (c *OfferCache) GetCacheKey(offerID string) string {
	return fmt.Sprintf("offer:cache:%s", offerID)
}

func (c *OfferCache) SetOffer(ctx context.Context, offer dto.FlightOffer, expiration time.Duration) error {
	data, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("failed to marshal offer: %w", err)
	}

	err = c.redis.Set(ctx, c.GetCacheKey(offer.ID), data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set offer: %w", err)
	}

	return nil
}

// GetOffer returns redis.Nil when the offer is not cached or has expired.
func (c *OfferCache) GetOffer(ctx context.Context, offerID string) (dto.FlightOffer, error) {
	data, err := c.redis.Get(ctx, c.GetCacheKey(offerID)).Bytes()
	if err != nil {
		return dto.FlightOffer{}, err
	}

	var offer dto.FlightOffer
	if err := json.Unmarshal(data, &offer); err != nil {
		return dto.FlightOffer{}, fmt.Errorf("failed to unmarshal offer: %w", err)
	}

	return offer, nil
}
