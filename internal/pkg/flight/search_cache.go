package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

// SearchCache keeps upstream search results keyed by the criteria sent upstream,
// so sorting and filtering a search again does not call the booking API.
type SearchCache struct {
	redisLock
}

func NewSearchCache(redis RedisClient) *SearchCache {
	return &SearchCache{
		redisLock: redisLock{redis: redis},
	}
}

func (c *SearchCache) GetLockKey(req dto.SearchCriteria) string {
	return fmt.Sprintf("search:lock:%s", req.QueryValues().Encode())
}

func (c *SearchCache) GetCacheKey(req dto.SearchCriteria) string {
	return fmt.Sprintf("search:cache:%s", req.QueryValues().Encode())
}

func (c *SearchCache) SetOffers(ctx context.Context, key string, offers []dto.FlightOffer, expiration time.Duration) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set offers: %w", err)
	}

	return nil
}

// GetOffers returns redis.Nil on a cache miss.
func (c *SearchCache) GetOffers(ctx context.Context, key string) ([]dto.FlightOffer, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var offers []dto.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offers: %w", err)
	}

	return offers, nil
}

func (c *SearchCache) GetLocationKey(keyword, subType string) string {
	return fmt.Sprintf("location:cache:%s:%s", strings.ToUpper(subType), strings.ToUpper(keyword))
}

func (c *SearchCache) SetLocations(ctx context.Context, key string, locations []dto.Location, expiration time.Duration) error {
	data, err := json.Marshal(locations)
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set locations: %w", err)
	}

	return nil
}

// GetLocations returns redis.Nil on a cache miss.
func (c *SearchCache) GetLocations(ctx context.Context, key string) ([]dto.Location, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var locations []dto.Location
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal locations: %w", err)
	}

	return locations, nil
}
