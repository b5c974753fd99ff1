package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/facebookgo/clock"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/flight"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultSearchCacheExpiration   = 5 * time.Minute
	DefaultLocationCacheExpiration = 24 * time.Hour
	DefaultSearchMaxOffers         = 5
	DefaultSearchCurrency          = "USD"
)

type SearchCacher interface {
	GetLockKey(req dto.SearchCriteria) string
	GetCacheKey(req dto.SearchCriteria) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetOffers(ctx context.Context, key string) ([]dto.FlightOffer, error)
	SetOffers(ctx context.Context, key string, offers []dto.FlightOffer, expiration time.Duration) error
	GetLocationKey(keyword, subType string) string
	GetLocations(ctx context.Context, key string) ([]dto.Location, error)
	SetLocations(ctx context.Context, key string, locations []dto.Location, expiration time.Duration) error
}

type SearchAPI interface {
	SearchFlightOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightOffer, error)
	SearchLocations(ctx context.Context, keyword, subType string) ([]dto.Location, error)
}

type SearchServiceConfig struct {
	API                     SearchAPI
	Cache                   SearchCacher
	Clock                   clock.Clock
	CacheExpiration         time.Duration
	LocationCacheExpiration time.Duration
	LockTimeout             time.Duration
	MaxOffers               int
	DefaultCurrency         string
}

// SearchService finds flight offers and locations through the booking API,
// caching upstream results in redis.
type SearchService struct {
	API                     SearchAPI
	Cache                   SearchCacher
	Clock                   clock.Clock
	CacheExpiration         time.Duration
	LocationCacheExpiration time.Duration
	LockTimeout             time.Duration
	MaxOffers               int
	DefaultCurrency         string
}

func NewSearchService(cfg SearchServiceConfig) *SearchService {
	s := &SearchService{
		API:                     cfg.API,
		Cache:                   cfg.Cache,
		Clock:                   cfg.Clock,
		CacheExpiration:         cfg.CacheExpiration,
		LocationCacheExpiration: cfg.LocationCacheExpiration,
		LockTimeout:             cfg.LockTimeout,
		MaxOffers:               cfg.MaxOffers,
		DefaultCurrency:         cfg.DefaultCurrency,
	}

	if s.Clock == nil {
		s.Clock = clock.New()
	}
	if s.CacheExpiration <= 0 {
		s.CacheExpiration = DefaultSearchCacheExpiration
	}
	if s.LocationCacheExpiration <= 0 {
		s.LocationCacheExpiration = DefaultLocationCacheExpiration
	}
	if s.LockTimeout <= 0 {
		s.LockTimeout = DefaultLockTimeout
	}
	if s.MaxOffers <= 0 {
		s.MaxOffers = DefaultSearchMaxOffers
	}
	if s.DefaultCurrency == "" {
		s.DefaultCurrency = DefaultSearchCurrency
	}

	return s
}

// SearchFlights returns the offers for the criteria, filtered, ranked and sorted.
// An empty result is not an error.
func (s *SearchService) SearchFlights(ctx context.Context, req dto.SearchCriteria) (dto.SearchFlightResponse, error) {
	startTime := s.Clock.Now()

	if req.CurrencyCode == "" {
		req.CurrencyCode = s.DefaultCurrency
	}
	if req.Max <= 0 {
		req.Max = s.MaxOffers
	}

	cacheKey := s.Cache.GetCacheKey(req)
	cacheHit := false

	offers, err := s.Cache.GetOffers(ctx, cacheKey)
	switch {
	case err == nil:
		cacheHit = true
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "failed to get offers from cache", slog.String("error", err.Error()))
	}

	if !cacheHit {
		offers, err = s.API.SearchFlightOffers(ctx, req)
		if err != nil {
			return dto.SearchFlightResponse{}, fmt.Errorf("search flight offers: %w", err)
		}

		// concurrent searches with the same criteria write the cache once
		s.storeOffers(ctx, req, cacheKey, offers)
	}

	measured := flight.MeasureOffers(offers)
	filtered := flight.FilterOffers(measured, req.FilterOption)
	ranked := flight.RankOffers(filtered)
	sorted := flight.SortOffers(ranked, req.SortOption)

	slog.InfoContext(ctx, "flight search completed",
		slog.Int("results", len(sorted)), slog.Bool("cache_hit", cacheHit))

	return dto.SearchFlightResponse{
		SearchCriteria: req,
		Metadata: dto.SearchMetadata{
			TotalResults: len(sorted),
			SearchTimeMs: int(s.Clock.Now().Sub(startTime).Milliseconds()),
			CacheHit:     cacheHit,
		},
		Offers: sorted,
	}, nil
}

func (s *SearchService) storeOffers(ctx context.Context, req dto.SearchCriteria, cacheKey string, offers []dto.FlightOffer) {
	lockKey := s.Cache.GetLockKey(req)

	acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.LockTimeout)
	if err != nil {
		slog.WarnContext(ctx, "failed to acquire search lock", slog.String("error", err.Error()))
		return
	}

	if !acquired {
		return
	}
	defer s.Cache.ReleaseLock(ctx, lockKey)

	if err := s.Cache.SetOffers(ctx, cacheKey, offers, s.CacheExpiration); err != nil {
		slog.WarnContext(ctx, "failed to cache search results", slog.String("error", err.Error()))
	}
}

// SearchLocations autocompletes airports and cities. Keywords shorter than two
// characters return no locations without calling the booking API.
func (s *SearchService) SearchLocations(ctx context.Context, req dto.LocationSearchRequest) (dto.LocationSearchResponse, error) {
	response := dto.LocationSearchResponse{Keyword: req.Keyword, Locations: []dto.LocationResult{}}
	if len([]rune(req.Keyword)) < dto.MinLocationKeyword {
		return response, nil
	}

	key := s.Cache.GetLocationKey(req.Keyword, req.SubType)

	locations, err := s.Cache.GetLocations(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "failed to get locations from cache", slog.String("error", err.Error()))
		}

		locations, err = s.API.SearchLocations(ctx, req.Keyword, req.SubType)
		if err != nil {
			return dto.LocationSearchResponse{}, fmt.Errorf("search locations: %w", err)
		}

		if err := s.Cache.SetLocations(ctx, key, locations, s.LocationCacheExpiration); err != nil {
			slog.WarnContext(ctx, "failed to cache locations", slog.String("error", err.Error()))
		}
	}

	for _, location := range locations {
		response.Locations = append(response.Locations, dto.LocationResult{
			Location:    location,
			DisplayName: location.Label(),
		})
	}

	return response, nil
}
