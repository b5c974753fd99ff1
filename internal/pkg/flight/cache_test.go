package flight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOfferCache_Keys(t *testing.T) {
	c := &OfferCache{}

	assert.Equal(t, "offer:lock:42", c.GetLockKey("42"))
	assert.Equal(t, "offer:cache:42", c.GetCacheKey("42"))
}

func TestOfferCache_AcquireLock_Closure(t *testing.T) {
	acquireLockRequest := func(key string, timeout time.Duration, mockSetup func(m *MockRedisClient), want bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewOfferCache(m)

			got, err := c.AcquireLock(context.Background(), key, timeout)
			if err != nil {
				t.Fatalf("AcquireLock returned error: %v", err)
			}
			if got != want {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}

	t.Run("lock_acquired", acquireLockRequest("offer:lock:1", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "offer:lock:1", "1", 5*time.Second).Return(redis.NewBoolResult(true, nil))
	}, true))

	t.Run("lock_not_acquired", acquireLockRequest("offer:lock:1", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "offer:lock:1", "1", 5*time.Second).Return(redis.NewBoolResult(false, nil))
	}, false))
}

func TestOfferCache_ReleaseLock(t *testing.T) {
	m := NewMockRedisClient(t)
	m.On("Del", mock.Anything, []string{"offer:lock:1"}).Return(redis.NewIntResult(1, nil))

	err := NewOfferCache(m).ReleaseLock(context.Background(), "offer:lock:1")

	assert.NoError(t, err)
}

func TestOfferCache_SetOffer_Closure(t *testing.T) {
	setOfferRequest := func(offer dto.FlightOffer, mockSetup func(m *MockRedisClient), wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewOfferCache(m)

			err := c.SetOffer(context.Background(), offer, 10*time.Minute)
			if (err != nil) != wantErr {
				t.Fatalf("SetOffer error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	offer := dto.FlightOffer{ID: "1"}

	t.Run("success", setOfferRequest(offer, func(m *MockRedisClient) {
		m.On("Set", mock.Anything, "offer:cache:1", mock.Anything, 10*time.Minute).Return(redis.NewStatusResult("OK", nil))
	}, false))

	t.Run("redis_error", setOfferRequest(offer, func(m *MockRedisClient) {
		m.On("Set", mock.Anything, "offer:cache:1", mock.Anything, 10*time.Minute).
			Return(redis.NewStatusResult("", errors.New("connection refused")))
	}, true))
}

func TestOfferCache_GetOffer_Closure(t *testing.T) {
	getOfferRequest := func(offerID string, mockSetup func(m *MockRedisClient), wantID string, wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewOfferCache(m)

			got, err := c.GetOffer(context.Background(), offerID)
			if wantErr != nil {
				assert.ErrorIs(t, err, wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, wantID, got.ID)
		}
	}

	t.Run("success", getOfferRequest("1", func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "offer:cache:1").Return(redis.NewStringResult(`{"id":"1","travelerPricings":[]}`, nil))
	}, "1", nil))

	t.Run("cache_miss", getOfferRequest("1", func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "offer:cache:1").Return(redis.NewStringResult("", redis.Nil))
	}, "", redis.Nil))
}

func TestOfferCache_RoundTripKeepsUnknownFields(t *testing.T) {
	const raw = `{"id":"7","itineraries":[],"price":{"currency":"EUR","total":"10.00"},"travelerPricings":[],"pricingOptions":{"fareType":["PUBLISHED"]}}`

	var stored interface{}
	m := NewMockRedisClient(t)
	m.On("Set", mock.Anything, "offer:cache:7", mock.Anything, time.Minute).
		Run(func(args mock.Arguments) { stored = args.Get(2) }).
		Return(redis.NewStatusResult("OK", nil))

	var offer dto.FlightOffer
	assert.NoError(t, offer.UnmarshalJSON([]byte(raw)))
	assert.NoError(t, NewOfferCache(m).SetOffer(context.Background(), offer, time.Minute))

	assert.Contains(t, string(stored.([]byte)), `"pricingOptions"`)
}
