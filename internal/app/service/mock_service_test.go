//go:build unit

package service

import (
	"context"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/stretchr/testify/mock"
)

type mockT interface {
	mock.TestingT
	Cleanup(func())
}

type MockBookingAPI struct {
	mock.Mock
}

func NewMockBookingAPI(t mockT) *MockBookingAPI {
	m := &MockBookingAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookingAPI) ConfirmPricing(ctx context.Context, offer dto.FlightOffer) (dto.FlightOffer, error) {
	args := m.Called(ctx, offer)
	return args.Get(0).(dto.FlightOffer), args.Error(1)
}

func (m *MockBookingAPI) CreateFlightOrder(ctx context.Context, token string, booking dto.FlightBookingData) (dto.FlightOrder, error) {
	args := m.Called(ctx, token, booking)
	return args.Get(0).(dto.FlightOrder), args.Error(1)
}

type MockOfferCacher struct {
	mock.Mock
}

func NewMockOfferCacher(t mockT) *MockOfferCacher {
	m := &MockOfferCacher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOfferCacher) GetLockKey(offerID string) string {
	args := m.Called(offerID)
	return args.String(0)
}

func (m *MockOfferCacher) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	args := m.Called(ctx, key, timeout)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferCacher) ReleaseLock(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockOfferCacher) SetOffer(ctx context.Context, offer dto.FlightOffer, expiration time.Duration) error {
	args := m.Called(ctx, offer, expiration)
	return args.Error(0)
}

func (m *MockOfferCacher) GetOffer(ctx context.Context, offerID string) (dto.FlightOffer, error) {
	args := m.Called(ctx, offerID)
	return args.Get(0).(dto.FlightOffer), args.Error(1)
}

type MockSubmitLimiter struct {
	mock.Mock
}

func NewMockSubmitLimiter(t mockT) *MockSubmitLimiter {
	m := &MockSubmitLimiter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSubmitLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	args := m.Called(ctx, key, limit)
	res, _ := args.Get(0).(*redis_rate.Result)
	return res, args.Error(1)
}

type MockAccountAPI struct {
	mock.Mock
}

func NewMockAccountAPI(t mockT) *MockAccountAPI {
	m := &MockAccountAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountAPI) ListBookings(ctx context.Context, token string) ([]dto.FlightOrder, error) {
	args := m.Called(ctx, token)
	orders, _ := args.Get(0).([]dto.FlightOrder)
	return orders, args.Error(1)
}

func (m *MockAccountAPI) VerifyResetToken(ctx context.Context, token string) (dto.VerifyResetTokenResponse, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(dto.VerifyResetTokenResponse), args.Error(1)
}

func (m *MockAccountAPI) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAccountAPI) ChangePassword(ctx context.Context, token string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, token, req)
	return args.Error(0)
}

type MockSearchAPI struct {
	mock.Mock
}

func NewMockSearchAPI(t mockT) *MockSearchAPI {
	m := &MockSearchAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSearchAPI) SearchFlightOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightOffer, error) {
	args := m.Called(ctx, criteria)
	offers, _ := args.Get(0).([]dto.FlightOffer)
	return offers, args.Error(1)
}

func (m *MockSearchAPI) SearchLocations(ctx context.Context, keyword, subType string) ([]dto.Location, error) {
	args := m.Called(ctx, keyword, subType)
	locations, _ := args.Get(0).([]dto.Location)
	return locations, args.Error(1)
}

type MockSearchCacher struct {
	mock.Mock
}

func NewMockSearchCacher(t mockT) *MockSearchCacher {
	m := &MockSearchCacher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSearchCacher) GetLockKey(req dto.SearchCriteria) string {
	args := m.Called(req)
	return args.String(0)
}

func (m *MockSearchCacher) GetCacheKey(req dto.SearchCriteria) string {
	args := m.Called(req)
	return args.String(0)
}

func (m *MockSearchCacher) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	args := m.Called(ctx, key, timeout)
	return args.Bool(0), args.Error(1)
}

func (m *MockSearchCacher) ReleaseLock(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSearchCacher) GetOffers(ctx context.Context, key string) ([]dto.FlightOffer, error) {
	args := m.Called(ctx, key)
	offers, _ := args.Get(0).([]dto.FlightOffer)
	return offers, args.Error(1)
}

func (m *MockSearchCacher) SetOffers(ctx context.Context, key string, offers []dto.FlightOffer, expiration time.Duration) error {
	args := m.Called(ctx, key, offers, expiration)
	return args.Error(0)
}

func (m *MockSearchCacher) GetLocationKey(keyword, subType string) string {
	args := m.Called(keyword, subType)
	return args.String(0)
}

func (m *MockSearchCacher) GetLocations(ctx context.Context, key string) ([]dto.Location, error) {
	args := m.Called(ctx, key)
	locations, _ := args.Get(0).([]dto.Location)
	return locations, args.Error(1)
}

func (m *MockSearchCacher) SetLocations(ctx context.Context, key string, locations []dto.Location, expiration time.Duration) error {
	args := m.Called(ctx, key, locations, expiration)
	return args.Error(0)
}
