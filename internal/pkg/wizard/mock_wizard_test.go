package wizard

import (
	"context"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/stretchr/testify/mock"
)

type mockT interface {
	mock.TestingT
	Cleanup(func())
}

type MockOrderSubmitter struct {
	mock.Mock
}

func NewMockOrderSubmitter(t mockT) *MockOrderSubmitter {
	m := &MockOrderSubmitter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderSubmitter) CreateFlightOrder(ctx context.Context, token string, booking dto.FlightBookingData) (dto.FlightOrder, error) {
	args := m.Called(ctx, token, booking)
	return args.Get(0).(dto.FlightOrder), args.Error(1)
}

type MockNavigator struct {
	mock.Mock
}

func NewMockNavigator(t mockT) *MockNavigator {
	m := &MockNavigator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNavigator) Navigate(ctx context.Context, path string) {
	m.Called(ctx, path)
}

type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier(t mockT) *MockNotifier {
	m := &MockNotifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotifier) Notify(ctx context.Context, message string) {
	m.Called(ctx, message)
}
