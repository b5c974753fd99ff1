package ticketstatus

import (
	"context"
	"math/rand"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/flight"
)

const (
	DefaultMaxIncrement = 15

	MsgBookingNotFound  = "booking not found"
	MsgBookingCancelled = "booking was cancelled"
)

// SimulatedSource advances progress by a random amount in [0, MaxIncrement) per tick.
type SimulatedSource struct {
	MaxIncrement float64
	// Rand returns a value in [0, 1). Defaults to math/rand.
	Rand func() float64
}

func NewSimulatedSource(maxIncrement float64) *SimulatedSource {
	if maxIncrement <= 0 {
		maxIncrement = DefaultMaxIncrement
	}

	return &SimulatedSource{MaxIncrement: maxIncrement, Rand: rand.Float64}
}

func (s *SimulatedSource) Next(_ context.Context, current State) (Update, error) {
	r := s.Rand
	if r == nil {
		r = rand.Float64
	}

	return Update{
		Status:    StatusProcessing,
		Progress:  current.Progress + r()*s.MaxIncrement,
		TicketURL: DefaultTicketURL(current.BookingID),
	}, nil
}

// OrderLister is the part of the booking API client used to look up orders.
type OrderLister interface {
	ListBookings(ctx context.Context, token string) ([]dto.FlightOrder, error)
}

// OrderSource reads the booking status from the user's orders.
type OrderSource struct {
	lister OrderLister
	token  string
}

func NewOrderSource(lister OrderLister, token string) *OrderSource {
	return &OrderSource{lister: lister, token: token}
}

func (s *OrderSource) Next(ctx context.Context, current State) (Update, error) {
	orders, err := s.lister.ListBookings(ctx, s.token)
	if err != nil {
		return Update{}, err
	}

	for _, order := range orders {
		if order.ID != current.BookingID {
			continue
		}

		switch flight.FirstSegmentStatus(order) {
		case flight.BookingStatusConfirmed:
			return Update{
				Status:    StatusReady,
				Progress:  100,
				TicketURL: flight.TicketURL(flight.Reference(order)),
			}, nil
		case flight.BookingStatusCancelled:
			return Update{Status: StatusCancelled, ErrorMessage: MsgBookingCancelled}, nil
		default:
			return Update{Status: StatusProcessing, Progress: current.Progress}, nil
		}
	}

	return Update{Status: StatusFailed, ErrorMessage: MsgBookingNotFound}, nil
}
