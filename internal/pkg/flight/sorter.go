package flight

import (
	"sort"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortBookings orders bookings by departure date, ascending unless order is "desc".
// Bookings without a departure date go last either way. The sort is stable.
func SortBookings(bookings []dto.BookingSummary, order string) []dto.BookingSummary {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i].DepartureDate, bookings[j].DepartureDate
		if a == "" || b == "" {
			return a != "" && b == ""
		}

		if order == SortDesc {
			return a > b
		}

		return a < b
	})

	return bookings
}

// SortOffers orders ranked offers by the chosen field, best score first by default.
// Ties keep their upstream order.
func SortOffers(offers []dto.RankedOffer, sortOption *dto.SortOption) []dto.RankedOffer {
	var (
		option = ""
		order  = SortAsc
	)
	if sortOption != nil {
		option = sortOption.Field
		order = sortOption.Order
	}

	var less func(a, b dto.RankedOffer) bool
	switch option {
	case "price":
		less = func(a, b dto.RankedOffer) bool { return a.Price < b.Price }
	case "duration":
		less = func(a, b dto.RankedOffer) bool { return a.DurationMinutes < b.DurationMinutes }
	case "stops":
		less = func(a, b dto.RankedOffer) bool { return a.Stops < b.Stops }
	case "departure_time":
		less = func(a, b dto.RankedOffer) bool { return a.DepartureAt < b.DepartureAt }
	default:
		// best score
		less = func(a, b dto.RankedOffer) bool { return a.Score < b.Score }
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if order == SortDesc {
			return less(offers[j], offers[i])
		}
		return less(offers[i], offers[j])
	})

	return offers
}
