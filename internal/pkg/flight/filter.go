package flight

import (
	"strings"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

const PageSize = 10

// FilterBookings keeps bookings whose reference, route, airline or passenger
// names contain search, ignoring case. A blank search keeps everything.
func FilterBookings(bookings []dto.BookingSummary, search string) []dto.BookingSummary {
	s := strings.ToLower(strings.TrimSpace(search))
	if s == "" {
		return bookings
	}

	results := make([]dto.BookingSummary, 0, len(bookings))

	for _, booking := range bookings {
		if matchesSearch(booking, s) {
			results = append(results, booking)
		}
	}

	return results
}

func matchesSearch(booking dto.BookingSummary, s string) bool {
	fields := []string{booking.BookingID, booking.PNR, booking.Origin, booking.Destination, booking.Airline}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}

	for _, name := range booking.PassengerNames {
		if strings.Contains(strings.ToLower(name), s) {
			return true
		}
	}

	return false
}

// Paginate returns one page of bookings with its metadata. Pages start at 1;
// a page past the end is empty.
func Paginate(bookings []dto.BookingSummary, page int) dto.BookingListResponse {
	if page < 1 {
		page = 1
	}

	total := len(bookings)
	totalPages := (total + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}

	end := start + PageSize
	if end > total {
		end = total
	}

	paged := make([]dto.BookingSummary, end-start)
	copy(paged, bookings[start:end])

	return dto.BookingListResponse{
		Metadata: dto.BookingListMetadata{
			Page:         page,
			PageSize:     PageSize,
			TotalResults: total,
			TotalPages:   totalPages,
		},
		Bookings: paged,
	}
}

// FilterOffers keeps the offers that satisfy every option that is set.
func FilterOffers(offers []dto.RankedOffer, filterOpts *dto.FilterOption) []dto.RankedOffer {
	if filterOpts == nil {
		return offers
	}

	results := make([]dto.RankedOffer, 0, len(offers))

	for _, offer := range offers {
		if filterOpts.Airline != nil && !strings.EqualFold(*filterOpts.Airline, offer.Airline) {
			continue
		}

		if filterOpts.MaxPrice != nil && offer.Price > *filterOpts.MaxPrice {
			continue
		}

		if filterOpts.MinPrice != nil && offer.Price < *filterOpts.MinPrice {
			continue
		}

		if filterOpts.MaxStops != nil && offer.Stops > *filterOpts.MaxStops {
			continue
		}

		if filterOpts.MaxDurationMinutes != nil && offer.DurationMinutes > *filterOpts.MaxDurationMinutes {
			continue
		}

		results = append(results, offer)
	}

	return results
}
