package flight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

func TestSortBookings(t *testing.T) {
	sortRequest := func(order string, wantIDs []string) func(t *testing.T) {
		return func(t *testing.T) {
			bookings := []dto.BookingSummary{
				{ID: "a", DepartureDate: "2024-06-10"},
				{ID: "b", DepartureDate: ""},
				{ID: "c", DepartureDate: "2024-01-05"},
				{ID: "d", DepartureDate: "2024-06-10"},
			}

			got := SortBookings(bookings, order)
			gotIDs := make([]string, len(got))
			for i, b := range got {
				gotIDs[i] = b.ID
			}

			if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
				t.Fatalf("SortBookings result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("ascending_default", sortRequest("", []string{"c", "a", "d", "b"}))
	t.Run("ascending", sortRequest(SortAsc, []string{"c", "a", "d", "b"}))
	t.Run("descending", sortRequest(SortDesc, []string{"a", "d", "c", "b"}))
}

func TestSortOffers(t *testing.T) {
	sortRequest := func(option *dto.SortOption, wantIDs []string) func(t *testing.T) {
		return func(t *testing.T) {
			offers := []dto.RankedOffer{
				{Offer: dto.FlightOffer{ID: "a"}, Score: 0.4, Price: 300, DurationMinutes: 90, Stops: 1, DepartureAt: "2026-11-01T09:00:00"},
				{Offer: dto.FlightOffer{ID: "b"}, Score: 0.1, Price: 500, DurationMinutes: 60, Stops: 0, DepartureAt: "2026-11-01T13:00:00"},
				{Offer: dto.FlightOffer{ID: "c"}, Score: 0.9, Price: 200, DurationMinutes: 240, Stops: 1, DepartureAt: "2026-11-01T06:30:00"},
			}

			got := SortOffers(offers, option)
			gotIDs := make([]string, len(got))
			for i, o := range got {
				gotIDs[i] = o.Offer.ID
			}

			if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
				t.Fatalf("SortOffers result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("best_score_default", sortRequest(nil, []string{"b", "a", "c"}))
	t.Run("price_asc", sortRequest(&dto.SortOption{Field: "price", Order: SortAsc}, []string{"c", "a", "b"}))
	t.Run("price_desc", sortRequest(&dto.SortOption{Field: "price", Order: SortDesc}, []string{"b", "a", "c"}))
	t.Run("duration", sortRequest(&dto.SortOption{Field: "duration", Order: SortAsc}, []string{"b", "a", "c"}))
	t.Run("stops_stable", sortRequest(&dto.SortOption{Field: "stops", Order: SortAsc}, []string{"b", "a", "c"}))
	t.Run("departure_time", sortRequest(&dto.SortOption{Field: "departure_time", Order: SortAsc}, []string{"c", "a", "b"}))
}
