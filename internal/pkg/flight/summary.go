package flight

import (
	"fmt"
	"strings"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/utils"
)

const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"

	TicketStatusReady      = "ready"
	TicketStatusProcessing = "processing"

	referenceUnknown = "N/A"
)

// Reference returns the booking reference of an order, "N/A" when it has none.
func Reference(order dto.FlightOrder) string {
	if len(order.AssociatedRecords) == 0 || order.AssociatedRecords[0].Reference == "" {
		return referenceUnknown
	}

	return order.AssociatedRecords[0].Reference
}

// TicketURL is where the ticket document of a booking reference is served.
func TicketURL(reference string) string {
	return fmt.Sprintf("/tickets/%s.pdf", reference)
}

// FirstSegmentStatus returns the booking status of the first segment of the first itinerary.
func FirstSegmentStatus(order dto.FlightOrder) string {
	segments := firstSegments(order)
	if len(segments) == 0 {
		return ""
	}

	return segments[0].BookingStatus
}

// Summarize maps an order to its "my bookings" row. Orders without a priced
// itinerary keep only their identity and travelers.
func Summarize(order dto.FlightOrder) dto.BookingSummary {
	reference := Reference(order)

	summary := dto.BookingSummary{
		ID:             order.ID,
		BookingID:      reference,
		PNR:            reference,
		TicketStatus:   TicketStatusProcessing,
		Passengers:     len(order.Travelers),
		PassengerNames: make([]string, 0, len(order.Travelers)),
	}

	for _, t := range order.Travelers {
		summary.PassengerNames = append(summary.PassengerNames,
			strings.TrimSpace(t.Name.FirstName+" "+t.Name.LastName))
	}

	if len(order.AssociatedRecords) > 1 && order.AssociatedRecords[1].CreationDate != "" {
		issuedAt := utils.DatePart(order.AssociatedRecords[1].CreationDate)
		summary.IssuedAt = &issuedAt
	}

	if len(order.FlightOffers) == 0 {
		return summary
	}

	offer := order.FlightOffers[0]
	summary.Total = offer.Price.Total
	summary.Currency = offer.Price.Currency
	if len(offer.ValidatingAirlineCodes) > 0 {
		summary.Airline = offer.ValidatingAirlineCodes[0]
	}

	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return summary
	}

	itinerary := offer.Itineraries[0]
	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	summary.Status = first.BookingStatus
	summary.Origin = first.Departure.IataCode
	summary.Destination = last.Arrival.IataCode
	summary.DepartureDate = utils.DatePart(first.Departure.At)
	summary.FlightNumber = first.CarrierCode + first.Number
	summary.Duration = utils.FormatISODuration(itinerary.Duration)

	if len(itinerary.Segments) > 1 {
		returnDate := utils.DatePart(last.Arrival.At)
		summary.ReturnDate = &returnDate
	}

	if first.BookingStatus == BookingStatusConfirmed {
		summary.TicketStatus = TicketStatusReady
		url := TicketURL(reference)
		summary.TicketURL = &url
	}

	return summary
}

func SummarizeAll(orders []dto.FlightOrder) []dto.BookingSummary {
	summaries := make([]dto.BookingSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, Summarize(order))
	}

	return summaries
}

func firstSegments(order dto.FlightOrder) []dto.Segment {
	if len(order.FlightOffers) == 0 || len(order.FlightOffers[0].Itineraries) == 0 {
		return nil
	}

	return order.FlightOffers[0].Itineraries[0].Segments
}
