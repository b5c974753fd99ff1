package flight

import (
	"strconv"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/utils"
)

// MeasureOffers reads the price, duration, stops, airline and departure of every offer.
// Scores are left at zero until the offers are ranked.
func MeasureOffers(offers []dto.FlightOffer) []dto.RankedOffer {
	results := make([]dto.RankedOffer, 0, len(offers))
	for _, offer := range offers {
		results = append(results, MeasureOffer(offer))
	}

	return results
}

func MeasureOffer(offer dto.FlightOffer) dto.RankedOffer {
	ranked := dto.RankedOffer{
		Offer:    offer,
		Price:    offerPrice(offer.Price),
		Currency: offer.Price.Currency,
		Airline:  offerAirline(offer),
	}

	for _, itinerary := range offer.Itineraries {
		minutes, ok := utils.ConvertISODurationToMinutes(itinerary.Duration)
		if !ok {
			// fall back to the flying time of the segments
			minutes = 0
			for _, segment := range itinerary.Segments {
				m, _ := utils.ConvertISODurationToMinutes(segment.Duration)
				minutes += m
			}
		}
		ranked.DurationMinutes += int(minutes)

		if len(itinerary.Segments) > 0 {
			ranked.Stops += len(itinerary.Segments) - 1
		}
		for _, segment := range itinerary.Segments {
			ranked.Stops += segment.NumberOfStops
		}
	}

	if len(offer.Itineraries) > 0 && len(offer.Itineraries[0].Segments) > 0 {
		ranked.DepartureAt = offer.Itineraries[0].Segments[0].Departure.At
	}

	return ranked
}

// offerPrice prefers the grand total, which includes the fees, over the total.
func offerPrice(price dto.Price) float64 {
	for _, raw := range []string{price.GrandTotal, price.Total} {
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}

	return 0
}

func offerAirline(offer dto.FlightOffer) string {
	if len(offer.ValidatingAirlineCodes) > 0 {
		return offer.ValidatingAirlineCodes[0]
	}

	for _, itinerary := range offer.Itineraries {
		if len(itinerary.Segments) > 0 {
			return itinerary.Segments[0].CarrierCode
		}
	}

	return ""
}
