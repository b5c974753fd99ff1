package dto

import (
	"encoding/json"
	"net/http"

	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

// FlightOffer is the external offer record. Only the fields this service reads are
// typed; the original document is kept and sent back untouched.
type FlightOffer struct {
	Type                   string            `json:"type,omitempty"`
	ID                     string            `json:"id"`
	Source                 string            `json:"source,omitempty"`
	LastTicketingDate      string            `json:"lastTicketingDate,omitempty"`
	Itineraries            []Itinerary       `json:"itineraries"`
	Price                  Price             `json:"price"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes,omitempty"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`

	raw json.RawMessage
}

type Itinerary struct {
	Duration string    `json:"duration,omitempty"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	ID            string       `json:"id,omitempty"`
	Departure     LocationInfo `json:"departure"`
	Arrival       LocationInfo `json:"arrival"`
	CarrierCode   string       `json:"carrierCode"`
	Number        string       `json:"number"`
	Duration      string       `json:"duration,omitempty"`
	NumberOfStops int          `json:"numberOfStops"`
	BookingStatus string       `json:"bookingStatus,omitempty"`
}

type LocationInfo struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base,omitempty"`
	GrandTotal string `json:"grandTotal,omitempty"`
	Fees       []Fee  `json:"fees,omitempty"`
}

type Fee struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

type TravelerPricing struct {
	TravelerID   string `json:"travelerId"`
	FareOption   string `json:"fareOption,omitempty"`
	TravelerType string `json:"travelerType"`
	Price        Price  `json:"price"`
}

type flightOfferFields FlightOffer

// UnmarshalJSON keeps the raw document next to the typed view.
func (o *FlightOffer) UnmarshalJSON(data []byte) error {
	var fields flightOfferFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*o = FlightOffer(fields)
	o.raw = append(json.RawMessage(nil), data...)

	return nil
}

// MarshalJSON returns the document as received, or the typed view for offers built in code.
func (o FlightOffer) MarshalJSON() ([]byte, error) {
	if len(o.raw) > 0 {
		return o.raw, nil
	}

	return json.Marshal(flightOfferFields(o))
}

// PricingResponse is the envelope of the pricing confirmation call.
type PricingResponse struct {
	Data struct {
		FlightOffers []FlightOffer `json:"flightOffers"`
	} `json:"data"`
}

// ConfirmPricingRequest wraps the offer selected from the search results.
type ConfirmPricingRequest struct {
	Offer FlightOffer
}

func (c *ConfirmPricingRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Offer)
}

func (c *ConfirmPricingRequest) Bind(_ *http.Request) error {
	if c.Offer.ID == "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Kind:       exception.KindValidation,
			Message:    "flight offer id is a required field",
		}
	}

	if len(c.Offer.TravelerPricings) == 0 {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Kind:       exception.KindValidation,
			Message:    "flight offer has no traveler pricings",
		}
	}

	return nil
}
