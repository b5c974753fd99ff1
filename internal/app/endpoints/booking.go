package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

type BookingService interface {
	ConfirmPricing(ctx context.Context, req dto.ConfirmPricingRequest) (dto.FlightOffer, error)
	CreateSession(ctx context.Context, req dto.CreateSessionRequest) (dto.SessionResponse, error)
	GetSession(ctx context.Context, req dto.SessionRequest) (dto.SessionResponse, error)
	UpdateTraveler(ctx context.Context, req dto.UpdateTravelerRequest) (dto.SessionResponse, error)
	Next(ctx context.Context, req dto.SessionRequest) (dto.SessionResponse, error)
	Previous(ctx context.Context, req dto.SessionRequest) (dto.SessionResponse, error)
	SetTerms(ctx context.Context, req dto.TermsRequest) (dto.SessionResponse, error)
	Submit(ctx context.Context, req dto.SubmitRequest) (dto.SubmitResponse, error)
	PassportExpiryRange(ctx context.Context) dto.PassportExpiryRange
}

type BookingEndpoint struct {
	ConfirmPricing      endpoint.Endpoint
	CreateSession       endpoint.Endpoint
	GetSession          endpoint.Endpoint
	UpdateTraveler      endpoint.Endpoint
	Next                endpoint.Endpoint
	Previous            endpoint.Endpoint
	SetTerms            endpoint.Endpoint
	Submit              endpoint.Endpoint
	PassportExpiryRange endpoint.Endpoint
}

func MakeBookingEndpoint(service BookingService) BookingEndpoint {
	return BookingEndpoint{
		ConfirmPricing:      makeEndpoint("booking service", service.ConfirmPricing),
		CreateSession:       makeEndpoint("booking service", service.CreateSession),
		GetSession:          makeEndpoint("booking service", service.GetSession),
		UpdateTraveler:      makeEndpoint("booking service", service.UpdateTraveler),
		Next:                makeEndpoint("booking service", service.Next),
		Previous:            makeEndpoint("booking service", service.Previous),
		SetTerms:            makeEndpoint("booking service", service.SetTerms),
		Submit:              makeEndpoint("booking service", service.Submit),
		PassportExpiryRange: makePassportExpiryRangeEndpoint(service),
	}
}

func makePassportExpiryRangeEndpoint(service BookingService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return service.PassportExpiryRange(ctx), nil
	}
}
