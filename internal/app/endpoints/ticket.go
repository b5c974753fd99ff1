package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

type TicketService interface {
	Track(ctx context.Context, req dto.TicketRequest) (dto.TicketStatusResponse, error)
	Status(ctx context.Context, req dto.TicketRequest) (dto.TicketStatusResponse, error)
	Untrack(ctx context.Context, req dto.TicketRequest) error
}

type TicketEndpoint struct {
	Track   endpoint.Endpoint
	Status  endpoint.Endpoint
	Untrack endpoint.Endpoint
}

func MakeTicketEndpoint(service TicketService) TicketEndpoint {
	return TicketEndpoint{
		Track:   makeEndpoint("ticket service", service.Track),
		Status:  makeEndpoint("ticket service", service.Status),
		Untrack: makeUntrackEndpoint(service),
	}
}

func makeUntrackEndpoint(service TicketService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.TicketRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		if err := service.Untrack(ctx, *request); err != nil {
			return nil, fmt.Errorf("ticket service: %w", err)
		}

		return nil, nil
	}
}
