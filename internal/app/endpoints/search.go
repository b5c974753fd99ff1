package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

type SearchService interface {
	SearchFlights(ctx context.Context, req dto.SearchCriteria) (dto.SearchFlightResponse, error)
	SearchLocations(ctx context.Context, req dto.LocationSearchRequest) (dto.LocationSearchResponse, error)
}

type SearchEndpoint struct {
	SearchFlights   endpoint.Endpoint
	SearchLocations endpoint.Endpoint
}

func MakeSearchEndpoint(service SearchService) SearchEndpoint {
	return SearchEndpoint{
		SearchFlights:   makeEndpoint("search service", service.SearchFlights),
		SearchLocations: makeEndpoint("search service", service.SearchLocations),
	}
}
