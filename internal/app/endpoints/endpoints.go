package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
)

// Endpoints groups every go-kit endpoint served over HTTP.
type Endpoints struct {
	SearchEndpoint  SearchEndpoint
	BookingEndpoint BookingEndpoint
	TicketEndpoint  TicketEndpoint
	AccountEndpoint AccountEndpoint
	UploadEndpoint  UploadEndpoint
}

// makeEndpoint adapts a service method taking *Req as decoded by the transport.
func makeEndpoint[Req any, Resp any](name string, call func(ctx context.Context, req Req) (Resp, error)) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*Req)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := call(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return resp, nil
	}
}
