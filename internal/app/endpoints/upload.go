package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

type UploadService interface {
	ValidateTicketUpload(ctx context.Context, req dto.TicketUploadRequest) (dto.TicketUploadResponse, error)
}

type UploadEndpoint struct {
	ValidateTicketUpload endpoint.Endpoint
}

func MakeUploadEndpoint(service UploadService) UploadEndpoint {
	return UploadEndpoint{
		ValidateTicketUpload: makeEndpoint("upload service", service.ValidateTicketUpload),
	}
}
