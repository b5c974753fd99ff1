package service

import (
	"context"
	"log/slog"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/logger"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/upload"
)

type UploadService struct{}

func NewUploadService() *UploadService {
	return &UploadService{}
}

// ValidateTicketUpload gates an admin ticket document by its declared metadata.
func (s *UploadService) ValidateTicketUpload(ctx context.Context, req dto.TicketUploadRequest) (dto.TicketUploadResponse, error) {
	ctx = logger.WithBookingID(ctx, req.BookingID)

	origin := upload.Origin(req.Origin)
	if origin == "" {
		origin = upload.OriginPicker
	}

	err := upload.Validate(upload.File{
		Name:        req.FileName,
		Size:        req.Size,
		ContentType: req.ContentType,
		Origin:      origin,
	})
	if err != nil {
		slog.InfoContext(ctx, "ticket upload rejected", slog.String("file_name", req.FileName),
			slog.String("origin", string(origin)), slog.String("reason", err.Error()))
		return dto.TicketUploadResponse{}, err
	}

	slog.InfoContext(ctx, "ticket upload accepted", slog.String("file_name", req.FileName),
		slog.Int64("size", req.Size), slog.String("origin", string(origin)))

	return dto.TicketUploadResponse{
		BookingID:   req.BookingID,
		FileName:    req.FileName,
		Size:        req.Size,
		ContentType: req.ContentType,
		Origin:      string(origin),
		Accepted:    true,
	}, nil
}
