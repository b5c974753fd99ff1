package dto

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/upload"
)

type TicketRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Token     string `json:"-"`
}

func (t *TicketRequest) Bind(r *http.Request) error {
	t.BookingID = chi.URLParam(r, "bookingID")
	t.Token = BearerToken(r)

	return validationError(t)
}

type TicketStatusResponse struct {
	BookingID    string    `json:"booking_id"`
	Status       string    `json:"status"`
	Progress     float64   `json:"progress"`
	TicketURL    string    `json:"ticket_url,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}

// TicketUploadRequest carries the declared metadata of an admin ticket upload.
// The handler fills it from the multipart header, the bytes are never kept.
type TicketUploadRequest struct {
	BookingID   string `json:"booking_id" validate:"required"`
	FileName    string `json:"file_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Origin      string `json:"origin" validate:"omitempty,oneof=picker drag_and_drop"`
}

const maxUploadMemory = 32 << 20

// Bind reads the "file" part header and the "origin" field of a multipart form.
func (t *TicketUploadRequest) Bind(r *http.Request) error {
	t.BookingID = chi.URLParam(r, "bookingID")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return upload.ErrFileTooLarge
		}

		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Kind:       exception.KindValidation,
			Message:    "request must be a multipart form",
			Cause:      err,
		}
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Kind:       exception.KindValidation,
			Message:    "file is a required field",
			Cause:      err,
		}
	}
	file.Close()

	t.FileName = header.Filename
	t.Size = header.Size
	t.ContentType = header.Header.Get("Content-Type")
	t.Origin = r.FormValue("origin")

	return validationError(t)
}

type TicketUploadResponse struct {
	BookingID   string `json:"booking_id"`
	FileName    string `json:"file_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Origin      string `json:"origin"`
	Accepted    bool   `json:"accepted"`
}
