// Package upload gates admin ticket documents before they enter the upload flow.
// It is advisory only and does not replace validation by the receiving service.
package upload

import (
	"net/http"
	"strings"

	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

const (
	PDFContentType = "application/pdf"
	MaxFileSize    = 10 * 1024 * 1024
	// MaxRequestSize leaves room for the multipart envelope around one file.
	MaxRequestSize = MaxFileSize + 1<<20
)

// Origin is how the file was selected. Validation does not depend on it.
type Origin string

const (
	OriginPicker      Origin = "picker"
	OriginDragAndDrop Origin = "drag_and_drop"
)

var (
	ErrNotPDF = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "Please select a PDF file.",
	}
	ErrFileTooLarge = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "File size must be less than 10MB.",
	}
	ErrNotTicketDocument = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "Please select a ticket or booking document.",
	}
)

// File is the declared metadata of a selected file.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Origin      Origin
}

// Validate returns the first failing check: type, then size, then name.
func Validate(f File) error {
	if f.ContentType != PDFContentType {
		return ErrNotPDF
	}

	if f.Size > MaxFileSize {
		return ErrFileTooLarge
	}

	name := strings.ToLower(f.Name)
	if !strings.Contains(name, "ticket") && !strings.Contains(name, "booking") {
		return ErrNotTicketDocument
	}

	return nil
}
