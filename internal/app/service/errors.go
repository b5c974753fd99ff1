package service

import (
	"net/http"

	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

var (
	ErrOfferNotFound = exception.ApplicationError{
		Message:    "flight offer not found, confirm pricing first",
		StatusCode: http.StatusNotFound,
		Kind:       exception.KindValidation,
	}
	ErrSessionNotFound = exception.ApplicationError{
		Message:    "booking session not found",
		StatusCode: http.StatusNotFound,
		Kind:       exception.KindValidation,
	}
	ErrTooManySubmissions = exception.ApplicationError{
		Message:    "too many booking attempts, please wait a minute and try again",
		StatusCode: http.StatusTooManyRequests,
		Kind:       exception.KindValidation,
	}
	ErrTicketNotTracked = exception.ApplicationError{
		Message:    "ticket status is not being tracked for this booking",
		StatusCode: http.StatusNotFound,
		Kind:       exception.KindValidation,
	}
	ErrAuthRequired = exception.ApplicationError{
		Message:    "authentication required",
		StatusCode: http.StatusUnauthorized,
		Kind:       exception.KindAuth,
	}
)
