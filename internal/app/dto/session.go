package dto

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

type CreateSessionRequest struct {
	OfferID    string `json:"offer_id" validate:"required"`
	ReturnPath string `json:"return_path,omitempty"`
}

func (c *CreateSessionRequest) Bind(_ *http.Request) error {
	return validationError(c)
}

type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

func (s *SessionRequest) Bind(r *http.Request) error {
	s.SessionID = chi.URLParam(r, "sessionID")

	return validationError(s)
}

type UpdateTravelerRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Index     int    `json:"index" validate:"gte=0"`
	Field     string `json:"field" validate:"required"`
	Value     string `json:"value"`
}

func (u *UpdateTravelerRequest) Bind(r *http.Request) error {
	u.SessionID = chi.URLParam(r, "sessionID")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Kind:       exception.KindValidation,
			Message:    "traveler index must be a number",
		}
	}
	u.Index = index

	return validationError(u)
}

type TermsRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Accepted  *bool  `json:"accepted" validate:"required"`
}

func (t *TermsRequest) Bind(r *http.Request) error {
	t.SessionID = chi.URLParam(r, "sessionID")

	return validationError(t)
}

type SubmitRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Token     string `json:"-"`
}

func (s *SubmitRequest) Bind(r *http.Request) error {
	s.SessionID = chi.URLParam(r, "sessionID")
	s.Token = BearerToken(r)

	return validationError(s)
}

// SessionResponse is the render view of a booking wizard.
type SessionResponse struct {
	SessionID      string              `json:"session_id"`
	OfferID        string              `json:"offer_id"`
	Step           string              `json:"step"`
	StepIndex      int                 `json:"step_index"`
	TotalSteps     int                 `json:"total_steps"`
	Progress       float64             `json:"progress"`
	TermsAccepted  bool                `json:"terms_accepted"`
	IsSubmitting   bool                `json:"is_submitting"`
	Completed      bool                `json:"completed"`
	OrderID        string              `json:"order_id,omitempty"`
	Offer          FlightOffer         `json:"flight_offer"`
	Travelers      []BookingTraveler   `json:"travelers"`
	PassportExpiry PassportExpiryRange `json:"passport_expiry"`
}

// SubmitResponse tells the client where to go next.
type SubmitResponse struct {
	Outcome  string `json:"outcome"`
	OrderID  string `json:"order_id,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Message  string `json:"message,omitempty"`

	Status int `json:"-"`
}

// StatusCode is used by the response encoder.
func (s SubmitResponse) StatusCode() int {
	if s.Status == 0 {
		return http.StatusOK
	}

	return s.Status
}
