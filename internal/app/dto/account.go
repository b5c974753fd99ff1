package dto

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

type VerifyResetTokenRequest struct {
	Token string `json:"token"`
}

func (v *VerifyResetTokenRequest) Bind(r *http.Request) error {
	v.Token = chi.URLParam(r, "token")

	return nil
}

type VerifyResetTokenResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ResetPasswordRequest is sent as is to POST /reset-password/.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ResetPasswordRequest) Bind(_ *http.Request) error {
	return nil
}

// ChangePasswordRequest is sent as is to POST /change-password/.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`

	Token string `json:"-"`
}

func (c *ChangePasswordRequest) Bind(r *http.Request) error {
	c.Token = BearerToken(r)

	return nil
}

type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

func (p *PasswordStrengthRequest) Bind(_ *http.Request) error {
	return nil
}

type PasswordStrength struct {
	Score   int    `json:"score"`
	Message string `json:"message"`
}

type ListBookingsRequest struct {
	Token  string `json:"-"`
	Search string `json:"search"`
	Page   int    `json:"page" validate:"gte=1"`
}

func (l *ListBookingsRequest) Bind(r *http.Request) error {
	l.Token = BearerToken(r)
	l.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	l.Page = 1

	if page := r.URL.Query().Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Kind:       exception.KindValidation,
				Message:    "page must be a number",
			}
		}
		l.Page = n
	}

	return validationError(l)
}

type ContactResponse struct {
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}
