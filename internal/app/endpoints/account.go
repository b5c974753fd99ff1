package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
)

type AccountService interface {
	VerifyResetToken(ctx context.Context, req dto.VerifyResetTokenRequest) (dto.VerifyResetTokenResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (dto.Response, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (dto.Response, error)
	PasswordStrength(ctx context.Context, req dto.PasswordStrengthRequest) (dto.PasswordStrength, error)
	ListBookings(ctx context.Context, req dto.ListBookingsRequest) (dto.BookingListResponse, error)
	Contact(ctx context.Context) dto.ContactResponse
}

type AccountEndpoint struct {
	VerifyResetToken endpoint.Endpoint
	ResetPassword    endpoint.Endpoint
	ChangePassword   endpoint.Endpoint
	PasswordStrength endpoint.Endpoint
	ListBookings     endpoint.Endpoint
	Contact          endpoint.Endpoint
}

func MakeAccountEndpoint(service AccountService) AccountEndpoint {
	return AccountEndpoint{
		VerifyResetToken: makeEndpoint("account service", service.VerifyResetToken),
		ResetPassword:    makeEndpoint("account service", service.ResetPassword),
		ChangePassword:   makeEndpoint("account service", service.ChangePassword),
		PasswordStrength: makeEndpoint("account service", service.PasswordStrength),
		ListBookings:     makeEndpoint("account service", service.ListBookings),
		Contact: func(ctx context.Context, _ interface{}) (interface{}, error) {
			return service.Contact(ctx), nil
		},
	}
}
