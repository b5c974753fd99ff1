package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/flight"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/password"
)

const (
	MsgPasswordReset   = "Password reset successful"
	MsgPasswordChanged = "Password changed successfully"

	whatsAppURL = "https://wa.me/"
)

type AccountAPI interface {
	ListBookings(ctx context.Context, token string) ([]dto.FlightOrder, error)
	VerifyResetToken(ctx context.Context, token string) (dto.VerifyResetTokenResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, token string, req dto.ChangePasswordRequest) error
}

type AccountService struct {
	API            AccountAPI
	WhatsAppNumber string
}

func NewAccountService(api AccountAPI, whatsAppNumber string) *AccountService {
	return &AccountService{
		API:            api,
		WhatsAppNumber: whatsAppNumber,
	}
}

// VerifyResetToken reports whether a reset link can still be used.
func (s *AccountService) VerifyResetToken(ctx context.Context, req dto.VerifyResetTokenRequest) (dto.VerifyResetTokenResponse, error) {
	if strings.TrimSpace(req.Token) == "" {
		return dto.VerifyResetTokenResponse{}, password.ErrNoResetToken
	}

	resp, err := s.API.VerifyResetToken(ctx, req.Token)
	if err != nil {
		return dto.VerifyResetTokenResponse{}, fmt.Errorf("verify reset token: %w", err)
	}

	if !resp.Valid && resp.Message == "" {
		resp.Message = password.ErrInvalidReset.Message
	}

	return resp, nil
}

// ResetPassword checks the form locally, then the token, then resets.
func (s *AccountService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (dto.Response, error) {
	if strings.TrimSpace(req.Token) == "" {
		return dto.Response{}, password.ErrNoResetToken
	}

	if err := password.ValidateReset(req.NewPassword, req.ConfirmPassword); err != nil {
		return dto.Response{}, err
	}

	verified, err := s.VerifyResetToken(ctx, dto.VerifyResetTokenRequest{Token: req.Token})
	if err != nil {
		return dto.Response{}, err
	}

	if !verified.Valid {
		invalid := password.ErrInvalidReset
		invalid.Message = verified.Message
		return dto.Response{}, invalid
	}

	if err := s.API.ResetPassword(ctx, req); err != nil {
		return dto.Response{}, fmt.Errorf("reset password: %w", err)
	}

	slog.InfoContext(ctx, "password reset")

	return dto.Response{Message: MsgPasswordReset}, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (dto.Response, error) {
	if req.Token == "" {
		return dto.Response{}, ErrAuthRequired
	}

	if err := password.ValidateChange(req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return dto.Response{}, err
	}

	if err := s.API.ChangePassword(ctx, req.Token, req); err != nil {
		return dto.Response{}, fmt.Errorf("change password: %w", err)
	}

	return dto.Response{Message: MsgPasswordChanged}, nil
}

func (s *AccountService) PasswordStrength(_ context.Context, req dto.PasswordStrengthRequest) (dto.PasswordStrength, error) {
	score, label := password.Strength(req.Password)

	return dto.PasswordStrength{Score: score, Message: label}, nil
}

// ListBookings returns one page of the user's bookings, searched and sorted by departure.
func (s *AccountService) ListBookings(ctx context.Context, req dto.ListBookingsRequest) (dto.BookingListResponse, error) {
	if req.Token == "" {
		return dto.BookingListResponse{}, ErrAuthRequired
	}

	orders, err := s.API.ListBookings(ctx, req.Token)
	if err != nil {
		return dto.BookingListResponse{}, fmt.Errorf("list bookings: %w", err)
	}

	bookings := flight.FilterBookings(flight.SummarizeAll(orders), req.Search)
	bookings = flight.SortBookings(bookings, flight.SortAsc)

	return flight.Paginate(bookings, req.Page), nil
}

func (s *AccountService) Contact(_ context.Context) dto.ContactResponse {
	number := strings.TrimPrefix(strings.TrimSpace(s.WhatsAppNumber), "+")
	if number == "" {
		return dto.ContactResponse{}
	}

	return dto.ContactResponse{WhatsAppURL: whatsAppURL + number}
}
