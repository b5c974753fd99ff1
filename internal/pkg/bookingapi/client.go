package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
	"golang.org/x/time/rate"
)

const (
	PathFlightOrders     = "/booking/flight-orders"
	PathPricing          = "/shopping/flight-offers/pricing"
	PathVerifyResetToken = "/verify-reset-token/"
	PathResetPassword    = "/reset-password/"
	PathChangePassword   = "/change-password/"
	PathBookings         = "/bookings"
	PathFlightOffers     = "/shopping/flight-offers"
	PathLocations        = "/reference-data/locations"

	MsgCreateBookingFailed  = "Failed to create booking"
	MsgPricingFailed        = "Failed to confirm flight price"
	MsgVerifyTokenFailed    = "Failed to verify token"
	MsgResetPasswordFailed  = "Failed to reset password"
	MsgChangePasswordFailed = "Failed to change password"
	MsgListBookingsFailed   = "Failed to fetch bookings"
	MsgSearchFailed         = "An error occurred while searching for flights"
	MsgLocationSearchFailed = "An error occurred while searching for a location"
)

// Config for the booking API client.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS float64
	Burst        int
	HTTPClient   *http.Client
}

// Client talks to the external booking API. Only GET calls are retried.
type Client struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

func NewClient(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limit := rate.Inf
	if config.RateLimitRPS > 0 {
		limit = rate.Limit(config.RateLimitRPS)
	}

	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		BaseURL:    strings.TrimRight(config.BaseURL, "/"),
		Timeout:    config.Timeout,
		MaxRetries: config.MaxRetries,
		HTTPClient: httpClient,
		Limiter:    rate.NewLimiter(limit, burst),
	}
}

// ConfirmPricing re-prices the selected offer and returns the confirmed one.
func (c *Client) ConfirmPricing(ctx context.Context, offer dto.FlightOffer) (dto.FlightOffer, error) {
	var response dto.PricingResponse
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     PathPricing,
		body:     offer,
		fallback: MsgPricingFailed,
	}, &response); err != nil {
		return dto.FlightOffer{}, err
	}

	if len(response.Data.FlightOffers) == 0 {
		return dto.FlightOffer{}, exception.ApplicationError{
			StatusCode: http.StatusBadGateway,
			Kind:       exception.KindTransport,
			Message:    MsgPricingFailed,
			Cause:      errors.New("pricing response has no flight offers"),
		}
	}

	return response.Data.FlightOffers[0], nil
}

// CreateFlightOrder books the offer for travelers. It is never retried.
func (c *Client) CreateFlightOrder(ctx context.Context, token string,
	booking dto.FlightBookingData,
) (dto.FlightOrder, error) {
	var order dto.FlightOrder
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     PathFlightOrders,
		token:    token,
		body:     booking,
		fallback: MsgCreateBookingFailed,
	}, &order); err != nil {
		return dto.FlightOrder{}, err
	}

	if order.ID == "" {
		return dto.FlightOrder{}, exception.ApplicationError{
			StatusCode: http.StatusBadGateway,
			Kind:       exception.KindTransport,
			Message:    MsgCreateBookingFailed,
			Cause:      errors.New("order response has no id"),
		}
	}

	return order, nil
}

// ListBookings returns the orders of the token owner.
func (c *Client) ListBookings(ctx context.Context, token string) ([]dto.FlightOrder, error) {
	var orders []dto.FlightOrder
	if err := c.do(ctx, request{
		method:     http.MethodGet,
		path:       PathBookings,
		token:      token,
		fallback:   MsgListBookingsFailed,
		idempotent: true,
	}, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// SearchFlightOffers returns the offers matching criteria, in upstream order.
func (c *Client) SearchFlightOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightOffer, error) {
	var offers []dto.FlightOffer
	if err := c.do(ctx, request{
		method:     http.MethodGet,
		path:       PathFlightOffers,
		query:      criteria.QueryValues(),
		fallback:   MsgSearchFailed,
		idempotent: true,
	}, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

// SearchLocations returns the airports and cities matching keyword.
func (c *Client) SearchLocations(ctx context.Context, keyword, subType string) ([]dto.Location, error) {
	query := url.Values{}
	query.Set("keyword", keyword)
	if subType != "" {
		query.Set("sub_type", subType)
	}

	var locations []dto.Location
	if err := c.do(ctx, request{
		method:     http.MethodGet,
		path:       PathLocations,
		query:      query,
		fallback:   MsgLocationSearchFailed,
		idempotent: true,
	}, &locations); err != nil {
		return nil, err
	}

	return locations, nil
}

func (c *Client) VerifyResetToken(ctx context.Context, token string) (dto.VerifyResetTokenResponse, error) {
	var response dto.VerifyResetTokenResponse
	if err := c.do(ctx, request{
		method:     http.MethodGet,
		path:       PathVerifyResetToken + url.PathEscape(token),
		fallback:   MsgVerifyTokenFailed,
		idempotent: true,
	}, &response); err != nil {
		return dto.VerifyResetTokenResponse{}, err
	}

	return response, nil
}

func (c *Client) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     PathResetPassword,
		body:     req,
		fallback: MsgResetPasswordFailed,
	}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, token string, req dto.ChangePasswordRequest) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     PathChangePassword,
		token:    token,
		body:     req,
		fallback: MsgChangePasswordFailed,
	}, nil)
}

type request struct {
	method     string
	path       string
	query      url.Values
	token      string
	body       interface{}
	fallback   string
	idempotent bool
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var payload []byte
	if req.body != nil {
		var err error
		payload, err = json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", req.path, err)
		}
	}

	attempts := 1
	if req.idempotent {
		attempts += c.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 200ms * 2^(attempt-1)
			backoff := time.Duration(200*(1<<(attempt-1))) * time.Millisecond
			slog.InfoContext(ctx, "retrying booking api call with exponential backoff",
				slog.String("path", req.path), slog.Duration("backoff", backoff), slog.Int("next_attempt", attempt+1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return transportError(req.fallback, ctx.Err())
			}
		}

		retry, err := c.attempt(ctx, req, payload, out)
		if err == nil {
			return nil
		}

		lastErr = err
		if !retry {
			return err
		}

		slog.WarnContext(ctx, "booking api call failed",
			slog.String("path", req.path), slog.Int("attempt", attempt+1), slog.String("error", err.Error()))
	}

	return lastErr
}

// attempt performs one round trip and reports whether a failure may be retried.
func (c *Client) attempt(ctx context.Context, req request, payload []byte, out interface{}) (bool, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return false, transportError(req.fallback, fmt.Errorf("rate limit: %w", err))
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	target := c.BaseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return false, fmt.Errorf("build %s request: %w", req.path, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return ctx.Err() == nil, transportError(req.fallback, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, transportError(req.fallback, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode >= http.StatusInternalServerError, statusError(req.fallback, resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, transportError(req.fallback, fmt.Errorf("decode %s response: %w", req.path, err))
	}

	return false, nil
}

func transportError(message string, cause error) error {
	return exception.ApplicationError{
		StatusCode: http.StatusBadGateway,
		Kind:       exception.KindTransport,
		Message:    message,
		Cause:      cause,
	}
}

// statusError prefers the API's detail message over the fallback.
func statusError(fallback string, status int, raw []byte) error {
	message := fallback

	var body dto.APIErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.DetailMessage() != "" {
		message = body.DetailMessage()
	}

	appErr := exception.ApplicationError{
		StatusCode: http.StatusBadGateway,
		Kind:       exception.KindTransport,
		Message:    message,
		Cause:      fmt.Errorf("booking api responded %d", status),
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		appErr.StatusCode = status
		appErr.Kind = exception.KindAuth
	case status >= 400 && status < 500:
		appErr.StatusCode = status
	}

	return appErr
}
