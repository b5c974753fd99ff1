package transport

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/config"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/endpoints"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture records the decoded request and answers with resp.
func capture(got *interface{}, resp interface{}) endpoint.Endpoint {
	return func(_ context.Context, req interface{}) (interface{}, error) {
		*got = req
		return resp, nil
	}
}

func newTestRouter(endpts endpoints.Endpoints) http.Handler {
	cfg := &config.Config{HTTP: config.HTTP{CORSAllowedOrigins: []string{"http://localhost:3000"}}}
	return MakeHTTPRouter(cfg, endpts)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestRouter(endpoints.Endpoints{}), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_SearchFlights(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	searchRequest := func(query string, wantStatus int, want interface{}) func(t *testing.T) {
		return func(t *testing.T) {
			var got interface{}
			router := newTestRouter(endpoints.Endpoints{
				SearchEndpoint: endpoints.SearchEndpoint{
					SearchFlights: capture(&got, dto.SearchFlightResponse{Offers: []dto.RankedOffer{}}),
				},
			})

			rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/flights/search?"+query, nil))

			require.Equal(t, wantStatus, rec.Code, rec.Body.String())
			if wantStatus == http.StatusOK {
				assert.Equal(t, want, got)
				return
			}

			assert.Nil(t, got)
			assert.Contains(t, rec.Body.String(), want)
		}
	}

	maxStops := 0
	t.Run("round_trip", searchRequest(
		"originLocationCode=cgk&destinationLocationCode=DPS&departureDate=2026-11-01&returnDate=2026-11-05"+
			"&adults=2&children=1&travelClass=economy&nonStop=true&currencyCode=IDR&sort=price&max_stops=0",
		http.StatusOK,
		&dto.SearchCriteria{
			OriginLocationCode:      "CGK",
			DestinationLocationCode: "DPS",
			DepartureDate:           "2026-11-01",
			ReturnDate:              "2026-11-05",
			Adults:                  2,
			Children:                1,
			TravelClass:             "ECONOMY",
			NonStop:                 true,
			CurrencyCode:            "IDR",
			SortOption:              &dto.SortOption{Field: "price", Order: "asc"},
			FilterOption:            &dto.FilterOption{MaxStops: &maxStops},
		},
	))
	t.Run("adults_default_to_one", searchRequest(
		"originLocationCode=CGK&destinationLocationCode=DPS&departureDate=2026-11-01",
		http.StatusOK,
		&dto.SearchCriteria{OriginLocationCode: "CGK", DestinationLocationCode: "DPS", DepartureDate: "2026-11-01", Adults: 1},
	))
	t.Run("missing_origin", searchRequest(
		"destinationLocationCode=DPS&departureDate=2026-11-01", http.StatusBadRequest, "originLocationCode is a required field"))
	t.Run("same_origin_and_destination", searchRequest(
		"originLocationCode=DPS&destinationLocationCode=DPS&departureDate=2026-11-01", http.StatusBadRequest, "destinationLocationCode"))
	t.Run("bad_date", searchRequest(
		"originLocationCode=CGK&destinationLocationCode=DPS&departureDate=01-11-2026", http.StatusBadRequest, "departureDate"))
	t.Run("return_before_departure", searchRequest(
		"originLocationCode=CGK&destinationLocationCode=DPS&departureDate=2026-11-05&returnDate=2026-11-01",
		http.StatusBadRequest, "returnDate must not be before departureDate"))
	t.Run("too_many_travelers", searchRequest(
		"originLocationCode=CGK&destinationLocationCode=DPS&departureDate=2026-11-01&adults=6&children=4",
		http.StatusBadRequest, "at most 9 seated travelers are allowed"))
	t.Run("adults_not_a_number", searchRequest(
		"originLocationCode=CGK&destinationLocationCode=DPS&departureDate=2026-11-01&adults=two",
		http.StatusBadRequest, "adults must be a number"))
	t.Run("bad_sort_field", searchRequest(
		"originLocationCode=CGK&destinationLocationCode=DPS&departureDate=2026-11-01&sort=seats",
		http.StatusBadRequest, "Invalid sort field seats"))
}

func TestRouter_SearchLocations(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	var got interface{}
	router := newTestRouter(endpoints.Endpoints{
		SearchEndpoint: endpoints.SearchEndpoint{
			SearchLocations: capture(&got, dto.LocationSearchResponse{Keyword: "bal", Locations: []dto.LocationResult{}}),
		},
	})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/locations?keyword=bal", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, &dto.LocationSearchRequest{Keyword: "bal", SubType: "ANY"}, got)
	assert.JSONEq(t, `{"keyword":"bal","locations":[]}`, rec.Body.String())

	got = nil
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/locations?keyword=bal&sub_type=moon", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, got)
}

func TestRouter_UpdateTraveler(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	var got interface{}
	router := newTestRouter(endpoints.Endpoints{
		BookingEndpoint: endpoints.BookingEndpoint{
			UpdateTraveler: capture(&got, dto.SessionResponse{SessionID: "s1"}),
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/booking/sessions/s1/travelers/1",
		strings.NewReader(`{"field":"first_name","value":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, &dto.UpdateTravelerRequest{SessionID: "s1", Index: 1, Field: "first_name", Value: "Ana"}, got)
}

func TestRouter_UpdateTravelerBadIndex(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	var got interface{}
	router := newTestRouter(endpoints.Endpoints{
		BookingEndpoint: endpoints.BookingEndpoint{UpdateTraveler: capture(&got, nil)},
	})

	rec := serve(router, httptest.NewRequest(http.MethodPatch, "/api/v1/booking/sessions/s1/travelers/x",
		strings.NewReader(`{"field":"first_name"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"traveler index must be a number"}`, rec.Body.String())
	assert.Nil(t, got)
}

func TestRouter_SubmitStatus(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	var got interface{}
	router := newTestRouter(endpoints.Endpoints{
		BookingEndpoint: endpoints.BookingEndpoint{
			Submit: capture(&got, dto.SubmitResponse{
				Outcome: "login_required", Redirect: "/auth/login?redirect=%2Fbooking%2F1", Status: http.StatusUnauthorized,
			}),
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/sessions/s1/submit", nil)
	req.Header.Set("Authorization", "Bearer tok")

	rec := serve(router, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, &dto.SubmitRequest{SessionID: "s1", Token: "tok"}, got)
}

func TestRouter_Untrack(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	var got interface{}
	router := newTestRouter(endpoints.Endpoints{
		TicketEndpoint: endpoints.TicketEndpoint{Untrack: capture(&got, nil)},
	})

	rec := serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/tickets/BK1/track", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, &dto.TicketRequest{BookingID: "BK1"}, got)
}

func TestRouter_TicketUpload(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="my_ticket.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("origin", "drag_and_drop"))
	require.NoError(t, mw.Close())

	var got interface{}
	router := newTestRouter(endpoints.Endpoints{
		UploadEndpoint: endpoints.UploadEndpoint{
			ValidateTicketUpload: capture(&got, dto.TicketUploadResponse{Accepted: true}),
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/bookings/BK1/tickets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, &dto.TicketUploadRequest{
		BookingID:   "BK1",
		FileName:    "my_ticket.pdf",
		Size:        8,
		ContentType: "application/pdf",
		Origin:      "drag_and_drop",
	}, got)
}

func TestRouter_TicketUploadTooLarge(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "ticket.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), upload.MaxFileSize+2<<20))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	var got interface{}
	router := newTestRouter(endpoints.Endpoints{
		UploadEndpoint: endpoints.UploadEndpoint{
			ValidateTicketUpload: capture(&got, dto.TicketUploadResponse{Accepted: true}),
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/bookings/BK1/tickets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), upload.ErrFileTooLarge.Message)
	assert.Nil(t, got)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/booking/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := serve(newTestRouter(endpoints.Endpoints{}), req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
