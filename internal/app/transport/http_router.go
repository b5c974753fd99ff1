package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/config"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/flight-booking-bff/internal/pkg/transport/http"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/upload"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(cfg.HTTP.CORSAllowedOrigins),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Get("/flights/search", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchFlights,
			httptransport.DecodeRequest[dto.SearchCriteria],
			httptransport.ResponseWithBody,
		))

		router.Get("/locations", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchLocations,
			httptransport.DecodeRequest[dto.LocationSearchRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/offers/pricing", httptransport.MakeHandlerFunc(
			endpts.BookingEndpoint.ConfirmPricing,
			httptransport.DecodeRequest[dto.ConfirmPricingRequest],
			httptransport.ResponseWithBody,
		))

		router.Route("/booking", func(router chi.Router) {
			makeBookingRoutes(router, endpts.BookingEndpoint)
		})

		router.Route("/tickets/{bookingID}", func(router chi.Router) {
			router.Post("/track", httptransport.MakeHandlerFunc(
				endpts.TicketEndpoint.Track,
				httptransport.DecodeRequest[dto.TicketRequest],
				httptransport.ResponseWithBody,
			))
			router.Get("/status", httptransport.MakeHandlerFunc(
				endpts.TicketEndpoint.Status,
				httptransport.DecodeRequest[dto.TicketRequest],
				httptransport.ResponseWithBody,
			))
			router.Delete("/track", httptransport.MakeHandlerFunc(
				endpts.TicketEndpoint.Untrack,
				httptransport.DecodeRequest[dto.TicketRequest],
				httptransport.NoContentResponse,
			))
		})

		router.With(httptransport.LimitBody(upload.MaxRequestSize)).Post("/admin/bookings/{bookingID}/tickets", httptransport.MakeHandlerFunc(
			endpts.UploadEndpoint.ValidateTicketUpload,
			httptransport.DecodeRequest[dto.TicketUploadRequest],
			httptransport.ResponseWithBody,
		))

		router.Route("/auth", func(router chi.Router) {
			makeAuthRoutes(router, endpts.AccountEndpoint)
		})

		router.Get("/bookings", httptransport.MakeHandlerFunc(
			endpts.AccountEndpoint.ListBookings,
			httptransport.DecodeRequest[dto.ListBookingsRequest],
			httptransport.ResponseWithBody,
		))

		router.Get("/contact", httptransport.MakeHandlerFunc(
			endpts.AccountEndpoint.Contact,
			kithttp.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
	})

	return router
}

func makeBookingRoutes(router chi.Router, endpts endpoints.BookingEndpoint) {
	router.Get("/passport-expiry-range", httptransport.MakeHandlerFunc(
		endpts.PassportExpiryRange,
		kithttp.NopRequestDecoder,
		httptransport.ResponseWithBody,
	))

	router.Post("/sessions", httptransport.MakeHandlerFunc(
		endpts.CreateSession,
		httptransport.DecodeRequest[dto.CreateSessionRequest],
		httptransport.CreatedResponse,
	))

	router.Route("/sessions/{sessionID}", func(router chi.Router) {
		router.Get("/", httptransport.MakeHandlerFunc(
			endpts.GetSession,
			httptransport.DecodeRequest[dto.SessionRequest],
			httptransport.ResponseWithBody,
		))
		router.Patch("/travelers/{index}", httptransport.MakeHandlerFunc(
			endpts.UpdateTraveler,
			httptransport.DecodeRequest[dto.UpdateTravelerRequest],
			httptransport.ResponseWithBody,
		))
		router.Post("/next", httptransport.MakeHandlerFunc(
			endpts.Next,
			httptransport.DecodeRequest[dto.SessionRequest],
			httptransport.ResponseWithBody,
		))
		router.Post("/previous", httptransport.MakeHandlerFunc(
			endpts.Previous,
			httptransport.DecodeRequest[dto.SessionRequest],
			httptransport.ResponseWithBody,
		))
		router.Put("/terms", httptransport.MakeHandlerFunc(
			endpts.SetTerms,
			httptransport.DecodeRequest[dto.TermsRequest],
			httptransport.ResponseWithBody,
		))
		router.Post("/submit", httptransport.MakeHandlerFunc(
			endpts.Submit,
			httptransport.DecodeRequest[dto.SubmitRequest],
			httptransport.ResponseWithBody,
		))
	})
}

func makeAuthRoutes(router chi.Router, endpts endpoints.AccountEndpoint) {
	router.Get("/verify-reset-token/{token}", httptransport.MakeHandlerFunc(
		endpts.VerifyResetToken,
		httptransport.DecodeRequest[dto.VerifyResetTokenRequest],
		httptransport.ResponseWithBody,
	))
	router.Post("/reset-password", httptransport.MakeHandlerFunc(
		endpts.ResetPassword,
		httptransport.DecodeRequest[dto.ResetPasswordRequest],
		httptransport.ResponseWithBody,
	))
	router.Post("/change-password", httptransport.MakeHandlerFunc(
		endpts.ChangePassword,
		httptransport.DecodeRequest[dto.ChangePasswordRequest],
		httptransport.ResponseWithBody,
	))
	router.Post("/password-strength", httptransport.MakeHandlerFunc(
		endpts.PasswordStrength,
		httptransport.DecodeRequest[dto.PasswordStrengthRequest],
		httptransport.ResponseWithBody,
	))
}
