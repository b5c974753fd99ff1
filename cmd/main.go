package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/facebookgo/clock"
	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/config"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/endpoints"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/service"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/transport"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/bookingapi"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/flight"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/logger"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/ticketstatus"
	"github.com/redis/go-redis/v9"
)

// @title           Flight Booking BFF API
// @version         0.0.1
// @description     flight-booking-bff
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {

	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	deps := makeDependencies(ctx, &cfg)
	defer deps.close()

	router := transport.MakeHTTPRouter(&cfg, deps.endpoints)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

type dependencies struct {
	endpoints endpoints.Endpoints
	closers   []func()
}

func (d dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func makeDependencies(ctx context.Context, cfg *config.Config) dependencies {
	var deps dependencies

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.Timeout,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
	})
	deps.closers = append(deps.closers, func() {
		if err := redisClient.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close redis client", slog.String("error", err.Error()))
		}
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	apiClient := bookingapi.NewClient(bookingapi.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		MaxRetries:   cfg.API.MaxRetries,
		RateLimitRPS: cfg.API.RateLimitRPS,
		Burst:        cfg.API.RateBurst,
	})

	clk := clock.New()

	bookingService := service.NewBookingService(service.BookingServiceConfig{
		API:                      apiClient,
		Cache:                    flight.NewOfferCache(redisClient),
		Limiter:                  redis_rate.NewLimiter(redisClient),
		Clock:                    clk,
		OfferCacheExpiration:     cfg.Booking.OfferCacheExpiration,
		SubmitRateLimitPerMinute: cfg.Booking.SubmitRateLimitPerMinute,
		LoginPath:                cfg.Booking.LoginPath,
	})

	ticketService := service.NewTicketService(service.TicketServiceConfig{
		NewSource:  makeTicketSourceFactory(ctx, cfg, apiClient, &deps),
		Clock:      clk,
		Interval:   cfg.Ticket.PollInterval,
		ReadyDelay: cfg.Ticket.ReadyDelay,
		Retention:  cfg.Ticket.Retention,
	})
	// pollers stop before their sources close
	deps.closers = append(deps.closers, ticketService.Close)

	searchService := service.NewSearchService(service.SearchServiceConfig{
		API:                     apiClient,
		Cache:                   flight.NewSearchCache(redisClient),
		Clock:                   clk,
		CacheExpiration:         cfg.Search.CacheExpiration,
		LocationCacheExpiration: cfg.Search.LocationCacheTTL,
		MaxOffers:               cfg.Search.MaxOffers,
		DefaultCurrency:         cfg.Search.DefaultCurrency,
	})

	deps.endpoints = endpoints.Endpoints{
		SearchEndpoint:  endpoints.MakeSearchEndpoint(searchService),
		BookingEndpoint: endpoints.MakeBookingEndpoint(bookingService),
		TicketEndpoint:  endpoints.MakeTicketEndpoint(ticketService),
		AccountEndpoint: endpoints.MakeAccountEndpoint(service.NewAccountService(apiClient, cfg.Contact.WhatsAppNumber)),
		UploadEndpoint:  endpoints.MakeUploadEndpoint(service.NewUploadService()),
	}

	return deps
}

// makeTicketSourceFactory selects where ticket progress comes from.
func makeTicketSourceFactory(ctx context.Context, cfg *config.Config, apiClient *bookingapi.Client,
	deps *dependencies,
) service.TicketSourceFactory {
	switch cfg.Ticket.StatusSource {
	case config.TicketSourceOrders:
		return func(token string) (ticketstatus.Source, error) {
			if token == "" {
				return nil, service.ErrAuthRequired
			}
			return ticketstatus.NewOrderSource(apiClient, token), nil
		}
	case config.TicketSourceEvents:
		events := ticketstatus.NewEventSource(
			ticketstatus.NewKafkaReader(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TicketStatusTopic))

		go func() {
			if err := events.Run(ctx); err != nil {
				slog.ErrorContext(ctx, "ticket status consumer stopped", slog.String("error", err.Error()))
			}
		}()

		deps.closers = append(deps.closers, func() {
			if err := events.Close(); err != nil {
				slog.ErrorContext(ctx, "failed to close ticket status consumer", slog.String("error", err.Error()))
			}
		})

		return func(string) (ticketstatus.Source, error) {
			return events, nil
		}
	default:
		if cfg.Ticket.StatusSource != config.TicketSourceSimulated {
			slog.WarnContext(ctx, "unknown ticket status source, using simulated",
				slog.String("source", cfg.Ticket.StatusSource))
		}

		return func(string) (ticketstatus.Source, error) {
			return ticketstatus.NewSimulatedSource(cfg.Ticket.MaxIncrement), nil
		}
	}
}
