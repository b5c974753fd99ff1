package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/logger"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/ticketstatus"
)

// TicketSourceFactory builds the status source of one tracked booking.
type TicketSourceFactory func(token string) (ticketstatus.Source, error)

// DefaultTicketRetention is how long a finished poller stays readable.
const DefaultTicketRetention = 10 * time.Minute

type TicketServiceConfig struct {
	NewSource       TicketSourceFactory
	Clock           clock.Clock
	Interval        time.Duration
	ReadyDelay      time.Duration
	InitialProgress float64
	Retention       time.Duration
}

// trackingKey scopes a poller to the booking and the caller's token, so one
// caller never sees or stops another caller's tracking.
type trackingKey struct {
	bookingID string
	owner     string
}

func newTrackingKey(req dto.TicketRequest) trackingKey {
	sum := sha256.Sum256([]byte(req.Token))
	return trackingKey{bookingID: req.BookingID, owner: hex.EncodeToString(sum[:])}
}

// TicketService keeps one poller per tracked booking and caller.
type TicketService struct {
	NewSource       TicketSourceFactory
	Clock           clock.Clock
	Interval        time.Duration
	ReadyDelay      time.Duration
	InitialProgress float64
	Retention       time.Duration

	mu      sync.Mutex
	pollers map[trackingKey]*ticketstatus.Poller
}

func NewTicketService(cfg TicketServiceConfig) *TicketService {
	s := &TicketService{
		NewSource:       cfg.NewSource,
		Clock:           cfg.Clock,
		Interval:        cfg.Interval,
		ReadyDelay:      cfg.ReadyDelay,
		InitialProgress: cfg.InitialProgress,
		Retention:       cfg.Retention,
		pollers:         make(map[trackingKey]*ticketstatus.Poller),
	}

	if s.Clock == nil {
		s.Clock = clock.New()
	}
	if s.InitialProgress <= 0 {
		s.InitialProgress = ticketstatus.DefaultInitialProgress
	}
	if s.Retention <= 0 {
		s.Retention = DefaultTicketRetention
	}

	return s
}

// Track starts polling the ticket status of a booking. Tracking a booking
// twice returns the running poller's status, unless that poller failed or was
// cancelled, in which case polling starts over.
func (s *TicketService) Track(ctx context.Context, req dto.TicketRequest) (dto.TicketStatusResponse, error) {
	ctx = logger.WithBookingID(ctx, req.BookingID)
	key := newTrackingKey(req)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictFinished()

	if p, ok := s.pollers[key]; ok {
		state := p.Snapshot()
		if state.Status != ticketstatus.StatusFailed && state.Status != ticketstatus.StatusCancelled {
			return statusResponse(state), nil
		}

		delete(s.pollers, key)
		p.Stop()
		slog.InfoContext(ctx, "restarting ticket status tracking",
			slog.String("previous_status", string(state.Status)))
	}

	source, err := s.NewSource(req.Token)
	if err != nil {
		return dto.TicketStatusResponse{}, err
	}

	p := ticketstatus.NewPoller(ticketstatus.PollerConfig{
		BookingID:       req.BookingID,
		Source:          source,
		Clock:           s.Clock,
		Interval:        s.Interval,
		ReadyDelay:      s.ReadyDelay,
		InitialProgress: s.InitialProgress,
		OnTicketReady: func(url string) {
			slog.InfoContext(ctx, "ticket ready", slog.String("ticket_url", url))
		},
	})

	s.pollers[key] = p
	// the poller outlives the request that started it
	p.Start(context.WithoutCancel(ctx))

	slog.InfoContext(ctx, "tracking ticket status")

	return statusResponse(p.Snapshot()), nil
}

// Status reports the poller the caller started. Bookings tracked by other
// callers are reported as not tracked.
func (s *TicketService) Status(_ context.Context, req dto.TicketRequest) (dto.TicketStatusResponse, error) {
	s.mu.Lock()
	p, ok := s.pollers[newTrackingKey(req)]
	s.mu.Unlock()

	if !ok {
		return dto.TicketStatusResponse{}, ErrTicketNotTracked
	}

	return statusResponse(p.Snapshot()), nil
}

// Untrack stops polling and forgets the booking.
func (s *TicketService) Untrack(ctx context.Context, req dto.TicketRequest) error {
	key := newTrackingKey(req)

	s.mu.Lock()
	p, ok := s.pollers[key]
	delete(s.pollers, key)
	s.mu.Unlock()

	if !ok {
		return ErrTicketNotTracked
	}

	p.Stop()
	slog.InfoContext(logger.WithBookingID(ctx, req.BookingID), "stopped tracking ticket status")

	return nil
}

// Close stops every poller.
func (s *TicketService) Close() {
	s.mu.Lock()
	pollers := s.pollers
	s.pollers = make(map[trackingKey]*ticketstatus.Poller)
	s.mu.Unlock()

	for _, p := range pollers {
		p.Stop()
	}
}

// evictFinished drops pollers that finished more than Retention ago.
// Must be called with s.mu held.
func (s *TicketService) evictFinished() {
	now := s.Clock.Now()
	for key, p := range s.pollers {
		select {
		case <-p.Done():
		default:
			continue
		}

		if now.Sub(p.Snapshot().LastUpdated) > s.Retention {
			delete(s.pollers, key)
		}
	}
}

func statusResponse(state ticketstatus.State) dto.TicketStatusResponse {
	return dto.TicketStatusResponse{
		BookingID:    state.BookingID,
		Status:       string(state.Status),
		Progress:     state.Progress,
		TicketURL:    state.TicketURL,
		ErrorMessage: state.ErrorMessage,
		LastUpdated:  state.LastUpdated,
	}
}
