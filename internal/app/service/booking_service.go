package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/logger"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/passport"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/wizard"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultSessionTTL  = 2 * time.Hour
	DefaultLockTimeout = 10 * time.Second
)

type OfferCacher interface {
	GetLockKey(offerID string) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	SetOffer(ctx context.Context, offer dto.FlightOffer, expiration time.Duration) error
	GetOffer(ctx context.Context, offerID string) (dto.FlightOffer, error)
}

type BookingAPI interface {
	ConfirmPricing(ctx context.Context, offer dto.FlightOffer) (dto.FlightOffer, error)
	CreateFlightOrder(ctx context.Context, token string, booking dto.FlightBookingData) (dto.FlightOrder, error)
}

type SubmitLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type BookingServiceConfig struct {
	API                      BookingAPI
	Cache                    OfferCacher
	Limiter                  SubmitLimiter
	Clock                    clock.Clock
	OfferCacheExpiration     time.Duration
	LockTimeout              time.Duration
	SessionTTL               time.Duration
	SubmitRateLimitPerMinute int
	LoginPath                string
}

type bookingSession struct {
	id        string
	offerID   string
	wizard    *wizard.Wizard
	createdAt time.Time
}

// BookingService prices offers and keeps the booking wizards of open sessions in memory.
type BookingService struct {
	API                      BookingAPI
	Cache                    OfferCacher
	Limiter                  SubmitLimiter
	Clock                    clock.Clock
	OfferCacheExpiration     time.Duration
	LockTimeout              time.Duration
	SessionTTL               time.Duration
	SubmitRateLimitPerMinute int
	LoginPath                string

	mu       sync.RWMutex
	sessions map[string]*bookingSession
}

func NewBookingService(cfg BookingServiceConfig) *BookingService {
	s := &BookingService{
		API:                      cfg.API,
		Cache:                    cfg.Cache,
		Limiter:                  cfg.Limiter,
		Clock:                    cfg.Clock,
		OfferCacheExpiration:     cfg.OfferCacheExpiration,
		LockTimeout:              cfg.LockTimeout,
		SessionTTL:               cfg.SessionTTL,
		SubmitRateLimitPerMinute: cfg.SubmitRateLimitPerMinute,
		LoginPath:                cfg.LoginPath,
		sessions:                 make(map[string]*bookingSession),
	}

	if s.Clock == nil {
		s.Clock = clock.New()
	}
	if s.LockTimeout <= 0 {
		s.LockTimeout = DefaultLockTimeout
	}
	if s.SessionTTL <= 0 {
		s.SessionTTL = DefaultSessionTTL
	}

	return s
}

// ConfirmPricing re-prices the selected offer and caches the confirmed one so a
// booking session can be opened by its id.
func (s *BookingService) ConfirmPricing(ctx context.Context, req dto.ConfirmPricingRequest) (dto.FlightOffer, error) {
	offer, err := s.API.ConfirmPricing(ctx, req.Offer)
	if err != nil {
		return dto.FlightOffer{}, fmt.Errorf("confirm pricing: %w", err)
	}

	// concurrent confirmations of the same offer write the cache once
	lockKey := s.Cache.GetLockKey(offer.ID)
	acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.LockTimeout)
	if err != nil {
		slog.WarnContext(ctx, "failed to acquire offer lock", slog.String("error", err.Error()))
		return offer, nil
	}

	if !acquired {
		return offer, nil
	}
	defer s.Cache.ReleaseLock(ctx, lockKey)

	if err := s.Cache.SetOffer(ctx, offer, s.OfferCacheExpiration); err != nil {
		slog.WarnContext(ctx, "failed to cache priced offer", slog.String("offer_id", offer.ID),
			slog.String("error", err.Error()))
	}

	return offer, nil
}

// CreateSession opens a booking wizard for a priced offer.
func (s *BookingService) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (dto.SessionResponse, error) {
	offer, err := s.Cache.GetOffer(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dto.SessionResponse{}, ErrOfferNotFound
		}
		return dto.SessionResponse{}, fmt.Errorf("get priced offer: %w", err)
	}

	returnPath := req.ReturnPath
	if returnPath == "" {
		returnPath = "/booking/" + req.OfferID
	}

	id := uuid.New().String()
	ctx = logger.WithSessionID(ctx, id)

	sess := &bookingSession{
		id:      id,
		offerID: offer.ID,
		wizard: wizard.New(wizard.Config{
			Offer:      offer,
			Submitter:  s.API,
			Notifier:   wizard.NotifierFunc(notifyLog),
			ReturnPath: returnPath,
			LoginPath:  s.LoginPath,
			Clock:      s.Clock,
		}),
		createdAt: s.Clock.Now(),
	}

	s.mu.Lock()
	s.evictExpired()
	s.sessions[id] = sess
	s.mu.Unlock()

	slog.InfoContext(ctx, "booking session created", slog.String("offer_id", offer.ID),
		slog.Int("travelers", len(offer.TravelerPricings)))

	return s.sessionResponse(sess), nil
}

func notifyLog(ctx context.Context, message string) {
	slog.WarnContext(ctx, "booking notice", slog.String("message", message))
}

// evictExpired must be called with s.mu held.
func (s *BookingService) evictExpired() {
	now := s.Clock.Now()
	for id, sess := range s.sessions {
		if now.Sub(sess.createdAt) > s.SessionTTL {
			delete(s.sessions, id)
		}
	}
}

func (s *BookingService) session(id string) (*bookingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || s.Clock.Now().Sub(sess.createdAt) > s.SessionTTL {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

func (s *BookingService) GetSession(_ context.Context, req dto.SessionRequest) (dto.SessionResponse, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	return s.sessionResponse(sess), nil
}

func (s *BookingService) UpdateTraveler(_ context.Context, req dto.UpdateTravelerRequest) (dto.SessionResponse, error) {
	return s.mutate(req.SessionID, func(w *wizard.Wizard) error {
		return w.UpdateTraveler(req.Index, req.Field, req.Value)
	})
}

func (s *BookingService) Next(_ context.Context, req dto.SessionRequest) (dto.SessionResponse, error) {
	return s.mutate(req.SessionID, (*wizard.Wizard).Next)
}

func (s *BookingService) Previous(_ context.Context, req dto.SessionRequest) (dto.SessionResponse, error) {
	return s.mutate(req.SessionID, (*wizard.Wizard).Previous)
}

func (s *BookingService) SetTerms(_ context.Context, req dto.TermsRequest) (dto.SessionResponse, error) {
	return s.mutate(req.SessionID, func(w *wizard.Wizard) error {
		return w.AcceptTerms(*req.Accepted)
	})
}

func (s *BookingService) mutate(sessionID string, op func(w *wizard.Wizard) error) (dto.SessionResponse, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	if err := op(sess.wizard); err != nil {
		return dto.SessionResponse{}, err
	}

	return s.sessionResponse(sess), nil
}

// Submit books the session's offer. Guard failures are returned as errors; a
// login redirect or an API failure is reported in the response.
func (s *BookingService) Submit(ctx context.Context, req dto.SubmitRequest) (dto.SubmitResponse, error) {
	ctx = logger.WithSessionID(ctx, req.SessionID)

	sess, err := s.session(req.SessionID)
	if err != nil {
		return dto.SubmitResponse{}, err
	}

	if req.Token != "" {
		if err := s.allowSubmit(ctx, req.Token); err != nil {
			return dto.SubmitResponse{}, err
		}
	}

	result, err := sess.wizard.Submit(ctx, req.Token)
	if err != nil {
		return dto.SubmitResponse{}, err
	}

	response := dto.SubmitResponse{
		Outcome:  string(result.Outcome),
		OrderID:  result.OrderID,
		Redirect: result.Redirect,
		Message:  result.Message,
	}

	switch result.Outcome {
	case wizard.OutcomeBooked:
		response.Status = http.StatusOK
		slog.InfoContext(logger.WithBookingID(ctx, result.OrderID), "booking created")
	case wizard.OutcomeLoginRequired:
		response.Status = http.StatusUnauthorized
	default:
		response.Status = http.StatusBadGateway
	}

	return response, nil
}

func (s *BookingService) allowSubmit(ctx context.Context, token string) error {
	if s.Limiter == nil || s.SubmitRateLimitPerMinute <= 0 {
		return nil
	}

	sum := sha256.Sum256([]byte(token))
	key := "limit:submit:" + hex.EncodeToString(sum[:])

	res, err := s.Limiter.Allow(ctx, key, redis_rate.PerMinute(s.SubmitRateLimitPerMinute))
	if err != nil {
		// the limiter is best effort, a redis outage must not block bookings
		slog.WarnContext(ctx, "failed to check submit rate limit", slog.String("error", err.Error()))
		return nil
	}

	if res.Allowed == 0 {
		slog.WarnContext(ctx, "submit rate limit exceeded", slog.Duration("retry_after", res.RetryAfter))
		return ErrTooManySubmissions
	}

	return nil
}

// PassportExpiryRange returns the selectable expiry window for today.
func (s *BookingService) PassportExpiryRange(_ context.Context) dto.PassportExpiryRange {
	r := passport.ExpiryRange(passport.Today(s.Clock))

	return dto.PassportExpiryRange{MinExpiry: r.Min, MaxExpiry: r.Max}
}

func (s *BookingService) sessionResponse(sess *bookingSession) dto.SessionResponse {
	snap := sess.wizard.Snapshot()

	return dto.SessionResponse{
		SessionID:      sess.id,
		OfferID:        sess.offerID,
		Step:           snap.Step.String(),
		StepIndex:      int(snap.Step),
		TotalSteps:     wizard.TotalSteps,
		Progress:       snap.Progress,
		TermsAccepted:  snap.TermsAccepted,
		IsSubmitting:   snap.Submitting,
		Completed:      snap.Completed,
		OrderID:        snap.OrderID,
		Offer:          snap.Offer,
		Travelers:      snap.Travelers,
		PassportExpiry: s.PassportExpiryRange(context.Background()),
	}
}
