// Package wizard drives the two-step booking flow: traveler details, then review and submit.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/facebookgo/clock"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/passport"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/traveler"
)

type Step int

const (
	StepTravelerInfo Step = iota
	StepReview
)

const TotalSteps = 2

const (
	DefaultLoginPath = "/auth/login"
	SuccessPath      = "/booking/success/"

	MsgCreateBookingFailed = "Failed to create booking"
	MsgUnexpected          = "An error occurred while creating your booking. Please try again."
)

func (s Step) String() string {
	switch s {
	case StepTravelerInfo:
		return "traveler_info"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	ErrInvalidTransition = exception.ApplicationError{
		StatusCode: http.StatusConflict,
		Kind:       exception.KindValidation,
		Message:    "step transition is not allowed",
	}
	ErrNotOnReview = exception.ApplicationError{
		StatusCode: http.StatusConflict,
		Kind:       exception.KindValidation,
		Message:    "booking can only be submitted from the review step",
	}
	ErrTermsNotAccepted = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "terms and conditions must be accepted",
	}
	ErrSubmissionInFlight = exception.ApplicationError{
		StatusCode: http.StatusConflict,
		Kind:       exception.KindValidation,
		Message:    "booking submission is already in progress",
	}
	ErrCompleted = exception.ApplicationError{
		StatusCode: http.StatusConflict,
		Kind:       exception.KindValidation,
		Message:    "booking has already been submitted",
	}
	ErrNotEditable = exception.ApplicationError{
		StatusCode: http.StatusConflict,
		Kind:       exception.KindValidation,
		Message:    "travelers can only be edited on the traveler info step",
	}
	ErrTravelerNotFound = exception.ApplicationError{
		StatusCode: http.StatusNotFound,
		Kind:       exception.KindValidation,
		Message:    "traveler not found",
	}
)

// OrderSubmitter places the booking with the external API.
type OrderSubmitter interface {
	CreateFlightOrder(ctx context.Context, token string, booking dto.FlightBookingData) (dto.FlightOrder, error)
}

type Navigator interface {
	Navigate(ctx context.Context, path string)
}

type Notifier interface {
	Notify(ctx context.Context, message string)
}

type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) { f(ctx, path) }

type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

type Config struct {
	Offer      dto.FlightOffer
	Travelers  []dto.BookingTraveler
	Submitter  OrderSubmitter
	Navigator  Navigator
	Notifier   Notifier
	ReturnPath string
	LoginPath  string
	Clock      clock.Clock
}

type Outcome string

const (
	OutcomeBooked        Outcome = "booked"
	OutcomeLoginRequired Outcome = "login_required"
	OutcomeFailed        Outcome = "failed"
)

// Result of a submission that reached the submission sequence.
type Result struct {
	Outcome  Outcome
	OrderID  string
	Redirect string
	Message  string
}

// Snapshot is a copy of the wizard state for rendering.
type Snapshot struct {
	Step          Step
	Progress      float64
	TermsAccepted bool
	Submitting    bool
	Completed     bool
	OrderID       string
	Offer         dto.FlightOffer
	Travelers     []dto.BookingTraveler
}

// Wizard is safe for concurrent use. The offer is never modified.
type Wizard struct {
	mu sync.Mutex

	offer     dto.FlightOffer
	travelers []dto.BookingTraveler

	step          Step
	termsAccepted bool
	submitting    bool
	completed     bool
	orderID       string

	submitter  OrderSubmitter
	navigator  Navigator
	notifier   Notifier
	returnPath string
	loginPath  string
	clock      clock.Clock
}

func New(cfg Config) *Wizard {
	travelers := cfg.Travelers
	if travelers == nil {
		travelers = traveler.FromOffer(cfg.Offer)
	}

	w := &Wizard{
		offer:      cfg.Offer,
		travelers:  append([]dto.BookingTraveler(nil), travelers...),
		step:       StepTravelerInfo,
		submitter:  cfg.Submitter,
		navigator:  cfg.Navigator,
		notifier:   cfg.Notifier,
		returnPath: cfg.ReturnPath,
		loginPath:  cfg.LoginPath,
		clock:      cfg.Clock,
	}

	if w.navigator == nil {
		w.navigator = NavigatorFunc(func(context.Context, string) {})
	}
	if w.notifier == nil {
		w.notifier = NotifierFunc(func(context.Context, string) {})
	}
	if w.loginPath == "" {
		w.loginPath = DefaultLoginPath
	}
	if w.clock == nil {
		w.clock = clock.New()
	}

	return w
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.step
}

func (w *Wizard) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return progress(w.step)
}

func progress(step Step) float64 {
	return float64(step) / TotalSteps * 100
}

// Next validates every traveler form and moves to review.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkMutable(); err != nil {
		return err
	}

	if w.step != StepTravelerInfo {
		return ErrInvalidTransition
	}

	if err := traveler.ValidateAll(w.travelers, passport.Today(w.clock)); err != nil {
		return err
	}

	w.step = StepReview

	return nil
}

// Previous goes back to traveler info. It does nothing on the first step.
func (w *Wizard) Previous() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkMutable(); err != nil {
		return err
	}

	if w.step > StepTravelerInfo {
		w.step--
	}

	return nil
}

func (w *Wizard) AcceptTerms(accepted bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkMutable(); err != nil {
		return err
	}

	w.termsAccepted = accepted

	return nil
}

// UpdateTraveler sets one form field of the traveler at index.
func (w *Wizard) UpdateTraveler(index int, field string, value string) error {
	f, err := traveler.ParseField(field)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkMutable(); err != nil {
		return err
	}

	if w.step != StepTravelerInfo {
		return ErrNotEditable
	}

	if index < 0 || index >= len(w.travelers) {
		return ErrTravelerNotFound
	}

	return traveler.Set(&w.travelers[index], f, value)
}

func (w *Wizard) checkMutable() error {
	if w.completed {
		return ErrCompleted
	}

	if w.submitting {
		return ErrSubmissionInFlight
	}

	return nil
}

// Submit runs the submission sequence. Guard failures return an error and
// touch nothing; every other exit reports through the returned Result.
func (w *Wizard) Submit(ctx context.Context, token string) (result Result, err error) {
	w.mu.Lock()
	switch {
	case w.completed:
		err = ErrCompleted
	case w.step != StepReview:
		err = ErrNotOnReview
	case !w.termsAccepted:
		err = ErrTermsNotAccepted
	case w.submitting:
		err = ErrSubmissionInFlight
	}
	if err != nil {
		w.mu.Unlock()
		return Result{}, err
	}

	w.submitting = true
	travelers := append([]dto.BookingTraveler(nil), w.travelers...)
	w.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "booking submission panicked", slog.Any("panic", r))
			w.notifier.Notify(ctx, MsgUnexpected)
			result, err = Result{Outcome: OutcomeFailed, Message: MsgUnexpected}, nil
		}

		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	apiTravelers := traveler.NormalizeAll(travelers)
	for i, t := range apiTravelers {
		if traveler.IsIncomplete(t) {
			slog.WarnContext(ctx, "submitting traveler with incomplete document defaults",
				slog.Int("traveler", i+1), slog.String("traveler_id", t.ID))
		}
	}

	booking := dto.FlightBookingData{
		FlightOffer: w.offer,
		Travelers:   apiTravelers,
	}

	if strings.TrimSpace(token) == "" {
		redirect := w.loginPath + "?redirect=" + url.QueryEscape(w.returnPath)
		w.navigator.Navigate(ctx, redirect)

		return Result{Outcome: OutcomeLoginRequired, Redirect: redirect}, nil
	}

	order, err := w.submitter.CreateFlightOrder(ctx, token, booking)
	if err != nil {
		message := exception.MessageOf(err, MsgCreateBookingFailed)
		slog.ErrorContext(ctx, "failed to create booking", slog.String("error", err.Error()))
		w.notifier.Notify(ctx, message)

		return Result{Outcome: OutcomeFailed, Message: message}, nil
	}

	w.mu.Lock()
	w.completed = true
	w.orderID = order.ID
	w.mu.Unlock()

	redirect := SuccessPath + url.PathEscape(order.ID)
	w.navigator.Navigate(ctx, redirect)

	return Result{Outcome: OutcomeBooked, OrderID: order.ID, Redirect: redirect}, nil
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Snapshot{
		Step:          w.step,
		Progress:      progress(w.step),
		TermsAccepted: w.termsAccepted,
		Submitting:    w.submitting,
		Completed:     w.completed,
		OrderID:       w.orderID,
		Offer:         w.offer,
		Travelers:     append([]dto.BookingTraveler(nil), w.travelers...),
	}
}
