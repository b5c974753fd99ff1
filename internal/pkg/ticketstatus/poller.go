// Package ticketstatus tracks ticket issuance for a booking until the ticket is
// ready or the booking fails.
package ticketstatus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/logger"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsTerminal() bool {
	return s == StatusReady || s == StatusFailed || s == StatusCancelled
}

const (
	DefaultInterval        = 3 * time.Second
	DefaultReadyDelay      = 2 * time.Second
	DefaultInitialProgress = 45
)

// State is the observable ticket status of one booking.
type State struct {
	BookingID    string
	Status       Status
	Progress     float64
	TicketURL    string
	ErrorMessage string
	LastUpdated  time.Time
}

// Update is what a source reports on one tick. Progress is absolute, not a delta.
type Update struct {
	Status       Status
	Progress     float64
	TicketURL    string
	ErrorMessage string
}

// Source supplies ticket status updates.
type Source interface {
	Next(ctx context.Context, current State) (Update, error)
}

type PollerConfig struct {
	BookingID       string
	Source          Source
	Clock           clock.Clock
	Interval        time.Duration
	ReadyDelay      time.Duration
	InitialProgress float64
	// OnTicketReady is called once, after the ticket url is set. It must not call Stop.
	OnTicketReady func(url string)
}

// Poller moves a booking from processing to a terminal status one tick at a time.
// Ticks are serialized; no update or callback happens after Stop returns.
type Poller struct {
	mu   sync.Mutex
	cbMu sync.Mutex

	source        Source
	clock         clock.Clock
	interval      time.Duration
	readyDelay    time.Duration
	onTicketReady func(url string)

	state      State
	readyTimer *clock.Timer
	started    bool
	stopped    bool
	delivered  bool
	ticking    bool

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
	doneOnce sync.Once
}

func NewPoller(cfg PollerConfig) *Poller {
	p := &Poller{
		source:        cfg.Source,
		clock:         cfg.Clock,
		interval:      cfg.Interval,
		readyDelay:    cfg.ReadyDelay,
		onTicketReady: cfg.OnTicketReady,
		done:          make(chan struct{}),
	}

	if p.clock == nil {
		p.clock = clock.New()
	}
	if p.interval <= 0 {
		p.interval = DefaultInterval
	}
	if p.readyDelay < 0 {
		p.readyDelay = 0
	}

	p.state = State{
		BookingID:   cfg.BookingID,
		Status:      StatusProcessing,
		Progress:    clamp(cfg.InitialProgress),
		LastUpdated: p.clock.Now(),
	}

	return p
}

// Start runs the tick loop until the status is terminal or Stop is called.
// Calling it again has no effect.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.stopped || p.state.Status.IsTerminal() {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(logger.WithBookingID(ctx, p.state.BookingID))
	ticker := p.clock.Ticker(p.interval)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Tick(ctx)
				if p.isTerminal() {
					return
				}
			}
		}
	}()
}

// Stop cancels the loop and any pending ticket url. It waits for a running
// tick loop and callback to finish. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}

	p.stopped = true
	if p.readyTimer != nil {
		p.readyTimer.Stop()
	}
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	// wait for an in-flight ready callback
	p.cbMu.Lock()
	p.cbMu.Unlock()

	p.wg.Wait()
	p.closeDone()
}

// Tick asks the source for one update and applies it. A Tick that starts
// while another is waiting on the source does nothing.
func (p *Poller) Tick(ctx context.Context) {
	p.mu.Lock()
	if p.stopped || p.ticking || p.state.Status.IsTerminal() {
		p.mu.Unlock()
		return
	}
	p.ticking = true
	current := p.state
	p.mu.Unlock()

	update, err := p.source.Next(ctx, current)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.ticking = false

	if err != nil {
		slog.WarnContext(ctx, "failed to fetch ticket status, skipping tick",
			slog.String("booking_id", current.BookingID), slog.String("error", err.Error()))
		return
	}

	// the poller may have been stopped or finished while the source was called
	if p.stopped || p.state.Status.IsTerminal() {
		return
	}

	p.apply(ctx, update)
}

// apply must be called with p.mu held.
func (p *Poller) apply(ctx context.Context, update Update) {
	p.state.LastUpdated = p.clock.Now()

	switch update.Status {
	case StatusFailed, StatusCancelled:
		p.state.Status = update.Status
		p.state.ErrorMessage = update.ErrorMessage
		slog.InfoContext(ctx, "ticket processing ended",
			slog.String("booking_id", p.state.BookingID), slog.String("status", string(update.Status)))
		p.closeDone()
		return
	case StatusReady:
		p.state.Progress = 100
	default:
		if progress := clamp(update.Progress); progress > p.state.Progress {
			p.state.Progress = progress
		}
	}

	if p.state.Progress < 100 {
		return
	}

	p.state.Status = StatusReady
	p.state.Progress = 100

	url := update.TicketURL
	if url == "" {
		url = DefaultTicketURL(p.state.BookingID)
	}

	slog.InfoContext(ctx, "ticket ready, publishing url after delay",
		slog.String("booking_id", p.state.BookingID), slog.Duration("delay", p.readyDelay))

	p.readyTimer = p.clock.AfterFunc(p.readyDelay, func() { p.deliver(url) })
}

func (p *Poller) deliver(url string) {
	p.cbMu.Lock()
	defer p.cbMu.Unlock()

	p.mu.Lock()
	if p.stopped || p.delivered {
		p.mu.Unlock()
		return
	}

	p.state.TicketURL = url
	p.state.LastUpdated = p.clock.Now()
	p.delivered = true
	callback := p.onTicketReady
	p.mu.Unlock()

	if callback != nil {
		callback(url)
	}

	p.closeDone()
}

func (p *Poller) isTerminal() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.Status.IsTerminal()
}

func (p *Poller) closeDone() {
	p.doneOnce.Do(func() { close(p.done) })
}

// Done is closed once the ticket url is delivered, the booking fails or the poller is stopped.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// DefaultTicketURL is where the ticket of a booking is served when the source does not say.
func DefaultTicketURL(bookingID string) string {
	return fmt.Sprintf("/tickets/%s.pdf", bookingID)
}

func clamp(progress float64) float64 {
	switch {
	case progress < 0:
		return 0
	case progress > 100:
		return 100
	default:
		return progress
	}
}
