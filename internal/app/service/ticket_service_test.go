//go:build unit

package service

import (
	"context"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/ticketstatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) Next(_ context.Context, current ticketstatus.State) (ticketstatus.Update, error) {
	return ticketstatus.Update{Status: ticketstatus.StatusProcessing, Progress: current.Progress}, nil
}

func newTicketService(clk clock.Clock, calls *int) *TicketService {
	return NewTicketService(TicketServiceConfig{
		NewSource: func(token string) (ticketstatus.Source, error) {
			*calls++
			if token == "expired" {
				return nil, ErrAuthRequired
			}
			return stubSource{}, nil
		},
		Clock:      clk,
		Interval:   3 * time.Second,
		ReadyDelay: 2 * time.Second,
	})
}

func TestTicketService_Track(t *testing.T) {
	var calls int
	svc := newTicketService(clock.NewMock(), &calls)
	t.Cleanup(svc.Close)

	ctx := context.Background()

	got, err := svc.Track(ctx, dto.TicketRequest{BookingID: "BK1", Token: "tok"})
	require.NoError(t, err)

	assert.Equal(t, "BK1", got.BookingID)
	assert.Equal(t, "processing", got.Status)
	assert.Equal(t, ticketstatus.DefaultInitialProgress, got.Progress)
	assert.Empty(t, got.TicketURL)

	_, err = svc.Track(ctx, dto.TicketRequest{BookingID: "BK1", Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	status, err := svc.Status(ctx, dto.TicketRequest{BookingID: "BK1", Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "BK1", status.BookingID)
}

func TestTicketService_TrackSourceError(t *testing.T) {
	var calls int
	svc := newTicketService(clock.NewMock(), &calls)

	_, err := svc.Track(context.Background(), dto.TicketRequest{BookingID: "BK1", Token: "expired"})
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.Status(context.Background(), dto.TicketRequest{BookingID: "BK1"})
	assert.ErrorIs(t, err, ErrTicketNotTracked)
}

func TestTicketService_Untrack(t *testing.T) {
	var calls int
	svc := newTicketService(clock.NewMock(), &calls)
	ctx := context.Background()

	err := svc.Untrack(ctx, dto.TicketRequest{BookingID: "BK1"})
	assert.ErrorIs(t, err, ErrTicketNotTracked)

	_, err = svc.Track(ctx, dto.TicketRequest{BookingID: "BK1"})
	require.NoError(t, err)

	require.NoError(t, svc.Untrack(ctx, dto.TicketRequest{BookingID: "BK1"}))

	_, err = svc.Status(ctx, dto.TicketRequest{BookingID: "BK1"})
	assert.ErrorIs(t, err, ErrTicketNotTracked)
}

func TestTicketService_Close(t *testing.T) {
	var calls int
	svc := newTicketService(clock.NewMock(), &calls)
	ctx := context.Background()

	for _, id := range []string{"BK1", "BK2"} {
		_, err := svc.Track(ctx, dto.TicketRequest{BookingID: id})
		require.NoError(t, err)
	}

	svc.Close()

	_, err := svc.Status(ctx, dto.TicketRequest{BookingID: "BK2"})
	assert.ErrorIs(t, err, ErrTicketNotTracked)
}

type failingSource struct{}

func (failingSource) Next(context.Context, ticketstatus.State) (ticketstatus.Update, error) {
	return ticketstatus.Update{Status: ticketstatus.StatusFailed, ErrorMessage: ticketstatus.MsgBookingNotFound}, nil
}

// newOwnedTicketService fails the bookings of every token listed in failing.
func newOwnedTicketService(clk clock.Clock, failing map[string]bool) *TicketService {
	return NewTicketService(TicketServiceConfig{
		NewSource: func(token string) (ticketstatus.Source, error) {
			if failing[token] {
				return failingSource{}, nil
			}
			return stubSource{}, nil
		},
		Clock:     clk,
		Interval:  3 * time.Second,
		Retention: time.Minute,
	})
}

func waitForStatus(t *testing.T, svc *TicketService, req dto.TicketRequest, want string) {
	t.Helper()

	require.Eventually(t, func() bool {
		got, err := svc.Status(context.Background(), req)
		return err == nil && got.Status == want
	}, time.Second, 5*time.Millisecond)
}

func TestTicketService_TrackingIsPerCaller(t *testing.T) {
	clk := clock.NewMock()
	svc := newOwnedTicketService(clk, map[string]bool{"mallory": true})
	t.Cleanup(svc.Close)

	ctx := context.Background()
	mallory := dto.TicketRequest{BookingID: "BK1", Token: "mallory"}
	alice := dto.TicketRequest{BookingID: "BK1", Token: "alice"}

	_, err := svc.Track(ctx, mallory)
	require.NoError(t, err)

	clk.Add(3 * time.Second)
	waitForStatus(t, svc, mallory, "failed")

	got, err := svc.Track(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "processing", got.Status)
	assert.Empty(t, got.ErrorMessage)

	_, err = svc.Status(ctx, dto.TicketRequest{BookingID: "BK1", Token: "bob"})
	assert.ErrorIs(t, err, ErrTicketNotTracked)

	err = svc.Untrack(ctx, dto.TicketRequest{BookingID: "BK1", Token: "bob"})
	assert.ErrorIs(t, err, ErrTicketNotTracked)

	require.NoError(t, svc.Untrack(ctx, mallory))

	got, err = svc.Status(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "processing", got.Status)
}

func TestTicketService_TrackRestartsFailedPoller(t *testing.T) {
	clk := clock.NewMock()
	failing := map[string]bool{"alice": true}
	svc := newOwnedTicketService(clk, failing)
	t.Cleanup(svc.Close)

	ctx := context.Background()
	req := dto.TicketRequest{BookingID: "BK1", Token: "alice"}

	_, err := svc.Track(ctx, req)
	require.NoError(t, err)

	clk.Add(3 * time.Second)
	waitForStatus(t, svc, req, "failed")

	delete(failing, "alice")

	got, err := svc.Track(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "processing", got.Status)
	assert.Equal(t, ticketstatus.DefaultInitialProgress, got.Progress)
}

func TestTicketService_EvictsFinishedPollers(t *testing.T) {
	clk := clock.NewMock()
	svc := newOwnedTicketService(clk, map[string]bool{"alice": true})
	t.Cleanup(svc.Close)

	ctx := context.Background()
	failed := dto.TicketRequest{BookingID: "BK1", Token: "alice"}

	_, err := svc.Track(ctx, failed)
	require.NoError(t, err)

	clk.Add(3 * time.Second)
	waitForStatus(t, svc, failed, "failed")

	// still readable within the retention window
	_, err = svc.Track(ctx, dto.TicketRequest{BookingID: "BK2", Token: "bob"})
	require.NoError(t, err)
	_, err = svc.Status(ctx, failed)
	require.NoError(t, err)

	clk.Add(2 * time.Minute)

	_, err = svc.Track(ctx, dto.TicketRequest{BookingID: "BK3", Token: "bob"})
	require.NoError(t, err)

	_, err = svc.Status(ctx, failed)
	assert.ErrorIs(t, err, ErrTicketNotTracked)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Len(t, svc.pollers, 2)
}
