package ticketstatus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event is a ticket status message published by the ticketing side.
type Event struct {
	BookingID    string  `json:"booking_id"`
	Status       Status  `json:"status"`
	Progress     float64 `json:"progress"`
	TicketURL    string  `json:"ticket_url,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

func NewKafkaReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
}

// EventSource serves the latest consumed event of each booking.
type EventSource struct {
	reader MessageReader

	mu     sync.RWMutex
	latest map[string]Event
}

func NewEventSource(reader MessageReader) *EventSource {
	return &EventSource{
		reader: reader,
		latest: make(map[string]Event),
	}
}

// Run consumes events until ctx is done. Malformed messages are logged and skipped.
func (s *EventSource) Run(ctx context.Context) error {
	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read ticket status event: %w", err)
		}

		if err := s.HandleMessage(msg); err != nil {
			slog.WarnContext(ctx, "skipping ticket status event",
				slog.String("key", string(msg.Key)), slog.String("error", err.Error()))
		}
	}
}

func (s *EventSource) HandleMessage(msg kafka.Message) error {
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	if event.BookingID == "" {
		event.BookingID = string(msg.Key)
	}
	if event.BookingID == "" {
		return errors.New("event has no booking id")
	}

	switch event.Status {
	case StatusProcessing, StatusReady, StatusFailed, StatusCancelled:
	default:
		return fmt.Errorf("unknown status %q", event.Status)
	}

	s.mu.Lock()
	s.latest[event.BookingID] = event
	s.mu.Unlock()

	return nil
}

// Next reports the latest event of the booking, or no change when none arrived yet.
func (s *EventSource) Next(_ context.Context, current State) (Update, error) {
	s.mu.RLock()
	event, ok := s.latest[current.BookingID]
	s.mu.RUnlock()

	if !ok {
		return Update{Status: StatusProcessing, Progress: current.Progress}, nil
	}

	return Update{
		Status:       event.Status,
		Progress:     event.Progress,
		TicketURL:    event.TicketURL,
		ErrorMessage: event.ErrorMessage,
	}, nil
}

func (s *EventSource) Close() error {
	return s.reader.Close()
}
