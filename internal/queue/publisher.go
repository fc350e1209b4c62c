package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nathanyu/boarding-optimizer/internal/domain"
	"github.com/nathanyu/boarding-optimizer/internal/telemetry"
)

// Publisher fans computed boarding sequences out over NATS so downstream
// consumers (gate displays, ops dashboards) can react without polling.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to the NATS server at url. Publishing is optional
// infrastructure: callers that get an error here run without fan-out.
func NewPublisher(url, subject string) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("boarding-optimizer"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				fmt.Printf("NATS disconnected: %v\n", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			fmt.Printf("NATS reconnected to %s\n", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{conn: conn, subject: subject}, nil
}

// PublishSequence sends a sequence-computed event. Fire and forget: the
// caller logs failures, clients never see them.
func (p *Publisher) PublishSequence(result *domain.BoardingResult, filename string) error {
	event := domain.SequenceComputedEvent{
		EventID:          uuid.Must(uuid.NewV7()).String(),
		Filename:         filename,
		ComputedAt:       time.Now().UTC(),
		TotalBookings:    result.TotalBookings,
		TotalPassengers:  result.TotalPassengers,
		BoardingSequence: result.BoardingSequence,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal sequence event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish sequence event: %w", err)
	}

	telemetry.SequenceEventsPublished.WithLabelValues(p.subject).Inc()
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
		p.conn.Close()
	}
}
