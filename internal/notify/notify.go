// Package notify publishes build-completed events to NATS.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
)

// Event describes one finished build.
type Event struct {
	BuildID    string         `json:"build_id"`
	Status     string         `json:"status"`
	StartedAt  time.Time      `json:"started_at"`
	DurationMS int64          `json:"duration_ms"`
	Documents  map[string]int `json:"documents"`
	Skipped    int            `json:"skipped"`
	Written    int            `json:"written"`
	Unchanged  int            `json:"unchanged"`
	Errors     []string       `json:"errors,omitempty"`
}

// Publisher sends build events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close()
}

// NoopPublisher drops events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close()                               {}

// NATSPublisher publishes JSON events on a subject.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// New returns a NATSPublisher for cfg, or a NoopPublisher when no URL is
// configured.
func New(cfg config.NotifyConfig) (Publisher, error) {
	if cfg.URL == "" {
		return NoopPublisher{}, nil
	}
	conn, err := nats.Connect(cfg.URL, nats.Name("aepsite"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	p := &NATSPublisher{conn: conn, subject: cfg.Subject}
	if cfg.JetStream {
		js, err := jetstream.New(conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
		p.js = js
	}
	return p, nil
}

// Encode returns the wire form of ev.
func Encode(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}

// Publish sends ev and waits until the server has it.
func (p *NATSPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := Encode(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.js != nil {
		if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
			return fmt.Errorf("failed to publish event: %w", err)
		}
	} else {
		if err := p.conn.Publish(p.subject, data); err != nil {
			return fmt.Errorf("failed to publish event: %w", err)
		}
		if err := p.conn.FlushWithContext(ctx); err != nil {
			return fmt.Errorf("failed to flush event: %w", err)
		}
	}
	observability.DebugContext(ctx, "Published build event",
		logfields.BuildID(ev.BuildID), logfields.URL(p.conn.ConnectedUrl()))
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}
