// Package notify forwards task board events to NATS subscribers.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher publishes every app.Event as JSON on one subject.
type Publisher struct {
	conn    Conn
	subject string
	closer  func()
}

// Connect dials url with reconnects enabled and returns a Publisher for
// subject. Events emitted while disconnected are buffered by the client.
func Connect(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url, store.NATSOptions("focus-events")...)
	if err != nil {
		return nil, fmt.Errorf("notify: connect to NATS: %w", err)
	}
	slog.Info("notify: publishing task events", "url", url, "subject", subject)
	p := New(conn, subject)
	p.closer = conn.Close
	return p, nil
}

// New wraps an existing connection.
func New(conn Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// Publish sends evt.
func (p *Publisher) Publish(evt app.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("notify: publish event: %w", err)
	}
	slog.Debug("notify: published task event", "type", evt.Type, "date", evt.Date)
	return nil
}

// Attach registers the publisher as a listener on svc. Publish failures are
// logged; listeners cannot fail the operation that emitted the event.
func (p *Publisher) Attach(svc *app.Service) app.ListenerID {
	return svc.AddListener(func(evt app.Event) {
		if err := p.Publish(evt); err != nil {
			slog.Warn("notify: dropping task event", "type", evt.Type, "error", err)
		}
	})
}

// Close closes a connection opened by Connect.
func (p *Publisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}
