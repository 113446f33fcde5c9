package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATS is a Store backed by a JetStream key-value bucket. Watch uses the
// bucket's native change feed, so writes from every client are observed.
type NATS struct {
	conn   *nats.Conn
	kv     jetstream.KeyValue
	bucket string
}

// NATSReconnectWait is the pause between reconnect attempts.
const NATSReconnectWait = 2 * time.Second

// NATSOptions are the connect options shared by every focus NATS client: a
// client name, unlimited reconnects and logged connection state changes.
func NATSOptions(name string) []nats.Option {
	return []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(NATSReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats: disconnected", "name", name, "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats: reconnected", "name", name, "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			slog.Debug("nats: connection closed", "name", name)
		}),
	}
}

// NewNATS connects to url and opens (or creates) the bucket.
func NewNATS(ctx context.Context, url, bucket string) (*NATS, error) {
	if bucket == "" {
		return nil, errors.New("store: nats bucket required")
	}
	conn, err := nats.Connect(url, NATSOptions("focus-store")...)
	if err != nil {
		return nil, fmt.Errorf("store: connect to nats: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: create jetstream context: %w", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	kv, err := js.KeyValue(initCtx, bucket)
	if err != nil {
		kv, err = js.CreateKeyValue(initCtx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "focus task board and session state",
			History:     1,
		})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("store: create kv bucket: %w", err)
		}
		slog.Info("store: created kv bucket", "bucket", bucket)
	}

	return &NATS{conn: conn, kv: kv, bucket: bucket}, nil
}

func (n *NATS) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		entry, err := n.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("store: get %s: %w", key, err)
		}
		out[key] = entry.Value()
	}
	return out, nil
}

// Set writes keys one by one in sorted order; JetStream KV has no multi-key
// transaction. Use SetOrdered when the order matters.
func (n *NATS) Set(ctx context.Context, values map[string][]byte) error {
	for _, key := range sortedKeys(values) {
		if _, err := n.kv.Put(ctx, key, values[key]); err != nil {
			return fmt.Errorf("store: put %s: %w", key, err)
		}
	}
	return nil
}

func (n *NATS) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := n.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
			return fmt.Errorf("store: delete %s: %w", key, err)
		}
	}
	return nil
}

func (n *NATS) Watch(ctx context.Context) (<-chan Change, error) {
	watcher, err := n.kv.WatchAll(ctx, jetstream.UpdatesOnly())
	if err != nil {
		return nil, fmt.Errorf("store: watch bucket %s: %w", n.bucket, err)
	}

	events := make(chan Change, 64)
	go func() {
		defer close(events)
		defer func() { _ = watcher.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-watcher.Updates():
				if !ok {
					return
				}
				// A nil entry marks the end of the initial values.
				if entry == nil {
					continue
				}
				c := Change{Key: entry.Key()}
				switch entry.Operation() {
				case jetstream.KeyValueDelete, jetstream.KeyValuePurge:
				default:
					c.New = entry.Value()
				}
				select {
				case events <- c:
				default:
				}
			}
		}
	}()
	return events, nil
}

func (n *NATS) Close() error {
	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
