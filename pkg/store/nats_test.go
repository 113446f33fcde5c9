package store

import (
	"testing"

	"github.com/nats-io/nats.go"
)

func TestNATSOptionsReconnectForever(t *testing.T) {
	opts := nats.GetDefaultOptions()
	for _, o := range NATSOptions("focus-test") {
		if err := o(&opts); err != nil {
			t.Fatalf("apply option: %v", err)
		}
	}
	if opts.Name != "focus-test" {
		t.Fatalf("expected client name focus-test, got %q", opts.Name)
	}
	if opts.MaxReconnect != -1 {
		t.Fatalf("expected unlimited reconnects, got %d", opts.MaxReconnect)
	}
	if opts.ReconnectWait != NATSReconnectWait {
		t.Fatalf("expected reconnect wait %v, got %v", NATSReconnectWait, opts.ReconnectWait)
	}
	if opts.DisconnectedErrCB == nil || opts.ReconnectedCB == nil || opts.ClosedCB == nil {
		t.Fatalf("expected connection state handlers to be set")
	}
	if !opts.AllowReconnect {
		t.Fatalf("reconnect must stay enabled")
	}
}
