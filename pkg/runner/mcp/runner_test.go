package mcp

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func TestRunnerRejectsHalfTLSPair(t *testing.T) {
	r := Runner{Tasks: app.New(store.NewMemory()), HTTPServerCert: "cert.pem"}
	if err := r.Do(context.Background()); !errors.Is(err, ErrTLSPair) {
		t.Fatalf("expected ErrTLSPair, got %v", err)
	}
}

func TestRunnerHTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var bound net.Addr
	r := Runner{
		Tasks:          app.New(store.NewMemory()),
		Transport:      TransportHTTP,
		HTTPListenAddr: "127.0.0.1:0",
		OnHTTPListening: func(a net.Addr) {
			bound = a
			cancel()
		},
	}

	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("runner did not stop after cancel")
	}
	if bound == nil || strings.HasSuffix(bound.String(), ":0") {
		t.Fatalf("expected a bound port, got %v", bound)
	}
}

func TestRunnerUnknownTransport(t *testing.T) {
	r := Runner{Tasks: app.New(store.NewMemory()), Transport: "carrier-pigeon"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestBoardInstructionsNameEveryBucket(t *testing.T) {
	got := boardInstructions()
	for _, p := range task.Priorities() {
		if !strings.Contains(got, string(p)) || !strings.Contains(got, p.Label()) {
			t.Fatalf("instructions missing %s:\n%s", p, got)
		}
	}
}
