package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/task"
)

// Transport selects how the board is exposed to MCP clients.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdin and stdout, for clients that spawn
	// focus as a subprocess.
	TransportStdio Transport = "stdio"
)

const (
	// DefaultListenAddr sits next to the HTTP API's default port.
	DefaultListenAddr = "127.0.0.1:8788"
	// DefaultEndpointPath is where the streamable HTTP handler is mounted.
	DefaultEndpointPath = "/mcp"

	shutdownGrace = 5 * time.Second
)

// ErrTLSPair is returned when only one of the certificate and key is set.
var ErrTLSPair = errors.New("mcp: both http tls cert and key must be provided")

// Runner serves the task board to MCP clients until ctx is cancelled.
type Runner struct {
	Tasks   *app.Service
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	// OnHTTPListening receives the bound address, useful with port 0.
	OnHTTPListening func(net.Addr)
	HTTPServerCert  string
	HTTPServerKey   string
}

func (r Runner) Do(ctx context.Context) error {
	if r.Tasks == nil {
		return errors.New("mcp runner requires a task service")
	}
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return ErrTLSPair
	}

	srv := NewServer(r.Tasks, r.Name, r.Version)
	switch t := r.transport(); t {
	case TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		slog.Info("mcp: serving task board", "transport", t, "today", r.Tasks.Today())
		return server.NewStdioServer(srv).Listen(ctx, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// NewServer builds an MCP server exposing the board tools and resources of
// tasks. Empty name and version default to "focus" and "dev".
func NewServer(tasks *app.Service, name, version string) *server.MCPServer {
	if name == "" {
		name = "focus"
	}
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions(boardInstructions()),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(tasks)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// boardInstructions describes the board to the model: the buckets with
// their capacities, carry-over and archival.
func boardInstructions() string {
	buckets := make([]string, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		buckets = append(buckets, fmt.Sprintf("%s (%s, %d)", p, p.Label(), p.Capacity()))
	}
	return "Manage today's priority board. Buckets and suggested capacity: " +
		strings.Join(buckets, "; ") + ". " +
		"Unfinished tasks from earlier days are carried over to today with carriedFrom set. " +
		"Completed tasks are archived by day; use task_history to read the archive."
}

func (r Runner) transport() Transport {
	if r.Transport == "" {
		return TransportHTTP
	}
	return r.Transport
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	path := r.HTTPEndpointPath
	if path == "" {
		path = DefaultEndpointPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = DefaultListenAddr
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("mcp: listen on %s: %w", listenAddr, err)
	}
	slog.Info("mcp: serving task board", "transport", TransportHTTP, "addr", ln.Addr().String(), "path", path)
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("mcp: shutdown", "error", err)
		}
	}()

	if r.HTTPServerCert != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
