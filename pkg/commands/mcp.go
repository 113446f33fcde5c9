package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/runner/mcp"
)

type mcpOptions struct {
	transport string
	host      string
	port      int
	path      string
	tlsCert   string
	tlsKey    string
}

func addMCP(topLevel *cobra.Command) {
	mo := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes today's board, the archive and the task
mutations through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withEnv(cmd.Context(), func(e *env) error {
				runner, err := mo.runner(cmd)
				if err != nil {
					return err
				}
				runner.Tasks = e.tasks
				return runner.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&mo.transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&mo.host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&mo.port, "http-port", 8788, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&mo.path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&mo.tlsCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&mo.tlsKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

func (mo *mcpOptions) runner(cmd *cobra.Command) (mcp.Runner, error) {
	path := strings.TrimSpace(mo.path)
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	r := mcp.Runner{
		Name:             "focus",
		Version:          Version,
		HTTPEndpointPath: path,
		HTTPServerCert:   strings.TrimSpace(mo.tlsCert),
		HTTPServerKey:    strings.TrimSpace(mo.tlsKey),
	}

	switch strings.ToLower(strings.TrimSpace(mo.transport)) {
	case "", string(mcp.TransportHTTP):
		host := strings.TrimSpace(mo.host)
		if host == "" {
			host = "127.0.0.1"
		}
		if mo.port < 0 || mo.port > 65535 {
			return mcp.Runner{}, fmt.Errorf("invalid http-port %d", mo.port)
		}
		scheme := "http"
		if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
			scheme = "https"
		}

		r.Transport = mcp.TransportHTTP
		r.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(mo.port))
		r.OnHTTPListening = func(a net.Addr) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s://%s%s\n", scheme, a.String(), path)
		}
	case string(mcp.TransportStdio):
		r.Transport = mcp.TransportStdio
	default:
		return mcp.Runner{}, fmt.Errorf("unsupported transport %q (expected http or stdio)", mo.transport)
	}
	return r, nil
}
