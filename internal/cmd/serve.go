package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dslh/lodestar-mcp/internal/httpapi"
	"github.com/dslh/lodestar-mcp/internal/tools"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the MCP server on stdin/stdout. With --http the HTTP proxy runs in the
same process and shares the login session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, httpAddr)
			if err != nil {
				return err
			}
			d, err := newDispatcher(cfg)
			if err != nil {
				return err
			}

			if httpAddr == "" {
				cfg.HTTPAddr = ""
			}
			mcpServer, httpServer := newFrontends(d, cfg.HTTPAddr)
			log.Printf("Using LodeStar API at %s", cfg.ResolvedBaseURL())
			return runServe(cmd.Context(), mcpServer, &mcp.StdioTransport{}, httpServer)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "also serve the HTTP proxy on this address")

	return cmd
}

// newFrontends builds the MCP server and, when httpAddr is set, the HTTP
// proxy over the same dispatcher so both see one login session
func newFrontends(d *tools.Dispatcher, httpAddr string) (*mcp.Server, *httpapi.Server) {
	var httpServer *httpapi.Server
	if httpAddr != "" {
		httpServer = httpapi.NewServer(httpAddr, d)
	}
	return tools.NewServer(d), httpServer
}

// runServe runs the MCP server on transport and, if given, the HTTP proxy.
// The first front-end to stop cancels the other.
func runServe(ctx context.Context, server *mcp.Server, transport mcp.Transport, httpServer *httpapi.Server) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting %s MCP server...", tools.ServerName)
		err := server.Run(ctx, transport)
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("mcp server failed: %w", err)
		}
		if httpServer != nil {
			// stdin closed; stop the proxy too
			return errStopped
		}
		return nil
	})

	if httpServer != nil {
		g.Go(func() error {
			return httpServer.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errStopped) {
		return err
	}
	return nil
}

var errStopped = errors.New("server stopped")
