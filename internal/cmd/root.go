package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dslh/lodestar-mcp/internal/config"
	"github.com/dslh/lodestar-mcp/internal/gateway"
	"github.com/dslh/lodestar-mcp/internal/tools"
	"github.com/dslh/lodestar-mcp/internal/upstream"
)

type rootOptions struct {
	baseURL string
}

// NewRootCommand builds the lodestar-mcp command tree
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "lodestar-mcp",
		Short: "LodeStar closing-cost API over MCP and HTTP",
		Long: `lodestar-mcp exposes the LodeStar title and closing-cost API as MCP tools
and as a small HTTP proxy. Both front-ends share one upstream login session.

Configuration comes from LODESTAR_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "",
		"LodeStar API base URL (overrides LODESTAR_BASE_URL)")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newHTTPCommand(opts))
	rootCmd.AddCommand(newToolsCommand())

	return rootCmd
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(opts *rootOptions, httpAddr string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newDispatcher wires the upstream client, gateway and dispatcher for cfg
func newDispatcher(cfg *config.Config) (*tools.Dispatcher, error) {
	client := upstream.NewClient(cfg.ResolvedBaseURL(), upstream.WithTimeout(cfg.Timeout))
	gw := gateway.New(client, gateway.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	})
	return tools.NewDispatcher(gw)
}
