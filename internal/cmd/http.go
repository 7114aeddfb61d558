package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/dslh/lodestar-mcp/internal/httpapi"
)

func newHTTPCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the HTTP proxy server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, addr)
			if err != nil {
				return err
			}
			d, err := newDispatcher(cfg)
			if err != nil {
				return err
			}

			log.Printf("Using LodeStar API at %s", cfg.ResolvedBaseURL())
			return httpapi.NewServer(cfg.HTTPAddr, d).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "http-addr", "", "listen address (overrides LODESTAR_HTTP_ADDR)")

	return cmd
}
