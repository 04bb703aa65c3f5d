package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treelinehq/treeline/internal/api"
)

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP service",
		Long: `Run the layout HTTP service.

The service exposes the pipeline over HTTP: POST /v1/layout computes a
layout for a posted tree, POST /v1/render returns a rendered artifact,
and GET /healthz reports liveness. The cache backend comes from the
config file; use a Redis backend to share the cache across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			handler := api.NewHandler(runner, c.Logger)
			return api.Serve(cmd.Context(), addr, handler, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
