package cli

import (
	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the template editing HTTP API",
		Long: `Serve a JSON API over the configured store. Every editor operation is
exposed under /api/templates/{id}; GET /api/templates/{id}/export?format=html
downloads the rendered page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			ids, err := c.idGenerator()
			if err != nil {
				return err
			}
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(st,
				server.WithLogger(c.Logger),
				server.WithRunner(runner),
				server.WithIDGenerator(ids))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the export cache")

	return cmd
}
