package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the subnetplan HTTP API",
		Long: `Run the subnetplan HTTP API.

The API is token-based: partition endpoints take a share token, apply an
operation, and answer with the successor token. The plan store maps short
ids to tokens so links stay small; its backend (memory, file, redis, or
mongo) is selected in config.toml.

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			st, err := newStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			c.Logger.Info("starting server", "addr", addr, "store", cfg.Store.Backend)
			return server.New(st, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config or :8080)")

	return cmd
}
