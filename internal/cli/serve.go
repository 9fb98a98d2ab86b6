package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/landscape/internal/server"
)

// serveCommand creates the "serve" command exposing the inspection API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only inspection API over a dumped network",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			provider := c.newProvider(cmd.Context(), false)
			printInfo("serving on http://%s", addr)
			return server.New(n, provider, c.Logger).ListenAndServe(addr)
		},
	}

	networkFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
