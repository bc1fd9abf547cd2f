package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symroot/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool API over HTTP and websocket",
		Long: `Serve the tool API.

  POST /tool    execute a tool call
  GET  /schema  tool schema for agent registration
  GET  /health  health check
  GET  /ws      websocket, one tool call per message`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := serverOptions(a.v)
			fmt.Fprintf(cmd.OutOrStdout(), "symroot listening on %s\n", opts.Addr)
			return server.New(opts, a.log).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().String("addr", defaultServerAddr, "listen address")
	bindFlagToConfig(a.v, cmd.Flags().Lookup("addr"), serverAddrKey)
	cmd.Flags().Int("max-clients", defaultMaxClients, "concurrent websocket clients")
	bindFlagToConfig(a.v, cmd.Flags().Lookup("max-clients"), serverClientsKey)
	return cmd
}
