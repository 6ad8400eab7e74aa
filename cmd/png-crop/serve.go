package main

import (
	"github.com/earthboundkid/versioninfo/v2"
	"github.com/spf13/cobra"

	"github.com/ironsheep/png-crop/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long: `Run the MCP (Model Context Protocol) server. Requests are read from stdin
and responses written to stdout, one JSON-RPC message per line. Configure it
in your MCP client; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.WithField("version", versioninfo.Short()).Debug("starting MCP server")
			return server.New(a.cfg, a.log).Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
