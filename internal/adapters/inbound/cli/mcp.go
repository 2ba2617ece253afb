package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/texspell/texspell/internal/adapters/inbound/mcp"
)

func newMCPCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the texspell MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start texspell MCP server (stdio)",
		Long:  "Start the texspell MCP server using stdio transport. This lets AI assistants check LaTeX documents and list the server's languages.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := setup(cmd, g)
			if err != nil {
				return err
			}
			s := mcpadapter.NewTexspellMCPServer(svc, cfg)
			return server.ServeStdio(s)
		},
	}
}
