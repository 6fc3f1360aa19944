package main

import (
	"github.com/spf13/cobra"

	"debrief/internal/logging"
	mcpserver "debrief/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the pipeline as tools:
generate_brief, extract_narrative and validate_brief. Agent hosts connect
via their MCP configuration and call the tools directly.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv := mcpserver.NewServer(cfg)
	logging.New("mcp").Info("starting debrief MCP server over stdio")
	return srv.Run(cmd.Context())
}
