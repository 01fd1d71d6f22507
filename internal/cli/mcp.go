package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvp-joe/i18n-detect/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for hardcoded text detection",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
find hardcoded text while they work on the project.

The MCP server:
- Exposes the detect_hardcoded_text tool
- Resolves relative paths against the project root
- Communicates via stdio (standard MCP transport)

Example:
  i18n-detect mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	projectRoot, cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	srv, err := mcp.NewMCPServer(projectRoot, cfg, newGateway(cfg), Version)
	if err != nil {
		return err
	}
	return srv.Serve(cmd.Context())
}
