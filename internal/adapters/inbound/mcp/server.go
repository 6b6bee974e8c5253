package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDocscanMCPServer creates an MCP server exposing structural extraction
// of the project at projectPath as tools and resources.
func NewDocscanMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"docscan",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
