package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docscan/docscan/internal/application"
)

const structureURI = "docscan://structure"

// registerResources registers all docscan MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	s.AddResource(
		mcplib.NewResource(
			structureURI,
			"Project Structure",
			mcplib.WithResourceDescription("Aggregate structure of the project, ready for an overview prompt"),
			mcplib.WithMIMEType("application/json"),
		),
		handleStructureResource(projectPath),
	)
}

func handleStructureResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		ext, err := newService().Extract(ctx, projectPath, application.ExtractOptions{})
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}

		data, err := json.MarshalIndent(ext.Structure, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling structure: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      structureURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
