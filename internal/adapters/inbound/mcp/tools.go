package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docscan/docscan/internal/adapters/outbound/config"
	"github.com/docscan/docscan/internal/adapters/outbound/gitinfo"
	"github.com/docscan/docscan/internal/adapters/outbound/scanner"
	"github.com/docscan/docscan/internal/application"
	"github.com/docscan/docscan/internal/domain"
)

// registerTools registers all docscan MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("docscan_structure",
			mcplib.WithDescription("Returns the aggregate project structure (descriptor counts, totals, capped per-file listing, vocabulary) as JSON"),
			mcplib.WithString("language", mcplib.Description("Language profile: dotnet, angular or html (default: from .docscan.yaml, else dotnet)")),
			mcplib.WithNumber("limit", mcplib.Description("Maximum number of files in the listing (default 20)")),
			mcplib.WithBoolean("records", mcplib.Description("Also return the full per-file structural records")),
		),
		handleStructure(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("docscan_file",
			mcplib.WithDescription("Returns the structural record (namespace, types, methods, interfaces, enums, markers) of a single file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file relative to the project root"),
			),
			mcplib.WithString("language", mcplib.Description("Language profile: dotnet, angular or html")),
		),
		handleFile(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("docscan_languages",
			mcplib.WithDescription("Lists the supported language profiles with their extensions, excluded directories and build descriptors"),
		),
		handleLanguages(),
	)
}

// newService wires the standard outbound adapters into an ExtractService.
func newService() *application.ExtractService {
	return application.NewExtractService(scanner.New(), config.New(), gitinfo.New())
}

// structureResult is the docscan_structure payload.
type structureResult struct {
	Structure domain.AggregateProjectStructure `json:"structure"`
	Skipped   []domain.SkippedFile             `json:"skipped,omitempty"`
	Records   []domain.StructuralRecord        `json:"records,omitempty"`
}

func handleStructure(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		language, _ := args["language"].(string)
		limit, _ := args["limit"].(float64)
		withRecords, _ := args["records"].(bool)

		ext, err := newService().Extract(ctx, projectPath, application.ExtractOptions{
			Language:     language,
			ListingLimit: int(limit),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("extraction failed: %v", err)), nil
		}

		out := structureResult{Structure: ext.Structure, Skipped: ext.Skipped}
		if withRecords {
			out.Records = ext.Records
		}
		return jsonResult(out)
	}
}

func handleFile(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult("file parameter is required"), nil
		}
		language, _ := request.GetArguments()["language"].(string)

		rec, err := newService().ExtractFile(ctx, projectPath, file, application.ExtractOptions{Language: language})
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				return errorResult(fmt.Sprintf("project root not found: %s", nf.Path)), nil
			}
			return errorResult(fmt.Sprintf("extraction failed: %v", err)), nil
		}
		return jsonResult(rec)
	}
}

func handleLanguages() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		profiles := make([]domain.LanguageProfile, 0, len(domain.ValidLanguages))
		for _, lang := range domain.ValidLanguages {
			p, err := domain.ProfileFor(lang)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			profiles = append(profiles, p)
		}
		return jsonResult(profiles)
	}
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
