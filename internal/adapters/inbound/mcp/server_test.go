package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/docscan/docscan/internal/adapters/inbound/mcp"
	"github.com/docscan/docscan/internal/domain"
)

const shopFixture = "../../../../testdata/dotnet/shop"

func TestNewDocscanMCPServer(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer(".")
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer(".")

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"docscan_structure",
		"docscan_file",
		"docscan_languages",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %q not registered", name)

	var req mcplib.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestStructureTool(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer(shopFixture)

	res := callTool(t, s, "docscan_structure", map[string]any{"limit": float64(2)})
	require.False(t, res.IsError, resultText(t, res))

	var out struct {
		Structure domain.AggregateProjectStructure `json:"structure"`
		Records   []domain.StructuralRecord        `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, domain.LanguageDotNet, out.Structure.Language)
	assert.Equal(t, 1, out.Structure.SolutionFiles)
	assert.Equal(t, 2, out.Structure.ProjectFiles)
	assert.Len(t, out.Structure.Files, 2)
	assert.True(t, out.Structure.Truncated)
	assert.Empty(t, out.Records)

	res = callTool(t, s, "docscan_structure", map[string]any{"records": true})
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Len(t, out.Records, out.Structure.TotalFiles)
}

func TestStructureTool_MissingRoot(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer("/nonexistent/docscan/root")

	res := callTool(t, s, "docscan_structure", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "extraction failed")
}

func TestFileTool(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer(shopFixture)

	res := callTool(t, s, "docscan_file", map[string]any{"file": "src/Shop.Core/Models/Order.cs"})
	require.False(t, res.IsError, resultText(t, res))

	var rec domain.StructuralRecord
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rec))
	assert.Equal(t, "Shop.Core.Models", rec.Namespace)
	require.Len(t, rec.Types, 1)
	assert.Equal(t, "Order", rec.Types[0].Name)
}

func TestFileTool_RequiresFile(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer(shopFixture)

	res := callTool(t, s, "docscan_file", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "file parameter is required")
}

func TestLanguagesTool(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer(".")

	res := callTool(t, s, "docscan_languages", nil)
	var profiles []domain.LanguageProfile
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &profiles))
	require.Len(t, profiles, 3)
	assert.Equal(t, domain.LanguageDotNet, profiles[0].Language)
	assert.Contains(t, profiles[1].Extensions, ".ts")
}

func TestStructureResource(t *testing.T) {
	s := mcpadapter.NewDocscanMCPServer(shopFixture)

	msg := s.HandleMessage(context.Background(), []byte(
		`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"docscan://structure"}}`,
	))
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "docscan://structure")
	assert.Contains(t, string(data), "total_files")
}
