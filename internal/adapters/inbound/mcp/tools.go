package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/texspell/texspell/internal/application"
	"github.com/texspell/texspell/internal/domain"
)

// registerTools registers all texspell MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.CheckService, cfg domain.Config) {
	// 1. texspell_check
	s.AddTool(
		mcplib.NewTool("texspell_check",
			mcplib.WithDescription("Check a LaTeX document and return its diagnostics in document coordinates as JSON"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path of the .tex document to check"),
			),
			mcplib.WithString("language",
				mcplib.Description(fmt.Sprintf("Language code (default: %s)", cfg.Language)),
			),
		),
		handleCheck(svc, cfg),
	)

	// 2. texspell_languages
	s.AddTool(
		mcplib.NewTool("texspell_languages",
			mcplib.WithDescription("List the languages supported by the LanguageTool server"),
		),
		handleLanguages(svc),
	)
}

// checkResult is a Report with each diagnostic's 1-based line and column,
// which tool clients cannot derive without the document text.
type checkResult struct {
	*domain.Report
	Positions []position `json:"positions"`
}

type position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func handleCheck(svc *application.CheckService, cfg domain.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		language := request.GetString("language", cfg.Language)

		report, err := svc.CheckDocument(ctx, path, language)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(checkResult{Report: report, Positions: positions(report)})
	}
}

func handleLanguages(svc *application.CheckService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		langs, err := svc.ListLanguages(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("listing languages failed: %v", err)), nil
		}
		return jsonResult(langs)
	}
}

func positions(report *domain.Report) []position {
	out := make([]position, len(report.Diagnostics))
	lines := domain.NewLineIndex(report.Source)
	for i, d := range report.Diagnostics {
		line, col := lines.Position(d.DocumentOffset)
		out[i] = position{Line: line, Column: col}
	}
	return out
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool error the client can show.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
