package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/texspell/texspell/internal/domain"
)

const configURI = "texspell://config"

// registerResources registers all texspell MCP resources on the given server.
func registerResources(s *server.MCPServer, cfg domain.Config) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective texspell settings: server, language, converter and rule filters"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(cfg),
	)
}

func handleConfigResource(cfg domain.Config) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
