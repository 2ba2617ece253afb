package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/texspell/texspell/internal/application"
	"github.com/texspell/texspell/internal/domain"
)

// NewTexspellMCPServer creates an MCP server exposing the check pipeline as
// tools and the effective configuration as a resource. cfg supplies the
// default language of texspell_check.
func NewTexspellMCPServer(svc *application.CheckService, cfg domain.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"texspell",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc, cfg)
	registerResources(s, cfg)

	return s
}
