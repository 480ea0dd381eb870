// File: internal/tools/server.go

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/pagelens/internal/browser"
	"github.com/xkilldash9x/pagelens/internal/config"
)

// Server hosts the tool registry over the MCP stdio transport.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
}

// NewServer builds the full stack: a Chrome launcher from the config, the
// tool handlers, and an MCP server with every tool registered.
func NewServer(cfg *config.Config, logger *zap.Logger, version string) *Server {
	launcher := browser.NewChromeLauncher(cfg.Browser, logger)
	handlers := NewHandlers(launcher, cfg.Screenshot, logger)

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "pagelens",
		Version: version,
	}, nil)
	Register(srv, handlers)

	return &Server{
		mcpServer: srv,
		logger:    logger.Named("server"),
	}
}

// Run serves tool invocations over standard input/output until the context
// is canceled or the client disconnects. Stdout belongs to the transport;
// all logging goes elsewhere.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Serving tools over stdio.")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
