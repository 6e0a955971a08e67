// Package mcp exposes snapdesk's capture and restore operations as MCP
// tools over stdio.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/snapdesk/internal/config"
	"github.com/1broseidon/snapdesk/internal/platform"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

const (
	ServerName    = "snapdesk"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for window layout snapshots.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	logger    *slog.Logger

	// connect opens a backend per tool call; swapped out in tests.
	connect func() (platform.Backend, func(), error)
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		connect: func() (platform.Backend, func(), error) {
			backend, cleanup, err := platform.Connect(logger)
			if err != nil {
				return nil, nil, err
			}
			return backend, cleanup, nil
		},
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "capture_snapshot",
		Description: "Capture the current window layout (positions, sizes, virtual desktop assignments) into a named collection. Returns the snapshot file path and a capture summary.",
	}, s.handleCapture)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_snapshot",
		Description: "Restore a previously captured window layout. Matches saved windows to live ones by executable name and fuzzy title similarity, repositions them, and reassigns virtual desktops. Per-window failures are isolated; the result reports counts per outcome.",
	}, s.handleRestore)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_snapshots",
		Description: "List snapshot collections, or the snapshot files in one collection (newest first).",
	}, s.handleListSnapshots)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_desktops",
		Description: "List the live virtual desktops with their ordinal, identifier, name, and which one is active.",
	}, s.handleListDesktops)
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// snapshotsRoot resolves the configured snapshots directory.
func (s *Server) snapshotsRoot() (string, error) {
	if s.config != nil && s.config.SnapshotsDir != "" {
		return s.config.SnapshotsDir, nil
	}
	return snapshot.DefaultRoot()
}
