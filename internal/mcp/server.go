package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/mvp-joe/i18n-detect/internal/config"
	"github.com/mvp-joe/i18n-detect/internal/detect"
)

// MCPServer exposes hardcoded text detection to MCP clients over stdio.
type MCPServer struct {
	rootDir string
	mcp     *server.MCPServer
}

// NewMCPServer creates a server whose tool scans files under rootDir with gateway.
func NewMCPServer(rootDir string, cfg *config.Config, gateway detect.Gateway, version string) (*MCPServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if gateway == nil {
		return nil, fmt.Errorf("extraction gateway is required")
	}

	mcpServer := server.NewMCPServer(
		"i18n-detect",
		version,
		server.WithToolCapabilities(true),
	)
	AddDetectTool(mcpServer, gateway, cfg, rootDir)

	return &MCPServer{
		rootDir: rootDir,
		mcp:     mcpServer,
	}, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("root", s.rootDir).Msg("Starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Info().Msg("Received shutdown signal, stopping gracefully")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
