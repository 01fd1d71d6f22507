package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/mvp-joe/i18n-detect/internal/config"
	"github.com/mvp-joe/i18n-detect/internal/detect"
	"github.com/mvp-joe/i18n-detect/internal/discovery"
	"github.com/mvp-joe/i18n-detect/internal/report"
)

// DetectToolName is the name the detection tool is registered under.
const DetectToolName = "detect_hardcoded_text"

// DetectRequest holds the arguments of the detect_hardcoded_text tool.
type DetectRequest struct {
	Paths         []string `json:"paths"`
	CollectErrors *bool    `json:"collect_errors"`
}

// AddDetectTool registers the detect_hardcoded_text tool with an MCP server.
// Relative paths in requests are resolved against rootDir.
func AddDetectTool(s *server.MCPServer, gateway detect.Gateway, cfg *config.Config, rootDir string) {
	tool := mcp.NewTool(
		DetectToolName,
		mcp.WithDescription("Find hardcoded string literals and JSX text in TypeScript/JavaScript source files. Returns every literal with its line and column span so it can be moved into translation files."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Files or directories to scan (e.g., ['src/components', 'src/app.tsx'])"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("collect_errors",
			mcp.Description("Report unreadable or unparsable files as failures instead of aborting (default: from config)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createDetectHandler(gateway, cfg, rootDir))
}

// createDetectHandler creates the handler function for the detect_hardcoded_text tool.
func createDetectHandler(gateway detect.Gateway, cfg *config.Config, rootDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]any); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req DetectRequest
		if err := bindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if len(req.Paths) == 0 {
			return mcp.NewToolResultError("paths parameter is required"), nil
		}

		policy, err := detect.ParseFailurePolicy(cfg.Detect.FailurePolicy)
		if err != nil {
			return nil, err
		}
		if req.CollectErrors != nil {
			policy = detect.PolicyAbort
			if *req.CollectErrors {
				policy = detect.PolicyCollect
			}
		}

		paths := make([]string, len(req.Paths))
		for i, p := range req.Paths {
			if !filepath.IsAbs(p) {
				p = filepath.Join(rootDir, p)
			}
			paths[i] = p
		}

		files, err := discovery.ExpandPaths(paths, cfg.Paths.Include, cfg.Paths.Ignore)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		detector := detect.DetectTranslationsNeeds(gateway,
			detect.WithFailurePolicy(policy),
			detect.WithConcurrency(cfg.Detect.Concurrency),
		)
		rep, err := detector.HandleReport(ctx, files)
		if err != nil {
			// Unreadable and unparsable files are the caller's problem.
			var extractErr *detect.ExtractError
			if errors.As(err, &extractErr) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}

		log.Debug().
			Int("files", len(files)).
			Int("segments", report.CountSegments(rep.Entries)).
			Int("failures", len(rep.Failures)).
			Msg("Detection tool call complete")

		return marshalToolResponse(report.NewEnvelope(rep))
	}
}

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
