// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitrecap MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitrecap Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: scan_repositories ---
	s.AddTool(mcp.NewTool("scan_repositories",
		mcp.WithDescription("Discover Git repositories under a directory tree."),
		mcp.WithString("scan_dir", mcp.Description("Directory to scan (defaults to the configured scan root).")),
		mcp.WithNumber("depth", mcp.Description("How many directory levels below the root to descend.")),
	), h.handleScanRepositories)

	// --- 2. Tool: build_report ---
	s.AddTool(mcp.NewTool("build_report",
		mcp.WithDescription("Build a commit recap for one author and calendar year across every repository under a directory."),
		mcp.WithString("scan_dir", mcp.Description("Directory to scan (defaults to the configured scan root).")),
		mcp.WithNumber("year", mcp.Description("Calendar year to recap (defaults to the configured year).")),
		mcp.WithString("author_email", mcp.Description("Author email to filter commits by (defaults to the configured author).")),
		mcp.WithNumber("depth", mcp.Description("How many directory levels below the root to descend.")),
	), h.handleBuildReport)

	return s
}

// StartMCPServer starts the gitrecap MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
