package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gitrecap/gitrecap/core"
	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// repoListing is the scan_repositories tool response shape.
type repoListing struct {
	ScanDir string   `json:"scan_dir"`
	Count   int      `json:"count"`
	Repos   []string `json:"repos"`
}

func (h *toolHandler) handleScanRepositories(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("scan_dir", ""); p != "" {
		cfg.ScanDir = p
	}
	if d := request.GetInt("depth", 0); d > 0 {
		cfg.Depth = d
	}

	repos := core.DiscoverRepos(cfg)
	listing := repoListing{
		ScanDir: cfg.ScanDir,
		Count:   len(repos),
		Repos:   repos,
	}

	jsonData, _ := json.MarshalIndent(listing, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleBuildReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if y := request.GetInt("year", 0); y > 0 && y != cfg.Year {
		cfg = cfg.CloneWithYear(y)
	}
	if p := request.GetString("scan_dir", ""); p != "" {
		cfg.ScanDir = p
	}
	if a := request.GetString("author_email", ""); a != "" {
		cfg.AuthorEmail = a
	}
	if d := request.GetInt("depth", 0); d > 0 {
		cfg.Depth = d
	}

	result, err := core.GetScanResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recap failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
