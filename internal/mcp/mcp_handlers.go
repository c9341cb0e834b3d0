package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zarmaks/gitfolio/core"
	"github.com/zarmaks/gitfolio/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.RepoFetcher
	mgr     contract.CacheManager
}

func (h *toolHandler) handleAnalyzePortfolio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Username = request.GetString("username", "")
	if cfg.Username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	cfg.Refresh = request.GetBool("refresh", cfg.Refresh)

	report, err := core.RunPortfolioAnalysis(ctx, cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Username = request.GetString("username", "")
	if cfg.Username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}
	cfg.RepoName = request.GetString("repo", "")
	if cfg.RepoName == "" {
		return mcp.NewToolResultError("repo is required"), nil
	}
	cfg.Refresh = request.GetBool("refresh", cfg.Refresh)

	set, err := core.ResolveSnapshots(ctx, cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot fetch failed: %v", err)), nil
	}

	engine := core.NewEngine(cfg.Weights, cfg.Catalog, core.WithResultLimit(cfg.ResultLimit))
	report, err := engine.AnalyzeRepository(set, cfg.RepoName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSuggestLearningPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Username = request.GetString("username", "")
	if cfg.Username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}
	cfg.Role = request.GetString("role", "")
	if cfg.Role == "" {
		return mcp.NewToolResultError("role is required"), nil
	}
	if n := request.GetInt("top_gaps", 0); n > 0 {
		cfg.TopGaps = n
	}

	set, err := core.ResolveSnapshots(ctx, cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot fetch failed: %v", err)), nil
	}

	engine := core.NewEngine(cfg.Weights, cfg.Catalog, core.WithTopGaps(cfg.TopGaps))
	report, err := engine.SuggestLearningPath(set, cfg.Role)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("role matching failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
