// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/zarmaks/gitfolio/internal/contract"
)

// NewMCPServer initializes and configures the Gitfolio MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitfolio Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_portfolio ---
	s.AddTool(mcp.NewTool("analyze_portfolio",
		mcp.WithDescription("Analyze a GitHub user's public repositories and produce a scored portfolio report with suggestions."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked repositories returned.")),
		mcp.WithBoolean("refresh", mcp.Description("Bypass the snapshot cache and refetch from the GitHub API.")),
	), h.handleAnalyzePortfolio)

	// --- 2. Tool: analyze_repository ---
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Produce a deep-dive quality report for one repository of a GitHub user."),
		mcp.WithString("username", mcp.Description("GitHub username owning the repository."), mcp.Required()),
		mcp.WithString("repo", mcp.Description("Repository name to analyze."), mcp.Required()),
		mcp.WithBoolean("refresh", mcp.Description("Bypass the snapshot cache and refetch from the GitHub API.")),
	), h.handleAnalyzeRepository)

	// --- 3. Tool: suggest_learning_path ---
	s.AddTool(mcp.NewTool("suggest_learning_path",
		mcp.WithDescription("Match a GitHub portfolio against a target engineering role and return the skill gaps with next steps."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze."), mcp.Required()),
		mcp.WithString("role", mcp.Description("Target role name (e.g. 'mlops engineer', 'backend engineer')."), mcp.Required()),
		mcp.WithNumber("top_gaps", mcp.Description("Number of top gaps to highlight.")),
	), h.handleSuggestLearningPath)

	return s
}

// StartMCPServer starts the Gitfolio MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, fetcher, mgr)
	return server.ServeStdio(s)
}
