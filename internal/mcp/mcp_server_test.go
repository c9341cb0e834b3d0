package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarmaks/gitfolio/internal/contract"
	mcp_internal "github.com/zarmaks/gitfolio/internal/mcp"
	"github.com/zarmaks/gitfolio/schema"
)

// fakeFetcher serves a canned snapshot set without touching the network.
type fakeFetcher struct {
	set *schema.SnapshotSet
	err error
}

func (f *fakeFetcher) FetchSnapshots(_ context.Context, _ string) (*schema.SnapshotSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

// fakeManager has no configured stores, so analysis runs without persistence.
type fakeManager struct{}

func (m *fakeManager) GetSnapshotStore() contract.SnapshotStore { return nil }
func (m *fakeManager) GetHistoryStore() contract.HistoryStore   { return nil }

func testConfig() *contract.Config {
	return &contract.Config{
		ResultLimit: 25,
		TopGaps:     3,
		Weights:     schema.GetDefaultWeights(),
		Catalog:     schema.GetDefaultRoleCatalog(),
	}
}

func testSnapshotSet() *schema.SnapshotSet {
	return &schema.SnapshotSet{
		User: schema.UserAccount{Login: "octocat"},
		Repos: []schema.RepositorySnapshot{
			{
				Name:            "ml-pipeline",
				Description:     "Training pipeline",
				PrimaryLanguage: "Python",
				Languages:       map[string]int64{"Python": 90000},
				Stars:           42,
				PushedAt:        time.Now().Add(-24 * time.Hour),
				CreatedAt:       time.Now().Add(-400 * 24 * time.Hour),
				UpdatedAt:       time.Now().Add(-24 * time.Hour),
				HasReadme:       true,
				HasTests:        true,
				HasCI:           true,
				HasLicense:      true,
				Topics:          []string{"machine-learning"},
			},
		},
		FetchedAt: time.Now(),
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	fetcher := &fakeFetcher{set: testSnapshotSet()}
	s := mcp_internal.NewMCPServer(testConfig(), fetcher, &fakeManager{})

	t.Run("analyze_portfolio missing username", func(t *testing.T) {
		res := callTool(t, s, "analyze_portfolio", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "username is required")
	})

	t.Run("analyze_repository missing repo", func(t *testing.T) {
		res := callTool(t, s, "analyze_repository", map[string]any{
			"username": "octocat",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "repo is required")
	})

	t.Run("suggest_learning_path missing role", func(t *testing.T) {
		res := callTool(t, s, "suggest_learning_path", map[string]any{
			"username": "octocat",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "role is required")
	})
}

func TestMCPServerHandlers_FetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("github API returned status 503")}
	s := mcp_internal.NewMCPServer(testConfig(), fetcher, &fakeManager{})

	res := callTool(t, s, "analyze_portfolio", map[string]any{
		"username": "octocat",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
}

func TestMCPServerHandlers_Success(t *testing.T) {
	fetcher := &fakeFetcher{set: testSnapshotSet()}
	s := mcp_internal.NewMCPServer(testConfig(), fetcher, &fakeManager{})

	t.Run("analyze_portfolio", func(t *testing.T) {
		res := callTool(t, s, "analyze_portfolio", map[string]any{
			"username": "octocat",
		})
		require.False(t, res.IsError)

		var report schema.PortfolioReport
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &report))
		assert.Equal(t, "octocat", report.User.Login)
		assert.Len(t, report.Repos, 1)
	})

	t.Run("analyze_repository", func(t *testing.T) {
		res := callTool(t, s, "analyze_repository", map[string]any{
			"username": "octocat",
			"repo":     "ml-pipeline",
		})
		require.False(t, res.IsError)

		var report schema.RepositoryReport
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &report))
		assert.Equal(t, "ml-pipeline", report.Snapshot.Name)
		assert.Greater(t, report.Score.Overall, 0)
	})

	t.Run("analyze_repository unknown repo", func(t *testing.T) {
		res := callTool(t, s, "analyze_repository", map[string]any{
			"username": "octocat",
			"repo":     "does-not-exist",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})

	t.Run("suggest_learning_path", func(t *testing.T) {
		res := callTool(t, s, "suggest_learning_path", map[string]any{
			"username": "octocat",
			"role":     "mlops engineer",
		})
		require.False(t, res.IsError)

		var report schema.LearningPathReport
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &report))
		assert.Equal(t, "MLOps Engineer", report.Role)
	})

	t.Run("suggest_learning_path unknown role", func(t *testing.T) {
		res := callTool(t, s, "suggest_learning_path", map[string]any{
			"username": "octocat",
			"role":     "wizard",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "role matching failed")
	})
}
