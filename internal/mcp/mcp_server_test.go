package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	mcp_internal "github.com/huangsam/uatpulse/internal/mcp"
	"github.com/huangsam/uatpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedJSON = `{
  "overview": {"lastUpdate": "2025-01-08 08:30"},
  "schedule": {"start": "2025-01-06", "end": "2025-01-17", "holidays": ["2025-01-13"]},
  "progressDaily": [
    {"date": "2025-01-06", "executedPct": 10, "passPct": 6},
    {"date": "2025-01-07", "executedPct": 20, "passPct": 12},
    {"date": "2025-01-08", "executedPct": 32, "passPct": 20}
  ],
  "issues": [
    {"id": "1", "title": "Login fails", "platform": "Web", "priority": "Blocker", "status": "Open"},
    {"id": "2", "title": "Crash on start", "platform": "App", "priority": "Critical", "status": "Open"}
  ]
}`

func newTestServerConfig(t *testing.T) *contract.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uat.json")
	require.NoError(t, os.WriteFile(path, []byte(feedJSON), 0o644))
	return &contract.Config{
		FeedPath:     path,
		Today:        time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		Timezone:     contract.DefaultTimezone,
		FetchTimeout: time.Second,
		Output:       schema.JSONOut,
	}
}

func callTool(t *testing.T, baseCfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseCfg, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerTools(t *testing.T) {
	baseCfg := newTestServerConfig(t)

	tests := []struct {
		name string
		args map[string]any
		key  string
	}{
		{"get_dashboard", nil, "kpis"},
		{"get_countdown", nil, "state"},
		{"get_planned_series", nil, "series"},
		{"get_business_days", nil, "days"},
		{"get_status_report", map[string]any{"platform": "Web"}, "markdown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, baseCfg, tt.name, tt.args)
			assert.False(t, res.IsError)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
			assert.Contains(t, decoded, tt.key)
		})
	}
}

func TestMCPServerDashboardPlatformFilter(t *testing.T) {
	baseCfg := newTestServerConfig(t)

	res := callTool(t, baseCfg, "get_dashboard", map[string]any{"platform": "App"})
	require.False(t, res.IsError)

	var m schema.DashboardViewModel
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &m))
	assert.Equal(t, "App", m.Filters.Platform)
	assert.Equal(t, 1, m.KPIs.BlockerCritical)
	assert.Equal(t, 3, m.Planned.DayIndex)
	assert.Empty(t, baseCfg.Platform, "base config is not modified")
}

func TestMCPServerHandlers_Errors(t *testing.T) {
	baseCfg := newTestServerConfig(t)

	t.Run("missing feed", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_countdown", map[string]any{"feed": filepath.Join(t.TempDir(), "missing.json")})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "countdown failed")
	})

	t.Run("inverted schedule", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"schedule": {"start": "2025-02-01", "end": "2025-01-01"}}`), 0o644))

		res := callTool(t, baseCfg, "get_dashboard", map[string]any{"feed": path})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid schedule")
	})
}
