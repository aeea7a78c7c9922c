package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/uatpulse/core"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// requestConfig applies the per-call feed and platform arguments to a copy of the base config.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) *contract.Config {
	return h.baseCfg.WithFeed(request.GetString("feed", ""), request.GetString("platform", ""))
}

// toolContext keeps tool calls off the terminal and out of run history.
func toolContext(ctx context.Context) context.Context {
	return core.WithSkipHistory(core.WithSuppressHeader(ctx))
}

func jsonResult(data any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	m, err := core.GetDashboardResults(toolContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard failed: %v", err)), nil
	}
	return jsonResult(m), nil
}

func (h *toolHandler) handleGetCountdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	c, err := core.GetCountdownResults(toolContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("countdown failed: %v", err)), nil
	}
	return jsonResult(c), nil
}

func (h *toolHandler) handleGetPlannedSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	s, err := core.GetSeriesResults(toolContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("planned series failed: %v", err)), nil
	}
	return jsonResult(s), nil
}

func (h *toolHandler) handleGetBusinessDays(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	c, err := core.GetCalendarResults(toolContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("business days failed: %v", err)), nil
	}
	return jsonResult(c), nil
}

func (h *toolHandler) handleGetStatusReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	r, err := core.GetReportResults(toolContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status report failed: %v", err)), nil
	}
	return jsonResult(r), nil
}
