// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the UAT Pulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"UAT Pulse Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	feedArg := mcp.WithString("feed", mcp.Description("Feed location: file path, http(s) URL or s3://bucket/key. Defaults to the configured feed."))
	platformArg := mcp.WithString("platform", mcp.Description("Restrict issue counts and tables to one platform (exact match). Defaults to all platforms."))

	// --- 1. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Compute the UAT dashboard: KPIs, planned vs actual, RAG health, countdown, trends and blocker/critical issues."),
		feedArg,
		platformArg,
	), h.handleGetDashboard)

	// --- 2. Tool: get_countdown ---
	s.AddTool(mcp.NewTool("get_countdown",
		mcp.WithDescription("Derive the UAT countdown widget state (before-window, active, paused, after-window)."),
		feedArg,
	), h.handleGetCountdown)

	// --- 3. Tool: get_planned_series ---
	s.AddTool(mcp.NewTool("get_planned_series",
		mcp.WithDescription("Return the per-business-day planned vs actual execution and pass percentages, plus open defects."),
		feedArg,
	), h.handleGetPlannedSeries)

	// --- 4. Tool: get_business_days ---
	s.AddTool(mcp.NewTool("get_business_days",
		mcp.WithDescription("List the business days of the UAT window with their 1-based indices, skipping weekends and holidays."),
		feedArg,
	), h.handleGetBusinessDays)

	// --- 5. Tool: get_status_report ---
	s.AddTool(mcp.NewTool("get_status_report",
		mcp.WithDescription("Generate the markdown daily status report and its default download filename."),
		feedArg,
		platformArg,
	), h.handleGetStatusReport)

	return s
}

// StartMCPServer starts the UAT Pulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
