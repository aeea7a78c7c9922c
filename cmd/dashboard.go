package cmd

import (
	"github.com/huangsam/uatpulse/core"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/spf13/cobra"
)

// dashboardCmd computes the full dashboard.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard [feed]",
	Short: "Show KPIs, planned vs actual, RAG health, countdown and blockers.",
	Long: `Load the UAT status feed and compute the complete dashboard.

The dashboard is always recomputed from the latest feed:
- KPI tiles for in-scope cases, executed %, pass %, open defects and blockers/criticals
- Today's planned executed and pass % on the business-day curve, with deltas in pp
- RAG health, either set manually in the feed or derived from the deltas and blockers
- The business-day countdown for the UAT window
- Short-term execution and defect trends
- Blocker and critical issues, optionally filtered by platform

The feed may be a local file, an http(s) URL or an s3://bucket/key location.
Remote feeds fall back to the last cached copy when the network is unavailable.

Examples:
  # Dashboard for the feed in the current directory
  uatpulse dashboard

  # Only the Web platform, pinned to a given day
  uatpulse dashboard uat.json --platform Web --today 2025-01-08

  # Fetch the feed over HTTPS and write JSON
  uatpulse dashboard https://qa.example.com/uat.json --output json --output-file dashboard.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute dashboard", err)
		}
	},
}

// countdownCmd shows the countdown widget only.
var countdownCmd = &cobra.Command{
	Use:   "countdown [feed]",
	Short: "Show the UAT business-day countdown.",
	Long: `Derive the countdown widget from the feed's schedule.

States:
  before-window - business days until UAT starts
  active        - day N of the UAT window
  paused        - today is a weekend or holiday; shows the next business day
  after-window  - UAT has finished
  unconfigured  - the feed has no schedule

Examples:
  # Countdown for the feed in the current directory
  uatpulse countdown

  # Countdown for a Saturday in the window
  uatpulse countdown uat.json --today 2025-01-11`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCountdown(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot derive countdown", err)
		}
	},
}

// seriesCmd shows the planned-vs-actual series.
var seriesCmd = &cobra.Command{
	Use:   "series [feed]",
	Short: "Show planned vs actual execution and pass % per business day.",
	Long: `Build the per-business-day chart data: actual executed and pass % from the
progress snapshots next to the planned values, plus the open defect series.

Planned values come from the feed's planned series when present for that day,
otherwise from the plan: executed ramps linearly to 100% over execDays and pass
ramps toward passTarget over passDays, never above 95%.

Examples:
  # Print the series table
  uatpulse series

  # Export for a spreadsheet
  uatpulse series uat.json --output csv --output-file series.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build series", err)
		}
	},
}

// calendarCmd shows the business-day sequence.
var calendarCmd = &cobra.Command{
	Use:   "calendar [feed]",
	Short: "List the business days of the UAT window.",
	Long: `List every business day between the schedule's start and end, skipping
weekends and configured holidays, with its 1-based index.

Examples:
  # Business days of the configured window
  uatpulse calendar

  # Use another timezone when the feed has none
  uatpulse calendar uat.json --timezone America/New_York`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCalendar(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build calendar", err)
		}
	},
}

// reportCmd generates the markdown daily status.
var reportCmd = &cobra.Command{
	Use:   "report [feed]",
	Short: "Generate the markdown daily status report.",
	Long: `Generate the daily status report with Summary, Highlights, Risks & Blockers
and Next Steps sections.

With --save the report is written to UAT_Daily_Status_<last update>.md in the
current directory, unless --output-file names another destination.

Examples:
  # Print the report
  uatpulse report

  # Save the Web report under its default filename
  uatpulse report uat.json --platform Web --save`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot generate report", err)
		}
	},
}
