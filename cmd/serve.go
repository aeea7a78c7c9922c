package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/uatpulse/core"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/server"
	"github.com/spf13/cobra"
)

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
}

// serveCmd starts the HTTP JSON API.
var serveCmd = &cobra.Command{
	Use:   "serve [feed]",
	Short: "Serve the dashboard as a read-only HTTP JSON API.",
	Long: `Start an HTTP server that recomputes the dashboard from the feed on every request.

Routes:
  GET /health
  GET /api/dashboard?platform=
  GET /api/countdown
  GET /api/series
  GET /api/calendar
  GET /api/report?platform=    (text/markdown)

Feed failures answer 502 and invalid schedules answer 422. CORS is enabled for GET.
The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  # Serve the local feed on :8080
  uatpulse serve

  # Serve an S3 feed on another port
  uatpulse serve s3://qa-reports/uat.json --addr :9090`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signalContext()
		defer stop()
		if err := server.Run(ctx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run HTTP server", err)
		}
	},
}

// watchCmd recomputes the dashboard on a schedule.
var watchCmd = &cobra.Command{
	Use:   "watch [feed]",
	Short: "Recompute the dashboard on a cron schedule and record each run.",
	Long: `Recompute the dashboard immediately and then on every --schedule tick,
logging the health and deltas and appending a row to the run history when a
history backend is configured.

The schedule accepts 5 or 6 field cron specs and descriptors such as @hourly or
@every 15m. A tick is skipped while the previous one is still running.

Examples:
  # Every 15 minutes with SQLite history
  uatpulse watch https://qa.example.com/uat.json --history-backend sqlite

  # Weekdays at 09:00
  uatpulse watch uat.json --schedule "0 9 * * MON-FRI"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signalContext()
		defer stop()
		if err := core.ExecuteWatch(ctx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run watch", err)
		}
	},
}
