// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDashboard prints the dashboard view model using the configured output format.
func (ow *OutWriter) WriteDashboard(m schema.DashboardViewModel, cfg *contract.Config, duration time.Duration) error {
	return PrintDashboardResults(m, cfg, duration)
}

// WriteCountdown prints the countdown widget using the configured output format.
func (ow *OutWriter) WriteCountdown(c schema.Countdown, cfg *contract.Config, duration time.Duration) error {
	return PrintCountdownResults(c, cfg, duration)
}

// WriteSeries prints the planned-vs-actual series using the configured output format.
func (ow *OutWriter) WriteSeries(s schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(s, cfg, duration)
}

// WriteCalendar prints the business-day sequence using the configured output format.
func (ow *OutWriter) WriteCalendar(c schema.CalendarResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCalendarResults(c, cfg, duration)
}

// WriteReport prints the daily status report using the configured output format.
func (ow *OutWriter) WriteReport(r schema.StatusReport, cfg *contract.Config) error {
	return PrintStatusReport(r, cfg)
}

// WriteRuns prints recorded dashboard runs using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return PrintRunRecords(runs, cfg)
}

// GetMaxTableTitleWidth calculates the maximum width for issue titles in table output
// based on terminal width and table configuration.
func GetMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// ID + Priority + Platform + Status with borders/padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
