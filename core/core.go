// Package core has core logic for loading the feed and computing the dashboard.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/uatpulse/core/calendar"
	"github.com/huangsam/uatpulse/core/countdown"
	"github.com/huangsam/uatpulse/core/progress"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/feed"
	"github.com/huangsam/uatpulse/internal/outwriter"
	"github.com/huangsam/uatpulse/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// LoadFeed fetches and decodes the configured feed. Remote feeds fall back to the
// feed cache when the network is unavailable.
func LoadFeed(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Feed, string, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetFeedStore()
	}
	f, source, err := feed.Fetch(ctx, cfg.FeedPath, cfg.FetchTimeout, store)
	if err != nil {
		return nil, "", fmt.Errorf("cannot load feed %q: %w", cfg.FeedPath, err)
	}
	return f, source, nil
}

// CalendarOptions translates the --timezone and --today settings into calendar options.
func CalendarOptions(cfg *contract.Config) []calendar.Option {
	opts := []calendar.Option{calendar.WithFallbackTimezone(cfg.Timezone)}
	if !cfg.Today.IsZero() {
		opts = append(opts, calendar.WithToday(cfg.Today))
	}
	return opts
}

// loadCalendar loads the feed and builds its business calendar.
func loadCalendar(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Feed, *calendar.Calendar, error) {
	f, source, err := LoadFeed(ctx, cfg, mgr)
	if err != nil {
		return nil, nil, err
	}
	logFeedHeader(ctx, cfg, source)
	cal, err := calendar.New(f.Schedule, CalendarOptions(cfg)...)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid schedule: %w", err)
	}
	return f, cal, nil
}

// GetDashboardResults loads the feed and computes the dashboard for cfg.Platform.
// The run is recorded in history unless the context says otherwise.
func GetDashboardResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.DashboardViewModel, error) {
	f, source, err := LoadFeed(ctx, cfg, mgr)
	if err != nil {
		return schema.DashboardViewModel{}, err
	}
	logFeedHeader(ctx, cfg, source)
	m, err := ComputeDashboardModel(f, schema.Filters{Platform: cfg.Platform}, CalendarOptions(cfg)...)
	if err != nil {
		return schema.DashboardViewModel{}, err
	}
	recordRun(ctx, mgr, source, m)
	return m, nil
}

// GetCountdownResults loads the feed and derives the countdown widget.
func GetCountdownResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.Countdown, error) {
	_, cal, err := loadCalendar(ctx, cfg, mgr)
	if err != nil {
		return schema.Countdown{}, err
	}
	return countdown.Derive(cal), nil
}

// GetSeriesResults loads the feed and builds the planned-vs-actual series.
func GetSeriesResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SeriesResult, error) {
	f, cal, err := loadCalendar(ctx, cfg, mgr)
	if err != nil {
		return schema.SeriesResult{}, err
	}
	return schema.SeriesResult{
		DayIndex: progress.TodayBusinessIndex(cal, len(f.ProgressDaily)),
		Series:   BuildSeries(f, progress.ResolvePlan(f.Plan)),
		Defects:  BuildDefectSeries(f),
	}, nil
}

// GetCalendarResults loads the feed and lists the business days of its window.
func GetCalendarResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.CalendarResult, error) {
	f, cal, err := loadCalendar(ctx, cfg, mgr)
	if err != nil {
		return schema.CalendarResult{}, err
	}
	today := cal.Today()
	result := schema.CalendarResult{
		Configured: cal.Configured(),
		Timezone:   cal.Location().String(),
		Start:      calendar.FormatISO(cal.Start()),
		End:        calendar.FormatISO(cal.End()),
		Today:      calendar.FormatISO(today),
		TodayIndex: progress.TodayBusinessIndex(cal, len(f.ProgressDaily)),
		Total:      cal.Total(),
		Days:       BuildBusinessDays(cal),
	}
	if next, err := cal.NextBusinessDayAfter(today); err == nil {
		result.NextBusinessDay = calendar.FormatISO(next)
	}
	return result, nil
}

// GetReportResults computes the dashboard and renders the daily status report.
func GetReportResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.StatusReport, error) {
	m, err := GetDashboardResults(ctx, cfg, mgr)
	if err != nil {
		return schema.StatusReport{}, err
	}
	return BuildStatusReport(m), nil
}

// ExecuteDashboard computes the dashboard and prints it.
// It serves as the main entry point for the 'dashboard' command.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	m, err := GetDashboardResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDashboard(m, cfg, time.Since(start))
}

// ExecuteCountdown prints the countdown widget state.
func ExecuteCountdown(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	c, err := GetCountdownResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCountdown(c, cfg, time.Since(start))
}

// ExecuteSeries prints the planned-vs-actual series.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	s, err := GetSeriesResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeries(s, cfg, time.Since(start))
}

// ExecuteCalendar prints the business-day sequence.
func ExecuteCalendar(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	c, err := GetCalendarResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCalendar(c, cfg, time.Since(start))
}

// ExecuteReport prints the daily status report. With --save and no --output-file the
// report is written to its default download filename.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, err := GetReportResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if cfg.Save && cfg.OutputFile == "" {
		cfg = cfg.Clone()
		cfg.OutputFile = report.Filename
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg)
}

// logFeedHeader prints where the data came from, unless suppressed.
func logFeedHeader(ctx context.Context, cfg *contract.Config, source string) {
	if shouldSuppressHeader(ctx) || cfg.Output != schema.TextOut {
		return
	}
	platform := cfg.Platform
	if platform == "" {
		platform = "all platforms"
	}
	fmt.Fprintf(os.Stderr, "📡 Feed: %s (%s)\n", source, platform)
}
