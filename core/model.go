package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/uatpulse/core/calendar"
	"github.com/huangsam/uatpulse/core/countdown"
	"github.com/huangsam/uatpulse/core/progress"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
)

// ComputeDashboardModel derives the complete dashboard from a feed.
// The result depends only on the feed, the filters and the calendar's civil today.
func ComputeDashboardModel(feed *schema.Feed, filters schema.Filters, opts ...calendar.Option) (schema.DashboardViewModel, error) {
	if feed == nil {
		feed = &schema.Feed{}
	}
	cal, err := calendar.New(feed.Schedule, opts...)
	if err != nil {
		return schema.DashboardViewModel{}, fmt.Errorf("invalid schedule: %w", err)
	}
	return computeWithCalendar(feed, filters, cal), nil
}

// computeWithCalendar assembles the view model once the calendar is known to be valid.
func computeWithCalendar(feed *schema.Feed, filters schema.Filters, cal *calendar.Calendar) schema.DashboardViewModel {
	plan := progress.ResolvePlan(feed.Plan)
	kpis := ComputeKPIs(feed, filters.Platform)
	planned := progress.Evaluate(cal, plan, feed.PlannedSeries, feed.ProgressDaily)

	if _, ok := progress.ParseOverride(feed.Health.Status.String()); !ok {
		logger := contract.Logger("core")
		logger.Warn().Str("status", feed.Health.Status.String()).Msg("Ignoring unknown health override")
	}

	keyDates := feed.KeyDates
	if keyDates == nil {
		keyDates = []schema.KeyDate{}
	}

	return schema.DashboardViewModel{
		LastUpdate: feed.Overview.LastUpdate.String(),
		ComputedAt: cal.Now(),
		Today:      calendar.FormatISO(cal.Today()),
		Timezone:   cal.Location().String(),
		Filters:    filters,
		Platforms:  Platforms(feed.Issues),
		KPIs:       kpis,
		Planned:    planned,
		Health:     progress.EvaluateHealth(planned, kpis.BlockerCritical, feed.Health),
		Countdown:  countdown.Derive(cal),
		Trends:     ComputeTrends(feed),
		Issues:     FilterIssues(feed.Issues, filters.Platform),
		Series:     BuildSeries(feed, plan),
		Defects:    BuildDefectSeries(feed),
		KeyDates:   keyDates,
		InfoURL:    feed.InfoURL.String(),
	}
}

// IsValidationError reports whether err comes from an unusable schedule rather than
// from loading the feed.
func IsValidationError(err error) bool {
	return errors.Is(err, calendar.ErrInvertedSchedule) ||
		errors.Is(err, calendar.ErrInvalidDate) ||
		errors.Is(err, calendar.ErrUnknownTimezone)
}
