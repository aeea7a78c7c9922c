package core

import (
	"github.com/huangsam/uatpulse/core/calendar"
	"github.com/huangsam/uatpulse/core/progress"
	"github.com/huangsam/uatpulse/schema"
)

// BuildSeries aligns the planned curves with the reported snapshots, one point per
// business day. Without snapshots the longer override array sets the length.
func BuildSeries(feed *schema.Feed, plan progress.Plan) []schema.SeriesPoint {
	n := len(feed.ProgressDaily)
	if n == 0 {
		n = max(len(feed.PlannedSeries.PlannedExecutedPct), len(feed.PlannedSeries.PlannedPassPct))
	}

	points := make([]schema.SeriesPoint, 0, n)
	for i := 1; i <= n; i++ {
		plannedExec, _ := progress.ResolvePlannedExecuted(feed.PlannedSeries, i, plan)
		plannedPass, _ := progress.ResolvePlannedPass(feed.PlannedSeries, i, plan)
		point := schema.SeriesPoint{
			Index:              i,
			PlannedExecutedPct: plannedExec,
			PlannedPassPct:     plannedPass,
		}
		if i <= len(feed.ProgressDaily) {
			snap := feed.ProgressDaily[i-1]
			point.Date = snap.Date.String()
			point.ExecutedPct = schema.Num(snap.ExecutedPct.Float())
			point.PassPct = schema.Num(snap.PassPct.Float())
		}
		points = append(points, point)
	}
	return points
}

// BuildDefectSeries returns the open-defect chart points.
func BuildDefectSeries(feed *schema.Feed) []schema.DefectPoint {
	points := make([]schema.DefectPoint, 0, len(feed.DefectsDaily))
	for _, d := range feed.DefectsDaily {
		points = append(points, schema.DefectPoint{
			Date:        d.Date.String(),
			OpenDefects: d.OpenDefects.Float(),
		})
	}
	return points
}

// BuildBusinessDays lists the calendar's business days with their 1-based index.
func BuildBusinessDays(cal *calendar.Calendar) []schema.BusinessDay {
	days := cal.BusinessDays()
	out := make([]schema.BusinessDay, 0, len(days))
	for i, d := range days {
		out = append(out, schema.BusinessDay{
			Index:   i + 1,
			Date:    calendar.FormatISO(d),
			Label:   cal.FormatDay(d),
			Weekday: d.Format("Mon"),
		})
	}
	return out
}
