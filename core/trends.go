package core

import "github.com/huangsam/uatpulse/schema"

// trendWindow is the number of most recent points compared by a trend.
const trendWindow = 3

// ComputeTrends compares the first and last of the most recent points of each series.
func ComputeTrends(feed *schema.Feed) schema.Trends {
	executed := make([]float64, 0, len(feed.ProgressDaily))
	for _, p := range feed.ProgressDaily {
		executed = append(executed, p.ExecutedPct.Float())
	}
	defects := make([]float64, 0, len(feed.DefectsDaily))
	for _, d := range feed.DefectsDaily {
		defects = append(defects, d.OpenDefects.Float())
	}
	return schema.Trends{
		Execution: trendOf(executed),
		Defects:   trendOf(defects),
	}
}

// trendOf returns the direction of the last trendWindow values.
// Fewer than two points are steady.
func trendOf(values []float64) schema.Trend {
	if len(values) > trendWindow {
		values = values[len(values)-trendWindow:]
	}
	if len(values) < 2 {
		return schema.TrendSteady
	}
	d := values[len(values)-1] - values[0]
	switch {
	case d > 0:
		return schema.TrendUp
	case d < 0:
		return schema.TrendDown
	default:
		return schema.TrendSteady
	}
}
