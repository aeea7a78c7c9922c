package core

import (
	"testing"

	"github.com/huangsam/uatpulse/core/calendar"
	"github.com/huangsam/uatpulse/core/progress"
	"github.com/huangsam/uatpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   schema.Trend
	}{
		{"empty", nil, schema.TrendSteady},
		{"single point", []float64{40}, schema.TrendSteady},
		{"two points up", []float64{10, 20}, schema.TrendUp},
		{"flat ends", []float64{10, 30, 10}, schema.TrendSteady},
		{"only last three count", []float64{90, 10, 5, 4}, schema.TrendDown},
		{"recovering", []float64{50, 10, 20, 30}, schema.TrendUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trendOf(tt.values))
		})
	}
}

func TestBuildSeriesFromSnapshots(t *testing.T) {
	f := &schema.Feed{
		PlannedSeries: schema.PlannedSeries{
			PlannedExecutedPct: []schema.Number{schema.Num(10), schema.Num(20), schema.Num(0), schema.Num(40)},
		},
		ProgressDaily: []schema.ProgressSnapshot{
			{Date: "2025-01-06", ExecutedPct: schema.Num(8), PassPct: schema.Num(5)},
			{Date: "2025-01-07", ExecutedPct: schema.Num(18)},
			{Date: "2025-01-08", ExecutedPct: schema.Num(25), PassPct: schema.Num(17)},
		},
	}

	points := BuildSeries(f, progress.ResolvePlan(f.Plan))
	require.Len(t, points, 3, "one point per snapshot")

	assert.Equal(t, 1, points[0].Index)
	assert.Equal(t, "2025-01-06", points[0].Date)
	assert.Equal(t, 10.0, points[0].PlannedExecutedPct)
	assert.Equal(t, 6.0, points[0].PlannedPassPct, "formula when no pass override")
	assert.Equal(t, 0.0, points[2].PlannedExecutedPct, "zero is a valid override")
	assert.Equal(t, schema.Num(0), points[1].PassPct, "missing actuals plot as zero")
}

func TestBuildSeriesFromPlanOnly(t *testing.T) {
	f := &schema.Feed{
		PlannedSeries: schema.PlannedSeries{
			PlannedExecutedPct: []schema.Number{schema.Num(10), {}},
			PlannedPassPct:     []schema.Number{schema.Num(5), schema.Num(9), schema.Num(12), {}},
		},
	}

	points := BuildSeries(f, progress.ResolvePlan(f.Plan))
	require.Len(t, points, 4, "longest override array")

	assert.Equal(t, 10.0, points[0].PlannedExecutedPct)
	assert.Equal(t, 20.0, points[1].PlannedExecutedPct, "null entry falls back to the formula")
	assert.Equal(t, 30.0, points[2].PlannedExecutedPct, "beyond the array falls back to the formula")
	assert.Equal(t, 12.0, points[2].PlannedPassPct)
	assert.Equal(t, 25.0, points[3].PlannedPassPct)
	assert.False(t, points[3].ExecutedPct.Set)
	assert.Empty(t, points[3].Date)
}

func TestBuildDefectSeries(t *testing.T) {
	f := &schema.Feed{DefectsDaily: []schema.DefectSnapshot{
		{Date: "2025-01-06", OpenDefects: schema.Num(5)},
		{Date: "2025-01-07"},
	}}
	points := BuildDefectSeries(f)
	require.Len(t, points, 2)
	assert.Equal(t, 5.0, points[0].OpenDefects)
	assert.Equal(t, 0.0, points[1].OpenDefects)
	assert.NotNil(t, BuildDefectSeries(&schema.Feed{}))
}

func TestBuildBusinessDays(t *testing.T) {
	cal, err := calendar.New(sampleFeed(t).Schedule, sampleOptions()...)
	require.NoError(t, err)

	days := BuildBusinessDays(cal)
	require.Len(t, days, 9)
	assert.Equal(t, schema.BusinessDay{Index: 1, Date: "2025-01-06", Label: "Jan 06", Weekday: "Mon"}, days[0])
	assert.Equal(t, "2025-01-14", days[5].Date, "holiday Monday is skipped")
	assert.Equal(t, "Tue", days[5].Weekday)
	assert.Equal(t, 9, days[8].Index)

	unconfigured, err := calendar.New(schema.Schedule{})
	require.NoError(t, err)
	assert.Empty(t, BuildBusinessDays(unconfigured))
}
