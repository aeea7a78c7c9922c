// Package progress compares daily execution snapshots against the planned curves.
package progress

import (
	"math"

	"github.com/huangsam/uatpulse/core/calendar"
	"github.com/huangsam/uatpulse/schema"
)

// Plan defaults and limits.
const (
	DefaultExecDays   = 10
	DefaultPassDays   = 15
	DefaultPassTarget = 95
	PassCeiling       = 95.0

	// slightlyBehindPP is the tolerance in percentage points before a metric counts as materially behind.
	slightlyBehindPP = 5
)

// Plan holds the resolved plan parameters.
type Plan struct {
	ExecDays   float64
	PassDays   float64
	PassTarget float64
}

// ResolvePlan applies the defaults to the feed's plan block.
func ResolvePlan(spec schema.PlanSpec) Plan {
	return Plan{
		ExecDays:   spec.ExecDays.Or(DefaultExecDays),
		PassDays:   spec.PassDays.Or(DefaultPassDays),
		PassTarget: spec.PassTarget.Or(DefaultPassTarget),
	}
}

// Round rounds to the nearest integer with halves rounded up, so -2.5 becomes -2.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// TodayBusinessIndex returns the business-day index used for planned lookups today.
// Before the window opens it is 1 so planned previews render; after it closes it is
// the total. Without a configured window it falls back to the snapshot count.
func TodayBusinessIndex(cal *calendar.Calendar, snapshots int) int {
	if !cal.Configured() {
		return max(snapshots, 1)
	}
	today := cal.Today()
	switch {
	case today.Before(cal.Start()):
		return 1
	case today.After(cal.End()):
		return max(cal.Total(), 1)
	default:
		return max(cal.BusinessDayIndex(today), 1)
	}
}

// PlannedExecutedPct is the linear executed ramp from 0 to 100 over ExecDays.
func PlannedExecutedPct(dayIndex int, plan Plan) float64 {
	d := float64(dayIndex)
	switch {
	case dayIndex <= 0:
		return 0
	case d >= plan.ExecDays:
		return 100
	default:
		return Round(d / plan.ExecDays * 100)
	}
}

// PlannedPassPct ramps toward the pass target over PassDays and never exceeds 95.
func PlannedPassPct(dayIndex int, plan Plan) float64 {
	if dayIndex <= 0 {
		return 0
	}
	if plan.PassDays <= 0 {
		return Round(math.Min(plan.PassTarget, PassCeiling))
	}
	capped := math.Min(float64(dayIndex), plan.PassDays)
	pct := capped * (plan.PassTarget / 100 / plan.PassDays) * 100
	return Round(math.Min(pct, PassCeiling))
}

// resolve picks series[dayIndex-1] when the override covers the index and the entry is
// present. A present zero is a valid override.
func resolve(series []schema.Number, dayIndex int, formula func(int, Plan) float64, plan Plan) (float64, bool) {
	if dayIndex >= 1 && len(series) >= dayIndex {
		if v := series[dayIndex-1]; v.Set {
			return v.Value, true
		}
	}
	return formula(dayIndex, plan), false
}

// ResolvePlannedExecuted returns the planned executed % for a day and whether it came from the override.
func ResolvePlannedExecuted(series schema.PlannedSeries, dayIndex int, plan Plan) (float64, bool) {
	return resolve(series.PlannedExecutedPct, dayIndex, PlannedExecutedPct, plan)
}

// ResolvePlannedPass returns the planned pass % for a day and whether it came from the override.
func ResolvePlannedPass(series schema.PlannedSeries, dayIndex int, plan Plan) (float64, bool) {
	return resolve(series.PlannedPassPct, dayIndex, PlannedPassPct, plan)
}

// Delta is actual minus planned, rounded to whole percentage points.
func Delta(actual, planned float64) int {
	return int(Round(actual - planned))
}

// ClassifyStatus classifies a metric by its rounded delta against plan.
func ClassifyStatus(actual, planned float64) schema.StatusClass {
	delta := Delta(actual, planned)
	switch {
	case delta >= 0:
		return schema.OnPlanClass
	case delta >= -slightlyBehindPP:
		return schema.SlightlyBehindClass
	default:
		return schema.BehindClass
	}
}

// KPITone is the absolute color band of a KPI percentage.
func KPITone(v float64) schema.Tone {
	switch {
	case v >= 90:
		return schema.GoodTone
	case v >= 70:
		return schema.WarnTone
	default:
		return schema.BadTone
	}
}

// Latest returns the last snapshot, or a zero snapshot when there are none.
func Latest(snapshots []schema.ProgressSnapshot) (schema.ProgressSnapshot, bool) {
	if len(snapshots) == 0 {
		return schema.ProgressSnapshot{}, false
	}
	return snapshots[len(snapshots)-1], true
}

// Evaluate computes the planned view for today.
func Evaluate(cal *calendar.Calendar, plan Plan, series schema.PlannedSeries, snapshots []schema.ProgressSnapshot) schema.PlannedView {
	dayIndex := TodayBusinessIndex(cal, len(snapshots))
	plannedExec, execFromSeries := ResolvePlannedExecuted(series, dayIndex, plan)
	plannedPass, passFromSeries := ResolvePlannedPass(series, dayIndex, plan)

	last, _ := Latest(snapshots)
	actualExec := last.ExecutedPct.Float()
	actualPass := last.PassPct.Float()

	return schema.PlannedView{
		DayIndex:           dayIndex,
		PlannedExecutedPct: plannedExec,
		PlannedPassPct:     plannedPass,
		ExecutedFromSeries: execFromSeries,
		PassFromSeries:     passFromSeries,
		ActualExecutedPct:  actualExec,
		ActualPassPct:      actualPass,
		DeltaExecuted:      Delta(actualExec, plannedExec),
		DeltaPass:          Delta(actualPass, plannedPass),
		ExecutedClass:      ClassifyStatus(actualExec, plannedExec),
		PassClass:          ClassifyStatus(actualPass, plannedPass),
	}
}
