package progress

import (
	"fmt"
	"strings"

	"github.com/huangsam/uatpulse/schema"
)

// Blocker/critical limits for the automatic health rule.
const (
	GreenMaxBlockers = 2
	AmberMaxBlockers = 5
)

// ParseOverride normalizes the feed's health.status. An empty value means auto.
// The second result is false for values outside auto/green/amber/red.
func ParseOverride(raw string) (schema.HealthStatus, bool) {
	s := schema.HealthStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return schema.AutoHealth, true
	}
	if _, ok := schema.ValidHealthOverrides[s]; !ok {
		return schema.AutoHealth, false
	}
	return s, true
}

// AutoHealth applies the RAG rule. GREEN is checked first, then AMBER, else RED.
func AutoHealth(view schema.PlannedView, blockers int) (schema.HealthStatus, string) {
	exec, plannedExec := view.ActualExecutedPct, view.PlannedExecutedPct
	pass, plannedPass := view.ActualPassPct, view.PlannedPassPct

	if exec >= plannedExec && pass >= plannedPass && blockers <= GreenMaxBlockers {
		return schema.GreenHealth, fmt.Sprintf(
			"On plan: executed %s ≥ %s, pass %s ≥ %s, %d blocker/critical (≤%d)",
			pct(exec), pct(plannedExec), pct(pass), pct(plannedPass), blockers, GreenMaxBlockers)
	}

	tolerance := float64(slightlyBehindPP)
	if exec >= plannedExec-tolerance && pass >= plannedPass-tolerance && blockers <= AmberMaxBlockers {
		return schema.AmberHealth, fmt.Sprintf(
			"Within %dpp of plan: executed %s vs %s (%s), pass %s vs %s (%s), %d blocker/critical (≤%d)",
			slightlyBehindPP, pct(exec), pct(plannedExec), pp(view.DeltaExecuted),
			pct(pass), pct(plannedPass), pp(view.DeltaPass), blockers, AmberMaxBlockers)
	}

	var causes []string
	if exec < plannedExec-tolerance {
		causes = append(causes, fmt.Sprintf("executed %s vs %s (%s)", pct(exec), pct(plannedExec), pp(view.DeltaExecuted)))
	}
	if pass < plannedPass-tolerance {
		causes = append(causes, fmt.Sprintf("pass %s vs %s (%s)", pct(pass), pct(plannedPass), pp(view.DeltaPass)))
	}
	if blockers > AmberMaxBlockers {
		causes = append(causes, fmt.Sprintf("%d blocker/critical (>%d)", blockers, AmberMaxBlockers))
	}
	return schema.RedHealth, "Off plan: " + strings.Join(causes, ", ")
}

// EvaluateHealth returns the health badge. A manual green/amber/red replaces the
// automatic classification entirely.
func EvaluateHealth(view schema.PlannedView, blockers int, input schema.HealthInput) schema.HealthBadge {
	override, _ := ParseOverride(input.Status.String())
	comment := strings.TrimSpace(input.Comment.String())

	if override != schema.AutoHealth {
		reason := "Set manually"
		if comment != "" {
			reason += " · " + comment
		}
		return schema.HealthBadge{
			Status:  override,
			Source:  schema.ManualSource,
			Label:   override.Label(),
			Reason:  reason,
			Comment: comment,
		}
	}

	status, reason := AutoHealth(view, blockers)
	return schema.HealthBadge{
		Status:  status,
		Source:  schema.AutoSource,
		Label:   status.Label(),
		Reason:  reason,
		Comment: comment,
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.0f%%", Round(v))
}

func pp(v int) string {
	return fmt.Sprintf("%+dpp", v)
}
