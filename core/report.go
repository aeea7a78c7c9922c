package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/uatpulse/core/progress"
	"github.com/huangsam/uatpulse/schema"
)

var filenameReplacer = strings.NewReplacer(":", "_", " ", "_", "/", "_", "\\", "_", "\"", "_")

// ReportFilename returns the default download name for a daily status report.
func ReportFilename(lastUpdate string) string {
	return "UAT_Daily_Status_" + filenameReplacer.Replace(lastUpdate) + ".md"
}

// BuildStatusReport renders the daily status markdown for a computed dashboard.
func BuildStatusReport(m schema.DashboardViewModel) schema.StatusReport {
	platform := m.Filters.Platform
	if platform == "" {
		platform = "All platforms"
	}

	var b strings.Builder
	section := func(title string, lines ...string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**%s**\n", title)
		for _, line := range lines {
			if strings.HasPrefix(line, "  ") {
				fmt.Fprintf(&b, "%s\n", line) // nested detail
				continue
			}
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}

	section(fmt.Sprintf("Summary (%s)", platform),
		fmt.Sprintf("Executed %s, Pass %s. Open defects %d (%d blocker/critical).",
			fmtPct(m.KPIs.ExecutedPct), fmtPct(m.KPIs.PassPct), m.KPIs.OpenDefects, m.KPIs.BlockerCritical),
		fmt.Sprintf("Execution trending %s and defects %s.", m.Trends.Execution, m.Trends.Defects),
	)

	section("Highlights", highlightLines(m)...)
	section("Risks & Blockers", riskLines(m)...)
	section("Next Steps", nextStepLines(m)...)

	return schema.StatusReport{
		Filename: ReportFilename(m.LastUpdate),
		Markdown: b.String(),
	}
}

func highlightLines(m schema.DashboardViewModel) []string {
	health := fmt.Sprintf("Health %s (%s): %s.", m.Health.Label, m.Health.Source, m.Health.Reason)
	plan := fmt.Sprintf("Day %d plan: executed %s vs %s planned (%+dpp), pass %s vs %s planned (%+dpp).",
		m.Planned.DayIndex,
		fmtPct(m.Planned.ActualExecutedPct), fmtPct(m.Planned.PlannedExecutedPct), m.Planned.DeltaExecuted,
		fmtPct(m.Planned.ActualPassPct), fmtPct(m.Planned.PlannedPassPct), m.Planned.DeltaPass)
	lines := []string{health, plan}
	if m.Countdown.State != schema.UnconfiguredState {
		lines = append(lines, fmt.Sprintf("%s: %s.", m.Countdown.Title, m.Countdown.Label))
	}
	return lines
}

func riskLines(m schema.DashboardViewModel) []string {
	if len(m.Issues) == 0 {
		return []string{"No Blocker/Critical reported currently."}
	}
	lines := []string{"Active blockers/criticals require attention (see table below)."}
	for _, issue := range m.Issues {
		lines = append(lines, "  - "+describeIssue(issue))
	}
	return lines
}

func describeIssue(issue schema.IssueRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", issue.Priority)
	if issue.ID != "" {
		fmt.Fprintf(&b, " #%s", issue.ID)
	}
	if issue.Title != "" {
		fmt.Fprintf(&b, " %s", issue.Title)
	}
	var meta []string
	if issue.Platform != "" {
		meta = append(meta, issue.Platform)
	}
	if issue.Status != "" {
		meta = append(meta, issue.Status)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(meta, ", "))
	}
	return b.String()
}

func nextStepLines(m schema.DashboardViewModel) []string {
	var lines []string
	if len(m.Issues) > 0 {
		lines = append(lines, "Close remaining blocker/critical defects; re-test impacted flows.")
	}
	if m.Planned.DeltaExecuted < 0 {
		lines = append(lines, fmt.Sprintf("Recover execution pace (%dpp behind plan).", -m.Planned.DeltaExecuted))
	}
	if m.Planned.DeltaPass < 0 {
		lines = append(lines, fmt.Sprintf("Prioritize fix verification to lift the pass rate (%dpp behind plan).", -m.Planned.DeltaPass))
	}
	switch m.Health.Status {
	case schema.RedHealth:
		lines = append(lines, "Escalate RED status and agree a recovery plan.")
	case schema.AmberHealth:
		lines = append(lines, "Review AMBER drivers at the next stand-up.")
	}
	if len(lines) == 0 {
		lines = append(lines, "Keep the current pace; no change to Go/No-Go.")
	}
	return lines
}

func fmtPct(v float64) string {
	return fmt.Sprintf("%.0f%%", progress.Round(v))
}
