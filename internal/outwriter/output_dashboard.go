package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDashboardResults outputs the dashboard, dispatching based on the output format configured.
func PrintDashboardResults(m schema.DashboardViewModel, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, m,
		func(w *csv.Writer) error {
			return writeDashboardCSVRows(w, m, fmtFloat, intFmt)
		},
		[]string{"metric", "value"},
		func(w io.Writer) error {
			return writeDashboardTable(m, cfg, fmtFloat, intFmt, duration, w)
		})
}

// writeDashboardCSVRows flattens the dashboard into metric/value pairs.
func writeDashboardCSVRows(w *csv.Writer, m schema.DashboardViewModel, fmtFloat func(float64) string, intFmt string) error {
	rows := [][]string{
		{"last_update", m.LastUpdate},
		{"today", m.Today},
		{"timezone", m.Timezone},
		{"platform", m.Filters.Platform},
		{"in_scope", fmtFloat(m.KPIs.InScope)},
		{"executed_pct", fmtFloat(m.KPIs.ExecutedPct)},
		{"pass_pct", fmtFloat(m.KPIs.PassPct)},
		{"open_defects", fmt.Sprintf(intFmt, m.KPIs.OpenDefects)},
		{"blocker_critical", fmt.Sprintf(intFmt, m.KPIs.BlockerCritical)},
		{"day_index", fmt.Sprintf(intFmt, m.Planned.DayIndex)},
		{"planned_executed_pct", fmtFloat(m.Planned.PlannedExecutedPct)},
		{"planned_pass_pct", fmtFloat(m.Planned.PlannedPassPct)},
		{"delta_executed", fmt.Sprintf(intFmt, m.Planned.DeltaExecuted)},
		{"delta_pass", fmt.Sprintf(intFmt, m.Planned.DeltaPass)},
		{"executed_class", string(m.Planned.ExecutedClass)},
		{"pass_class", string(m.Planned.PassClass)},
		{"health", string(m.Health.Status)},
		{"health_source", string(m.Health.Source)},
		{"health_reason", m.Health.Reason},
		{"countdown_state", string(m.Countdown.State)},
		{"countdown_label", m.Countdown.Label},
		{"countdown_pct", fmtFloat(m.Countdown.Percent)},
		{"execution_trend", string(m.Trends.Execution)},
		{"defect_trend", string(m.Trends.Defects)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// writeDashboardTable generates and writes the human-readable dashboard.
func writeDashboardTable(m schema.DashboardViewModel, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	platform := m.Filters.Platform
	if platform == "" {
		platform = "All platforms"
	}
	if m.LastUpdate != "" {
		_, _ = fmt.Fprintf(writer, "📋 UAT status as of %s (%s)\n", m.LastUpdate, platform)
	} else {
		_, _ = fmt.Fprintf(writer, "📋 UAT status (%s)\n", platform)
	}
	_, _ = fmt.Fprintf(writer, "Health: %s (%s) %s\n", contract.GetHealthLabel(m.Health.Status, cfg.UseColors), m.Health.Source, m.Health.Reason)
	if m.Health.Comment != "" {
		_, _ = fmt.Fprintf(writer, "Comment: %s\n", m.Health.Comment)
	}
	_, _ = fmt.Fprintf(writer, "Countdown: %s\n\n", countdownLine(m.Countdown, fmtFloat))

	// KPI tiles
	kpis := tablewriter.NewWriter(writer)
	kpis.Header([]string{"In Scope", "Executed", "Pass", "Open Defects", "Blocker/Critical"})
	kpis.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := kpis.Bulk([][]string{{
		fmtFloat(m.KPIs.InScope),
		contract.GetToneLabel(fmtFloat(m.KPIs.ExecutedPct)+"%", m.KPIs.ExecutedTone, cfg.UseColors),
		contract.GetToneLabel(fmtFloat(m.KPIs.PassPct)+"%", m.KPIs.PassTone, cfg.UseColors),
		fmt.Sprintf(intFmt, m.KPIs.OpenDefects),
		fmt.Sprintf(intFmt, m.KPIs.BlockerCritical),
	}}); err != nil {
		return err
	}
	if err := kpis.Render(); err != nil {
		return err
	}

	// Plan comparison
	_, _ = fmt.Fprintf(writer, "\nPlan for business day %d\n", m.Planned.DayIndex)
	plan := tablewriter.NewWriter(writer)
	plan.Header([]string{"Metric", "Actual", "Planned", "Delta", "Status"})
	plan.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	planRows := [][]string{
		{
			"Executed",
			fmtFloat(m.Planned.ActualExecutedPct) + "%",
			fmtFloat(m.Planned.PlannedExecutedPct) + "%" + seriesMarker(m.Planned.ExecutedFromSeries),
			fmtDelta(m.Planned.DeltaExecuted),
			contract.GetStatusClassLabel(m.Planned.ExecutedClass, cfg.UseColors),
		},
		{
			"Pass",
			fmtFloat(m.Planned.ActualPassPct) + "%",
			fmtFloat(m.Planned.PlannedPassPct) + "%" + seriesMarker(m.Planned.PassFromSeries),
			fmtDelta(m.Planned.DeltaPass),
			contract.GetStatusClassLabel(m.Planned.PassClass, cfg.UseColors),
		},
	}
	if err := plan.Bulk(planRows); err != nil {
		return err
	}
	if err := plan.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(writer, "\nTrends: execution %s, defects %s\n", m.Trends.Execution, m.Trends.Defects)

	// Blocker/critical table
	_, _ = fmt.Fprintf(writer, "\nBlockers & criticals (%d)\n", len(m.Issues))
	if len(m.Issues) > 0 {
		if err := writeIssueTable(m.Issues, GetMaxTableTitleWidth(cfg), writer); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, "No Blocker/Critical reported currently.")
	}

	for _, kd := range m.KeyDates {
		_, _ = fmt.Fprintf(writer, "📅 %s: %s\n", kd.Date, kd.Label)
	}
	if m.InfoURL != "" {
		_, _ = fmt.Fprintf(writer, "ℹ️  %s\n", m.InfoURL)
	}

	_, _ = fmt.Fprintf(writer, "Dashboard computed in %v\n", duration)
	return nil
}

// writeIssueTable renders the blocker/critical issue rows.
func writeIssueTable(issues []schema.IssueRow, maxTitleWidth int, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"ID", "Priority", "Title", "Platform", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	data := make([][]string, 0, len(issues))
	for _, issue := range issues {
		data = append(data, []string{
			orDash(issue.ID),
			issue.Priority,
			orDash(truncateText(issue.Title, maxTitleWidth)),
			orDash(issue.Platform),
			orDash(issue.Status),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// countdownLine renders the countdown widget as a single line.
func countdownLine(c schema.Countdown, fmtFloat func(float64) string) string {
	line := c.Label
	if c.Subtitle != "" {
		line += " · " + c.Subtitle
	}
	if c.ShowPercent {
		line += " (" + fmtFloat(c.Percent) + "%)"
	}
	return line
}

func seriesMarker(fromSeries bool) string {
	if fromSeries {
		return "*"
	}
	return ""
}
