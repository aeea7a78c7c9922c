package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() schema.DashboardViewModel {
	return schema.DashboardViewModel{
		LastUpdate: "2025-01-08 08:30",
		Today:      "2025-01-08",
		Timezone:   "Europe/Berlin",
		Platforms:  []string{"App", "BOSS", "Web"},
		KPIs: schema.KPIs{
			InScope: 120, ExecutedPct: 32, PassPct: 20, OpenDefects: 3, BlockerCritical: 2,
			ExecutedTone: schema.BadTone, PassTone: schema.BadTone,
		},
		Planned: schema.PlannedView{
			DayIndex: 3, PlannedExecutedPct: 30, PlannedPassPct: 19,
			ActualExecutedPct: 32, ActualPassPct: 20, DeltaExecuted: 2, DeltaPass: 1,
			ExecutedClass: schema.OnPlanClass, PassClass: schema.OnPlanClass,
		},
		Health: schema.HealthBadge{
			Status: schema.GreenHealth, Source: schema.AutoSource, Label: "GREEN", Reason: "On plan",
		},
		Countdown: schema.Countdown{
			State: schema.ActiveState, Title: "UAT in progress", Label: "Day 3 of 9",
			Compact: "Day 3/9", Percent: 33, ShowPercent: true, DayIndex: 3, Total: 9,
		},
		Trends: schema.Trends{Execution: schema.TrendUp, Defects: schema.TrendDown},
		Issues: []schema.IssueRow{
			{ID: "1", Title: "Login fails on Safari", Platform: "Web", Priority: "Blocker", Status: "Open"},
			{ID: "3", Title: "Totals rounding", Platform: "Web", Priority: "Critical"},
		},
		KeyDates: []schema.KeyDate{{Date: "2025-01-17", Label: "Go/No-Go"}},
	}
}

func textConfig() *contract.Config {
	return &contract.Config{Output: schema.TextOut, Width: 120}
}

func TestWriteDashboardTable(t *testing.T) {
	fmtFloat, intFmt := createFormatters(0)
	var buf bytes.Buffer
	require.NoError(t, writeDashboardTable(sampleModel(), textConfig(), fmtFloat, intFmt, time.Millisecond, &buf))

	out := buf.String()
	for _, s := range []string{
		"UAT status as of 2025-01-08 08:30 (All platforms)",
		"Health: GREEN (auto) On plan",
		"Countdown: Day 3 of 9 (33%)",
		"Plan for business day 3",
		"+2pp",
		"Trends: execution up, defects down",
		"Blockers & criticals (2)",
		"Login fails on Safari",
		"2025-01-17: Go/No-Go",
		"Dashboard computed in",
	} {
		assert.Contains(t, out, s)
	}
}

func TestWriteDashboardTableNoIssues(t *testing.T) {
	m := sampleModel()
	m.Issues = []schema.IssueRow{}
	m.Filters.Platform = "App"
	fmtFloat, intFmt := createFormatters(0)

	var buf bytes.Buffer
	require.NoError(t, writeDashboardTable(m, textConfig(), fmtFloat, intFmt, time.Millisecond, &buf))
	assert.Contains(t, buf.String(), "(App)")
	assert.Contains(t, buf.String(), "No Blocker/Critical reported currently.")
}

func TestWriteDashboardCSVRows(t *testing.T) {
	fmtFloat, intFmt := createFormatters(0)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeDashboardCSVRows(w, sampleModel(), fmtFloat, intFmt))
	w.Flush()

	out := buf.String()
	assert.Contains(t, out, "executed_pct,32\n")
	assert.Contains(t, out, "delta_executed,2\n")
	assert.Contains(t, out, "health,green\n")
	assert.Contains(t, out, "countdown_state,active\n")
}

func TestPrintDashboardResultsJSON(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "dashboard.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outFile}
	require.NoError(t, NewOutWriter().WriteDashboard(sampleModel(), cfg, time.Millisecond))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	for _, key := range []string{"kpis", "planned", "health", "countdown", "issues", "key_dates"} {
		assert.Contains(t, decoded, key)
	}
}

func TestWriteCountdownText(t *testing.T) {
	fmtFloat, _ := createFormatters(0)
	tests := []struct {
		name     string
		c        schema.Countdown
		contains []string
	}{
		{
			name:     "active",
			c:        sampleModel().Countdown,
			contains: []string{"⏳ UAT in progress", "Day 3 of 9", "[██████░░░░░░░░░░░░░░] 33%"},
		},
		{
			name: "paused",
			c: schema.Countdown{
				State: schema.PausedState, Title: "UAT paused", Label: "Weekend or holiday",
				Subtitle: "Resumes Tue, Jan 14", ResumesOn: "2025-01-14",
			},
			contains: []string{"UAT paused", "Resumes Tue, Jan 14"},
		},
		{
			name:     "unconfigured",
			c:        schema.Countdown{State: schema.UnconfiguredState, Title: "UAT schedule not configured"},
			contains: []string{"❔ UAT schedule not configured"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeCountdownText(tt.c, fmtFloat, time.Millisecond, &buf))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░]", progressBar(0, 4))
	assert.Equal(t, "[██░░]", progressBar(50, 4))
	assert.Equal(t, "[████]", progressBar(100, 4))
	assert.Equal(t, "[████]", progressBar(150, 4))
	assert.Equal(t, "[░░░░]", progressBar(-5, 4))
}

func TestPrintCountdownResultsCSV(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "countdown.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outFile}
	require.NoError(t, PrintCountdownResults(sampleModel().Countdown, cfg, time.Millisecond))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "state,label"))
	assert.True(t, strings.HasPrefix(lines[1], "active,Day 3 of 9,Day 3/9,3,9,33"))
}

func sampleSeries() schema.SeriesResult {
	return schema.SeriesResult{
		DayIndex: 2,
		Series: []schema.SeriesPoint{
			{Index: 1, Date: "2025-01-06", ExecutedPct: schema.Num(10), PassPct: schema.Num(6), PlannedExecutedPct: 10, PlannedPassPct: 6.33},
			{Index: 2, Date: "2025-01-07", ExecutedPct: schema.Num(20), PassPct: schema.Num(12), PlannedExecutedPct: 20, PlannedPassPct: 12.67},
			{Index: 3, Date: "2025-01-08", PlannedExecutedPct: 30, PlannedPassPct: 19},
		},
		Defects: []schema.DefectPoint{{Date: "2025-01-06", OpenDefects: 5}},
	}
}

func TestWriteSeriesTable(t *testing.T) {
	fmtFloat, intFmt := createFormatters(0)
	var buf bytes.Buffer
	require.NoError(t, writeSeriesTable(sampleSeries(), fmtFloat, intFmt, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "▶ 2")
	assert.Contains(t, out, "Open defects")
	assert.Contains(t, out, "Showing 3 business days (today is day 2)")
}

func TestPrintSeriesResultsCSV(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "series.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outFile, Precision: 1}
	require.NoError(t, PrintSeriesResults(sampleSeries(), cfg, time.Millisecond))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "index,date,executed_pct,planned_executed_pct,pass_pct,planned_pass_pct", lines[0])
	assert.Equal(t, "1,2025-01-06,10.0,10.0,6.0,6.3", lines[1])
	assert.Equal(t, "3,2025-01-08,-,30.0,-,19.0", lines[3], "days without actuals render as a dash")
}

func TestWriteCalendarTable(t *testing.T) {
	_, intFmt := createFormatters(0)
	c := schema.CalendarResult{
		Configured: true, Timezone: "Europe/Berlin", Start: "2025-01-06", End: "2025-01-17",
		Today: "2025-01-07", TodayIndex: 2, NextBusinessDay: "2025-01-08", Total: 2,
		Days: []schema.BusinessDay{
			{Index: 1, Date: "2025-01-06", Label: "Jan 06", Weekday: "Mon"},
			{Index: 2, Date: "2025-01-07", Label: "Jan 07", Weekday: "Tue"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCalendarTable(c, intFmt, time.Millisecond, &buf))
	out := buf.String()
	assert.Contains(t, out, "UAT window 2025-01-06 to 2025-01-17 (Europe/Berlin)")
	assert.Contains(t, out, "▶ 2")
	assert.Contains(t, out, "Today 2025-01-07 is business day 2 of 2")
	assert.Contains(t, out, "Next business day: 2025-01-08")

	buf.Reset()
	require.NoError(t, writeCalendarTable(schema.CalendarResult{Timezone: "UTC", Today: "2025-01-07"}, intFmt, time.Millisecond, &buf))
	assert.Contains(t, buf.String(), "No UAT schedule configured")
}

func TestPrintStatusReport(t *testing.T) {
	r := schema.StatusReport{
		Filename: "UAT_Daily_Status_2025-01-08_08_30.md",
		Markdown: "**Summary (All platforms)**\n• Executed 32%",
	}

	dir := t.TempDir()
	textFile := filepath.Join(dir, r.Filename)
	require.NoError(t, NewOutWriter().WriteReport(r, &contract.Config{Output: schema.TextOut, OutputFile: textFile}))
	content, err := os.ReadFile(textFile)
	require.NoError(t, err)
	assert.Equal(t, r.Markdown+"\n", string(content))

	jsonFile := filepath.Join(dir, "report.json")
	require.NoError(t, NewOutWriter().WriteReport(r, &contract.Config{Output: schema.JSONOut, OutputFile: jsonFile}))
	content, err = os.ReadFile(jsonFile)
	require.NoError(t, err)
	var decoded schema.StatusReport
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, r, decoded)
}

func TestPrintRunRecords(t *testing.T) {
	runs := []schema.RunRecord{
		{
			RunID: 2, RunUUID: "b", ComputedAt: time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC),
			Platform: "Web", DayIndex: 3, ExecutedPct: 32, DeltaExecuted: 2, PassPct: 20, DeltaPass: 1,
			BlockerCritical: 2, Health: "green", HealthSource: "auto", CountdownState: "active",
		},
		{
			RunID: 1, RunUUID: "a", ComputedAt: time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC),
			DayIndex: 2, ExecutedPct: 15, DeltaExecuted: -5, Health: "amber",
		},
	}

	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(0)
	require.NoError(t, writeRunsTable(runs, textConfig(), fmtFloat, intFmt, &buf))
	out := buf.String()
	assert.Contains(t, out, "GREEN")
	assert.Contains(t, out, "AMBER")
	assert.Contains(t, out, "-5pp")
	assert.Contains(t, out, "Showing 2 recorded runs")

	buf.Reset()
	require.NoError(t, writeRunsTable(nil, textConfig(), fmtFloat, intFmt, &buf))
	assert.Contains(t, buf.String(), "No dashboard runs recorded yet")

	outFile := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, NewOutWriter().WriteRuns(runs, &contract.Config{Output: schema.CSVOut, OutputFile: outFile}))
	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "2025-01-08T09:00:00Z")
}

func TestGetMaxTableTitleWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{40, 15},
		{100, 50},
		{200, 70},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetMaxTableTitleWidth(&contract.Config{Width: tt.width}))
	}
}
