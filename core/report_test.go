package core

import (
	"strings"
	"testing"

	"github.com/huangsam/uatpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFilename(t *testing.T) {
	tests := []struct {
		lastUpdate string
		want       string
	}{
		{"2025-01-08 08:30", "UAT_Daily_Status_2025-01-08_08_30.md"},
		{"", "UAT_Daily_Status_.md"},
		{"Jan 8: noon", "UAT_Daily_Status_Jan_8__noon.md"},
		{"10/01/2025 10:00", "UAT_Daily_Status_10_01_2025_10_00.md"},
		{`a\b"c"`, "UAT_Daily_Status_a_b_c_.md"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ReportFilename(tt.lastUpdate))
		})
	}
}

func TestBuildStatusReport(t *testing.T) {
	m, err := ComputeDashboardModel(sampleFeed(t), schema.Filters{}, sampleOptions()...)
	require.NoError(t, err)

	report := BuildStatusReport(m)
	assert.Equal(t, "UAT_Daily_Status_2025-01-08_08_30.md", report.Filename)

	md := report.Markdown
	assert.True(t, strings.HasPrefix(md, "**Summary (All platforms)**\n"))
	assert.Contains(t, md, "• Executed 32%, Pass 20%. Open defects 3 (2 blocker/critical).\n")
	assert.Contains(t, md, "• Execution trending up and defects down.\n")
	assert.Contains(t, md, "**Highlights**\n• Health GREEN (auto)")
	assert.Contains(t, md, "executed 32% vs 30% planned (+2pp)")
	assert.Contains(t, md, "• UAT Days: Day 3 of 9.")
	assert.Contains(t, md, "• Active blockers/criticals require attention (see table below).\n")
	assert.Contains(t, md, "  - [Blocker] #1 Login fails (Web, Open)\n")
	assert.Contains(t, md, "  - [Critical] #3 Checkout timeout (Web)\n")
	assert.Contains(t, md, "**Next Steps**\n• Close remaining blocker/critical defects")

	sections := []string{"**Summary", "**Highlights**", "**Risks & Blockers**", "**Next Steps**"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(md, s)
		assert.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
}

func TestBuildStatusReportQuietDay(t *testing.T) {
	m := schema.DashboardViewModel{
		LastUpdate: "2025-01-09 17:00",
		Filters:    schema.Filters{Platform: "App"},
		Health:     schema.HealthBadge{Status: schema.GreenHealth, Source: schema.AutoSource, Label: "GREEN", Reason: "On plan"},
		Countdown:  schema.Countdown{State: schema.UnconfiguredState},
		Trends:     schema.Trends{Execution: schema.TrendSteady, Defects: schema.TrendSteady},
	}

	md := BuildStatusReport(m).Markdown
	assert.Contains(t, md, "**Summary (App)**")
	assert.Contains(t, md, "• No Blocker/Critical reported currently.")
	assert.Contains(t, md, "• Keep the current pace; no change to Go/No-Go.")
	assert.NotContains(t, md, "UAT Days")
}

func TestBuildStatusReportBehindPlan(t *testing.T) {
	m := schema.DashboardViewModel{
		Health:  schema.HealthBadge{Status: schema.RedHealth, Source: schema.AutoSource, Label: "RED"},
		Planned: schema.PlannedView{DeltaExecuted: -12, DeltaPass: -3},
	}

	md := BuildStatusReport(m).Markdown
	assert.Contains(t, md, "Recover execution pace (12pp behind plan).")
	assert.Contains(t, md, "lift the pass rate (3pp behind plan).")
	assert.Contains(t, md, "Escalate RED status")
}
