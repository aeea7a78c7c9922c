package core

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/huangsam/uatpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCheckResult(t *testing.T) {
	tests := []struct {
		name     string
		result   schema.CheckResult
		contains []string
	}{
		{
			name: "passed",
			result: schema.CheckResult{
				Passed:       true,
				Health:       schema.GreenHealth,
				Source:       schema.AutoSource,
				FailOn:       schema.RedHealth,
				Reason:       "On plan",
				DayIndex:     3,
				Countdown:    schema.ActiveState,
				FailedChecks: []schema.CheckFailure{},
			},
			contains: []string{"Health Check Results:", "  Health:     GREEN", "✅ Health gate passed: On plan"},
		},
		{
			name: "passed with a metric behind",
			result: schema.CheckResult{
				Passed: true,
				Health: schema.AmberHealth,
				FailOn: schema.RedHealth,
				FailedChecks: []schema.CheckFailure{
					{Metric: "pass", Actual: 15, Planned: 19, Class: schema.SlightlyBehindClass},
				},
			},
			contains: []string{"✅", "note: pass 15% vs planned 19% (slightly-behind)"},
		},
		{
			name: "failed",
			result: schema.CheckResult{
				Passed:        false,
				Health:        schema.RedHealth,
				FailOn:        schema.RedHealth,
				Reason:        "Off plan: executed 10% vs 30% (-20pp)",
				DeltaExecuted: -20,
				FailedChecks: []schema.CheckFailure{
					{Metric: "executed", Actual: 10, Planned: 30, Class: schema.BehindClass},
				},
			},
			contains: []string{"executed=-20pp", "❌ Health gate failed", "Behind plan (1 metrics)", "  - executed: 10% < planned 30% (materially-behind)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printCheckResult(&buf, &tt.result, false, 5*time.Millisecond)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestGetCheckResults(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		failOn     schema.HealthStatus
		wantPassed bool
		wantHealth schema.HealthStatus
		wantFailed int
	}{
		{"on plan", sampleFeedJSON, schema.RedHealth, true, schema.GreenHealth, 0},
		{"on plan strict gate", sampleFeedJSON, schema.AmberHealth, true, schema.GreenHealth, 0},
		{
			name: "amber under red gate",
			body: `{"schedule": {"start": "2025-01-06", "end": "2025-01-17"},
				"progressDaily": [{"executedPct": 27, "passPct": 19}]}`,
			failOn: schema.RedHealth, wantPassed: true, wantHealth: schema.AmberHealth, wantFailed: 1,
		},
		{
			name: "amber under amber gate",
			body: `{"schedule": {"start": "2025-01-06", "end": "2025-01-17"},
				"progressDaily": [{"executedPct": 27, "passPct": 19}]}`,
			failOn: schema.AmberHealth, wantPassed: false, wantHealth: schema.AmberHealth, wantFailed: 1,
		},
		{
			name: "manual red",
			body: `{"schedule": {"start": "2025-01-06", "end": "2025-01-17"},
				"progressDaily": [{"executedPct": 90, "passPct": 90}], "health": {"status": "RED"}}`,
			failOn: schema.RedHealth, wantPassed: false, wantHealth: schema.RedHealth, wantFailed: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(writeFeed(t, tt.body))
			cfg.FailOn = tt.failOn

			result, err := GetCheckResults(context.Background(), cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, tt.wantHealth, result.Health)
			assert.Len(t, result.FailedChecks, tt.wantFailed)
			assert.Equal(t, 3, result.DayIndex)
		})
	}
}

func TestGetCheckResultsErrors(t *testing.T) {
	_, err := GetCheckResults(context.Background(), testConfig("/nonexistent/uat.json"), nil)
	assert.Error(t, err)

	cfg := testConfig(writeFeed(t, `{"schedule": {"start": "2025-02-01", "end": "2025-01-01"}}`))
	_, err = GetCheckResults(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
