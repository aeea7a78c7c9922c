package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
)

// GetCheckResults runs the health gate and returns its result without printing.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.CheckResult, error) {
	builder := NewCheckResultBuilder(ctx, cfg, mgr)

	if _, err := builder.LoadFeed(); err != nil {
		return nil, err
	}
	if _, err := builder.ComputeDashboard(); err != nil {
		return nil, err
	}
	builder.ComputeMetrics()
	builder.BuildResult()

	return builder.GetResult(), nil
}

// ExecuteCheck runs the check command for CI/CD gating.
// It computes the dashboard health and returns a non-zero exit code when the
// health is at or worse than the configured --fail-on level.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	result, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	printCheckResult(os.Stdout, result, cfg.UseColors, time.Since(start))
	if !result.Passed {
		fmt.Printf("Health %s is at or above the %s gate\n", result.Health.Label(), result.FailOn.Label())
		os.Exit(1)
	}
	return nil
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result *schema.CheckResult, useColors bool, duration time.Duration) {
	printCheckHeader(w, result, useColors, duration)

	if result.Passed {
		printCheckSuccess(w, result)
	} else {
		printCheckFailure(w, result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(w io.Writer, result *schema.CheckResult, useColors bool, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Health Check Results:")

	// Define labels and values for dynamic padding
	labels := []string{"Health:", "Source:", "Fail on:", "Day:", "Deltas:", "Blockers:", "Countdown:"}
	values := []any{
		contract.GetHealthLabel(result.Health, useColors),
		result.Source,
		result.FailOn.Label(),
		result.DayIndex,
		fmt.Sprintf("executed=%+dpp, pass=%+dpp", result.DeltaExecuted, result.DeltaPass),
		result.BlockerCritical,
		result.Countdown,
	}

	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	for i, label := range labels {
		_, _ = fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Checked in %v\n\n", duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "✅ Health gate passed: %s\n", result.Reason)
	for _, f := range result.FailedChecks {
		_, _ = fmt.Fprintf(w, "  note: %s %.0f%% vs planned %.0f%% (%s)\n", f.Metric, f.Actual, f.Planned, f.Class)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "❌ Health gate failed: %s\n\n", result.Reason)
	if len(result.FailedChecks) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Behind plan (%d metrics)\n", len(result.FailedChecks))
	for _, f := range result.FailedChecks {
		_, _ = fmt.Fprintf(w, "  - %s: %.0f%% < planned %.0f%% (%s)\n", f.Metric, f.Actual, f.Planned, f.Class)
	}
	_, _ = fmt.Fprintln(w)
}
