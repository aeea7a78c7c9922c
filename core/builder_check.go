package core

import (
	"context"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
)

// CheckResultBuilder builds the check result using a builder pattern.
type CheckResultBuilder struct {
	cfg          *contract.Config
	mgr          contract.CacheManager
	ctx          context.Context
	feed         *schema.Feed
	source       string
	model        schema.DashboardViewModel
	failedChecks []schema.CheckFailure
	result       *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) *CheckResultBuilder {
	return &CheckResultBuilder{
		cfg: cfg,
		mgr: mgr,
		ctx: ctx,
	}
}

// LoadFeed fetches and decodes the feed.
func (b *CheckResultBuilder) LoadFeed() (*CheckResultBuilder, error) {
	f, source, err := LoadFeed(b.ctx, b.cfg, b.mgr)
	if err != nil {
		return nil, err
	}
	b.feed = f
	b.source = source
	return b, nil
}

// ComputeDashboard computes the dashboard model and records the run.
func (b *CheckResultBuilder) ComputeDashboard() (*CheckResultBuilder, error) {
	m, err := ComputeDashboardModel(b.feed, schema.Filters{Platform: b.cfg.Platform}, CalendarOptions(b.cfg)...)
	if err != nil {
		return nil, err
	}
	b.model = m
	recordRun(b.ctx, b.mgr, b.source, m)
	return b, nil
}

// ComputeMetrics collects the metrics that are behind plan.
func (b *CheckResultBuilder) ComputeMetrics() *CheckResultBuilder {
	planned := b.model.Planned
	b.failedChecks = []schema.CheckFailure{}
	if planned.ExecutedClass != schema.OnPlanClass {
		b.failedChecks = append(b.failedChecks, schema.CheckFailure{
			Metric:  "executed",
			Actual:  planned.ActualExecutedPct,
			Planned: planned.PlannedExecutedPct,
			Class:   planned.ExecutedClass,
		})
	}
	if planned.PassClass != schema.OnPlanClass {
		b.failedChecks = append(b.failedChecks, schema.CheckFailure{
			Metric:  "pass",
			Actual:  planned.ActualPassPct,
			Planned: planned.PlannedPassPct,
			Class:   planned.PassClass,
		})
	}
	return b
}

// BuildResult constructs the final CheckResult. The check fails when health is at
// or worse than the --fail-on level.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	health := b.model.Health
	b.result = &schema.CheckResult{
		Passed:          health.Status.Severity() < b.cfg.FailOn.Severity(),
		Health:          health.Status,
		Source:          health.Source,
		FailOn:          b.cfg.FailOn,
		Reason:          health.Reason,
		DayIndex:        b.model.Planned.DayIndex,
		DeltaExecuted:   b.model.Planned.DeltaExecuted,
		DeltaPass:       b.model.Planned.DeltaPass,
		BlockerCritical: b.model.KPIs.BlockerCritical,
		Countdown:       b.model.Countdown.State,
		FailedChecks:    b.failedChecks,
	}
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}
