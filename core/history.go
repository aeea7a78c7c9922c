package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
)

// NewRunRecord flattens a computed dashboard into a history row.
func NewRunRecord(source string, m schema.DashboardViewModel) schema.RunRecord {
	return schema.RunRecord{
		RunUUID:            uuid.NewString(),
		ComputedAt:         m.ComputedAt,
		FeedSource:         source,
		LastUpdate:         m.LastUpdate,
		Today:              m.Today,
		Platform:           m.Filters.Platform,
		DayIndex:           int32(m.Planned.DayIndex),
		ExecutedPct:        m.KPIs.ExecutedPct,
		PassPct:            m.KPIs.PassPct,
		PlannedExecutedPct: m.Planned.PlannedExecutedPct,
		PlannedPassPct:     m.Planned.PlannedPassPct,
		DeltaExecuted:      int32(m.Planned.DeltaExecuted),
		DeltaPass:          int32(m.Planned.DeltaPass),
		OpenDefects:        int32(m.KPIs.OpenDefects),
		BlockerCritical:    int32(m.KPIs.BlockerCritical),
		Health:             string(m.Health.Status),
		HealthSource:       string(m.Health.Source),
		CountdownState:     string(m.Countdown.State),
		CountdownPct:       m.Countdown.Percent,
	}
}

// recordRun appends the dashboard to run history. Failures are logged and never
// fail the computation.
func recordRun(ctx context.Context, mgr contract.CacheManager, source string, m schema.DashboardViewModel) {
	if mgr == nil || shouldSkipHistory(ctx) {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}
	record := NewRunRecord(source, m)
	id, err := store.RecordRun(record)
	if err != nil {
		contract.LogWarn("Cannot record dashboard run", err)
		return
	}
	logger := contract.Logger("history")
	logger.Debug().Int64("run_id", id).Str("run_uuid", record.RunUUID).Str("health", record.Health).Msg("Recorded dashboard run")
}
