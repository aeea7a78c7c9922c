// Package parquet provides data structures and functions for exporting dashboard
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/uatpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// DashboardRun represents one computed dashboard.
// This struct maps to the uatpulse_dashboard_runs database table.
type DashboardRun struct {
	// RunID is the row identifier assigned by the history store
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier of the run
	RunUUID string `parquet:"run_uuid,snappy"`

	// ComputedAt is when the dashboard was computed (millisecond precision)
	ComputedAt time.Time `parquet:"computed_at,snappy"`

	FeedSource string `parquet:"feed_source,snappy"`

	// LastUpdate is the feed's own freshness stamp (nullable)
	LastUpdate *string `parquet:"last_update,optional,snappy"`

	// Today is the civil date in the feed timezone, YYYY-MM-DD
	Today string `parquet:"today,snappy"`

	// Platform is the issue filter in effect (nullable when unfiltered)
	Platform *string `parquet:"platform,optional,snappy"`

	DayIndex           int32   `parquet:"day_index,snappy"`
	ExecutedPct        float64 `parquet:"executed_pct,snappy"`
	PassPct            float64 `parquet:"pass_pct,snappy"`
	PlannedExecutedPct float64 `parquet:"planned_executed_pct,snappy"`
	PlannedPassPct     float64 `parquet:"planned_pass_pct,snappy"`
	DeltaExecuted      int32   `parquet:"delta_executed,snappy"`
	DeltaPass          int32   `parquet:"delta_pass,snappy"`
	OpenDefects        int32   `parquet:"open_defects,snappy"`
	BlockerCritical    int32   `parquet:"blocker_critical,snappy"`

	// Health is the RAG status: green, amber or red
	Health string `parquet:"health,snappy"`

	// HealthSource is manual or auto
	HealthSource string `parquet:"health_source,snappy"`

	CountdownState string  `parquet:"countdown_state,snappy"`
	CountdownPct   float64 `parquet:"countdown_pct,snappy"`
}

// WriteDashboardRunsParquet writes a slice of DashboardRun structs to a Parquet file.
func WriteDashboardRunsParquet(data []DashboardRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the DashboardRun struct tags
	writer := parquet.NewGenericWriter[DashboardRun](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to DashboardRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []DashboardRun {
	result := make([]DashboardRun, len(records))
	for i, r := range records {
		result[i] = DashboardRun{
			RunID:              r.RunID,
			RunUUID:            r.RunUUID,
			ComputedAt:         r.ComputedAt,
			FeedSource:         r.FeedSource,
			LastUpdate:         optional(r.LastUpdate),
			Today:              r.Today,
			Platform:           optional(r.Platform),
			DayIndex:           r.DayIndex,
			ExecutedPct:        r.ExecutedPct,
			PassPct:            r.PassPct,
			PlannedExecutedPct: r.PlannedExecutedPct,
			PlannedPassPct:     r.PlannedPassPct,
			DeltaExecuted:      r.DeltaExecuted,
			DeltaPass:          r.DeltaPass,
			OpenDefects:        r.OpenDefects,
			BlockerCritical:    r.BlockerCritical,
			Health:             r.Health,
			HealthSource:       r.HealthSource,
			CountdownState:     r.CountdownState,
			CountdownPct:       r.CountdownPct,
		}
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
