package schema

import "time"

// RunRecord represents a row from the uatpulse_dashboard_runs table.
type RunRecord struct {
	RunID              int64
	RunUUID            string
	ComputedAt         time.Time
	FeedSource         string
	LastUpdate         string
	Today              string
	Platform           string
	DayIndex           int32
	ExecutedPct        float64
	PassPct            float64
	PlannedExecutedPct float64
	PlannedPassPct     float64
	DeltaExecuted      int32
	DeltaPass          int32
	OpenDefects        int32
	BlockerCritical    int32
	Health             string
	HealthSource       string
	CountdownState     string
	CountdownPct       float64
}
