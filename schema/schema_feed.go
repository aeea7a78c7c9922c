package schema

// Feed is the deserialized status feed. Every field is optional.
type Feed struct {
	Overview      Overview           `json:"overview"`
	Schedule      Schedule           `json:"schedule"`
	Plan          PlanSpec           `json:"plan"`
	PlannedSeries PlannedSeries      `json:"plannedSeries"`
	ProgressDaily []ProgressSnapshot `json:"progressDaily"`
	DefectsDaily  []DefectSnapshot   `json:"defectsDaily"`
	Issues        []Issue            `json:"issues"`
	Health        HealthInput        `json:"health"`
	KeyDates      []KeyDate          `json:"keyDates"`
	InfoURL       Text               `json:"infoUrl"`
}

// Overview holds feed-level metadata.
type Overview struct {
	LastUpdate Text   `json:"lastUpdate"`
	InScope    Number `json:"inScope"`
}

// Schedule configures the business calendar.
type Schedule struct {
	Start    Text   `json:"start"`
	End      Text   `json:"end"`
	Timezone Text   `json:"timezone"`
	Holidays []Text `json:"holidays"`
}

// PlanSpec configures the planned curves.
type PlanSpec struct {
	ExecDays   Number `json:"exec_days"`
	PassDays   Number `json:"pass_days"`
	PassTarget Number `json:"pass_target"`
}

// PlannedSeries overrides the planned curves per business day, 0-based for day 1.
type PlannedSeries struct {
	PlannedExecutedPct []Number `json:"planned_executed_pct"`
	PlannedPassPct     []Number `json:"planned_pass_pct"`
}

// ProgressSnapshot is one reported day of execution progress.
type ProgressSnapshot struct {
	Date        Text   `json:"date"`
	InScope     Number `json:"inScope"`
	ExecutedPct Number `json:"executedPct"`
	PassPct     Number `json:"passPct"`
}

// DefectSnapshot is one reported day of open defects.
type DefectSnapshot struct {
	Date        Text   `json:"date"`
	OpenDefects Number `json:"openDefects"`
}

// Issue is a defect or ticket record.
type Issue struct {
	ID       Text `json:"id,omitempty"`
	Title    Text `json:"title,omitempty"`
	Summary  Text `json:"summary,omitempty"`
	Platform Text `json:"platform,omitempty"`
	Priority Text `json:"priority"`
	Status   Text `json:"status,omitempty"`
}

// HealthInput is the optional manual health override.
type HealthInput struct {
	Status  Text `json:"status"`
	Comment Text `json:"comment"`
}

// KeyDate is a milestone passed through to the view model.
type KeyDate struct {
	Date  Text `json:"date"`
	Label Text `json:"label"`
}
