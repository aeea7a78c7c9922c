package schema

import "time"

// Filters narrows the dashboard to a subset of issues.
type Filters struct {
	Platform string `json:"platform"` // empty means all platforms
}

// KPIs are the headline tiles of the dashboard.
type KPIs struct {
	InScope         float64 `json:"in_scope"`
	ExecutedPct     float64 `json:"executed_pct"`
	PassPct         float64 `json:"pass_pct"`
	OpenDefects     int     `json:"open_defects"`
	BlockerCritical int     `json:"blocker_critical"`
	ExecutedTone    Tone    `json:"executed_tone"`
	PassTone        Tone    `json:"pass_tone"`
}

// PlannedView compares the latest actuals with the plan for today's business day.
type PlannedView struct {
	DayIndex           int         `json:"day_index"`
	PlannedExecutedPct float64     `json:"planned_executed_pct"`
	PlannedPassPct     float64     `json:"planned_pass_pct"`
	ExecutedFromSeries bool        `json:"executed_from_series"`
	PassFromSeries     bool        `json:"pass_from_series"`
	ActualExecutedPct  float64     `json:"actual_executed_pct"`
	ActualPassPct      float64     `json:"actual_pass_pct"`
	DeltaExecuted      int         `json:"delta_executed"`
	DeltaPass          int         `json:"delta_pass"`
	ExecutedClass      StatusClass `json:"executed_class"`
	PassClass          StatusClass `json:"pass_class"`
}

// HealthBadge is the RAG badge with its explanation.
type HealthBadge struct {
	Status  HealthStatus `json:"status"`
	Source  HealthSource `json:"source"`
	Label   string       `json:"label"`
	Reason  string       `json:"reason"`
	Comment string       `json:"comment,omitempty"`
}

// Countdown is the countdown widget state.
type Countdown struct {
	State               CountdownState `json:"state"`
	Title               string         `json:"title"`
	Label               string         `json:"label"`
	Compact             string         `json:"compact"`
	Tooltip             string         `json:"tooltip"`
	Subtitle            string         `json:"subtitle"`
	Percent             float64        `json:"percent"`
	ShowPercent         bool           `json:"show_percent"`
	DayIndex            int            `json:"day_index"`
	Total               int            `json:"total"`
	BusinessDaysUntil   int            `json:"business_days_until,omitempty"`
	CalendarDaysToStart int            `json:"calendar_days_to_start,omitempty"`
	ResumesOn           string         `json:"resumes_on,omitempty"`
	Start               string         `json:"start,omitempty"`
	End                 string         `json:"end,omitempty"`
}

// Trends holds the short-term direction of execution and defects.
type Trends struct {
	Execution Trend `json:"execution"`
	Defects   Trend `json:"defects"`
}

// IssueRow is one line of the blocker/critical table.
type IssueRow struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Platform string `json:"platform,omitempty"`
	Priority string `json:"priority"`
	Status   string `json:"status,omitempty"`
}

// SeriesPoint is one business day of the planned-vs-actual chart.
// Actual values are unset for days without a snapshot.
type SeriesPoint struct {
	Index              int     `json:"index"`
	Date               string  `json:"date,omitempty"`
	ExecutedPct        Number  `json:"executed_pct"`
	PassPct            Number  `json:"pass_pct"`
	PlannedExecutedPct float64 `json:"planned_executed_pct"`
	PlannedPassPct     float64 `json:"planned_pass_pct"`
}

// DefectPoint is one day of the open-defect chart.
type DefectPoint struct {
	Date        string  `json:"date"`
	OpenDefects float64 `json:"open_defects"`
}

// BusinessDay is one entry of the business-day sequence.
type BusinessDay struct {
	Index   int    `json:"index"`
	Date    string `json:"date"`
	Label   string `json:"label"`
	Weekday string `json:"weekday"`
}

// DashboardViewModel is the complete computed snapshot handed to presentation layers.
type DashboardViewModel struct {
	LastUpdate string        `json:"last_update"`
	ComputedAt time.Time     `json:"computed_at"`
	Today      string        `json:"today"`
	Timezone   string        `json:"timezone"`
	Filters    Filters       `json:"filters"`
	Platforms  []string      `json:"platforms"`
	KPIs       KPIs          `json:"kpis"`
	Planned    PlannedView   `json:"planned"`
	Health     HealthBadge   `json:"health"`
	Countdown  Countdown     `json:"countdown"`
	Trends     Trends        `json:"trends"`
	Issues     []IssueRow    `json:"issues"`
	Series     []SeriesPoint `json:"series"`
	Defects    []DefectPoint `json:"defects"`
	KeyDates   []KeyDate     `json:"key_dates"`
	InfoURL    string        `json:"info_url,omitempty"`
}

// StatusReport is the generated daily status markdown.
type StatusReport struct {
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}

// SeriesResult is the planned-vs-actual chart data.
type SeriesResult struct {
	DayIndex int           `json:"day_index"`
	Series   []SeriesPoint `json:"series"`
	Defects  []DefectPoint `json:"defects"`
}

// CalendarResult is the business-day sequence of the schedule window.
type CalendarResult struct {
	Configured      bool          `json:"configured"`
	Timezone        string        `json:"timezone"`
	Start           string        `json:"start,omitempty"`
	End             string        `json:"end,omitempty"`
	Today           string        `json:"today"`
	TodayIndex      int           `json:"today_index"`
	NextBusinessDay string        `json:"next_business_day,omitempty"`
	Total           int           `json:"total"`
	Days            []BusinessDay `json:"days"`
}
