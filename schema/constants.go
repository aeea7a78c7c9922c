package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// HealthStatus represents a RAG classification or a manual override value.
	HealthStatus string

	// HealthSource tells whether the health badge came from a manual override or the rules.
	HealthSource string

	// StatusClass represents how far a metric is from its planned value.
	StatusClass string

	// Tone represents the absolute color band of a KPI percentage.
	Tone string

	// CountdownState represents the state of the countdown widget.
	CountdownState string

	// Trend represents the direction of a short series.
	Trend string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// Health values. AutoHealth is only valid as an override input.
const (
	AutoHealth  HealthStatus = "auto"
	GreenHealth HealthStatus = "green"
	AmberHealth HealthStatus = "amber"
	RedHealth   HealthStatus = "red"
)

// Health sources.
const (
	ManualSource HealthSource = "manual"
	AutoSource   HealthSource = "auto"
)

// Per-metric status classes.
const (
	OnPlanClass         StatusClass = "on-or-ahead-of-plan"
	SlightlyBehindClass StatusClass = "slightly-behind"
	BehindClass         StatusClass = "materially-behind"
)

// KPI tones.
const (
	GoodTone Tone = "good"
	WarnTone Tone = "warn"
	BadTone  Tone = "bad"
)

// Countdown states.
const (
	UnconfiguredState CountdownState = "unconfigured"
	BeforeWindowState CountdownState = "before-window"
	PausedState       CountdownState = "paused"
	ActiveState       CountdownState = "active"
	AfterWindowState  CountdownState = "after-window"
)

// Trend directions.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Priorities surfaced by the blocker table and the health rule.
const (
	PriorityBlocker  = "Blocker"
	PriorityCritical = "Critical"
)

// DefaultPlatforms is used when no issue names a platform.
var DefaultPlatforms = []string{"Web", "App", "BOSS"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidHealthOverrides lists all values accepted in the health.status feed field.
var ValidHealthOverrides = map[HealthStatus]struct{}{
	AutoHealth:  {},
	GreenHealth: {},
	AmberHealth: {},
	RedHealth:   {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Severity returns an ordering for RAG values where larger is worse.
// Unknown values rank below green.
func (h HealthStatus) Severity() int {
	switch h {
	case GreenHealth:
		return 1
	case AmberHealth:
		return 2
	case RedHealth:
		return 3
	default:
		return 0
	}
}

// Label returns the badge text for a RAG value.
func (h HealthStatus) Label() string {
	switch h {
	case GreenHealth:
		return "GREEN"
	case AmberHealth:
		return "AMBER"
	case RedHealth:
		return "RED"
	default:
		return "AUTO"
	}
}
