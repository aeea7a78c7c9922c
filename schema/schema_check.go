package schema

// CheckResult holds the results of a health gate check.
type CheckResult struct {
	Passed          bool
	Health          HealthStatus
	Source          HealthSource
	FailOn          HealthStatus
	Reason          string
	DayIndex        int
	DeltaExecuted   int
	DeltaPass       int
	BlockerCritical int
	Countdown       CountdownState
	FailedChecks    []CheckFailure
}

// CheckFailure represents one metric that is behind plan.
type CheckFailure struct {
	Metric  string
	Actual  float64
	Planned float64
	Class   StatusClass
}
