package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/uatpulse/schema"
)

// Default values for configuration.
const (
	DefaultFeedPath      = "./uat.json"
	DefaultPrecision     = 0
	MaxPrecision         = 2
	DefaultFetchTimeout  = 10 * time.Second
	DefaultServeAddr     = ":8080"
	DefaultWatchSchedule = "@every 15m"
	DefaultTimezone      = "Europe/Berlin"
	DefaultLogLevel      = "info"

	// FeedCacheVersion is bumped when the cached feed payload format changes.
	FeedCacheVersion = 1
)

// DateFormat is the civil date layout accepted by --today.
const DateFormat = "2006-01-02"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	FeedPath     string
	Platform     string
	Today        time.Time // zero means use the wall clock
	Timezone     string    // used when the feed's schedule has none
	FetchTimeout time.Duration

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	FailOn schema.HealthStatus
	Save   bool

	ServeAddr     string
	WatchSchedule string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	FeedArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Feed             string `mapstructure:"feed"`
	Platform         string `mapstructure:"platform"`
	Today            string `mapstructure:"today"`
	Timezone         string `mapstructure:"timezone"`
	FetchTimeout     string `mapstructure:"fetch-timeout"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`

	// --- Fields from checkCmd.Flags() ---
	FailOn string `mapstructure:"fail-on"`

	// --- Fields from reportCmd.Flags() ---
	Save bool `mapstructure:"save"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Fields from watchCmd.Flags() ---
	Schedule string `mapstructure:"schedule"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WithFeed returns a copy of the Config pointing at another feed and platform.
// Empty arguments keep the current values.
func (c *Config) WithFeed(feed, platform string) *Config {
	clone := c.Clone()
	if feed != "" {
		clone.FeedPath = feed
	}
	if platform != "" {
		clone.Platform = platform
	}
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFeedInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend lowercases and validates a backend name. Empty means none.
func ParseBackend(raw string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if backend == "" {
		return schema.NoneBackend, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	backend, err := ParseBackend(input.CacheBackend)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	backend, err = ParseBackend(input.HistoryBackend)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Validate that cache and history use different databases
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Save = input.Save
	cfg.LogLevel = input.LogLevel
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	failOn := schema.HealthStatus(strings.ToLower(strings.TrimSpace(input.FailOn)))
	switch failOn {
	case "":
		cfg.FailOn = schema.RedHealth
	case schema.AmberHealth, schema.RedHealth:
		cfg.FailOn = failOn
	default:
		return fmt.Errorf("invalid --fail-on value '%s'. must be amber or red", input.FailOn)
	}

	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}
	cfg.WatchSchedule = input.Schedule
	if cfg.WatchSchedule == "" {
		cfg.WatchSchedule = DefaultWatchSchedule
	}
	return nil
}

// processFeedInputs resolves the feed location and the calendar overrides.
func processFeedInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.FeedPath = strings.TrimSpace(input.FeedArg)
	if cfg.FeedPath == "" {
		cfg.FeedPath = strings.TrimSpace(input.Feed)
	}
	if cfg.FeedPath == "" {
		cfg.FeedPath = DefaultFeedPath
	}
	cfg.Platform = strings.TrimSpace(input.Platform)

	cfg.Timezone = strings.TrimSpace(input.Timezone)
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid --timezone '%s': %w", cfg.Timezone, err)
	}

	cfg.Today = time.Time{}
	if today := strings.TrimSpace(input.Today); today != "" {
		t, err := time.Parse(DateFormat, today)
		if err != nil {
			return fmt.Errorf("invalid --today '%s'. Expected YYYY-MM-DD", today)
		}
		cfg.Today = t
	}

	cfg.FetchTimeout = DefaultFetchTimeout
	if input.FetchTimeout != "" {
		d, err := time.ParseDuration(input.FetchTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid --fetch-timeout '%s'. Expected a positive duration like 10s", input.FetchTimeout)
		}
		cfg.FetchTimeout = d
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
