package cmd

import (
	"fmt"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/iocache"
	"github.com/huangsam/uatpulse/internal/outwriter"
	"github.com/huangsam/uatpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromConfig resolves the history backend for management commands.
// An unset backend means the default SQLite file.
func historyBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	raw := viper.GetString("history-backend")
	if raw == "" {
		raw = string(schema.SQLiteBackend)
	}
	backend, err := contract.ParseBackend(raw)
	if err != nil {
		return "", "", fmt.Errorf("history: %w", err)
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}

	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historyMigrateSetup resolves the backend without opening the store, since
// migrations manage the schema themselves.
func historyMigrateSetup() error {
	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on the dashboard run history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of dashboard runs",
	Long: `Manage the history of dashboard runs recorded by dashboard, report, check and watch.

Each run stores the feed source, health, KPIs, planned values and deltas so that
the evolution of a UAT can be reviewed or exported later.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics and connection info
  runs    - List the most recent runs
  clear   - Remove all recorded runs
  export  - Export runs to a Parquet file
  migrate - Run database schema migrations

Examples:
  # Check history status
  uatpulse history status

  # Show the last five runs
  uatpulse history runs --limit 5`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the number of recorded runs, the last run and its health,
and the size of each history table.

Examples:
  # History in the default SQLite file
  uatpulse history status

  # History in PostgreSQL
  uatpulse history status --history-backend postgresql --history-db-connect "host=localhost dbname=uat"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears recorded runs.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded dashboard runs",
	Long: `Delete all recorded runs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the runs table

Examples:
  # Clear the default SQLite history
  uatpulse history clear`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := contract.GetHistoryDBFilePath()
		if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect != "" {
			dbFilePath = cfg.HistoryDBConnect
		}
		if err := iocache.ClearHistory(cfg.HistoryBackend, dbFilePath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports runs to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to a Parquet file",
	Long: `Write every recorded run to <output-file>.runs.parquet for analysis in
DuckDB, pandas, Spark or any other Parquet reader.

Examples:
  # Export to uat.runs.parquet
  uatpulse history export --output-file uat`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history schema migrations",
	Long: `Apply the embedded schema migrations to the history database.

--target-version -1 migrates to the latest version, 0 rolls back everything,
and any other value migrates up or down to that version.

Examples:
  # Migrate to the latest schema
  uatpulse history migrate

  # Roll back to version 1
  uatpulse history migrate --target-version 1`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, target); err != nil {
			contract.LogFatal("Failed to migrate history", err)
		}
		fmt.Println("History migrated successfully.")
	},
}

// historyRunsCmd lists the most recent runs.
var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the most recent dashboard runs",
	Long: `List recorded runs, newest first, with their health, KPIs and deltas.

Examples:
  # Last 20 runs as a table
  uatpulse history runs

  # Last 100 runs as CSV
  uatpulse history runs --limit 100 --output csv --output-file runs.csv`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iocache.Manager.GetHistoryStore().GetRecentRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}

		outCfg := &contract.Config{
			Output:     schema.OutputMode(viper.GetString("output")),
			OutputFile: cfg.OutputFile,
			Precision:  viper.GetInt("precision"),
			UseColors:  viper.GetString("color") != "no",
		}
		if err := outwriter.NewOutWriter().WriteRuns(runs, outCfg); err != nil {
			contract.LogFatal("Failed to print runs", err)
		}
	},
}
