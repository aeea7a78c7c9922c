package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
)

// runsTable holds one row per computed dashboard.
const runsTable = "uatpulse_dashboard_runs"

// runColumns lists the insertable columns of runsTable in scan order.
const runColumns = `run_uuid, computed_at, feed_source, last_update, today, platform,
	day_index, executed_pct, pass_pct, planned_executed_pct, planned_pass_pct,
	delta_executed, delta_pass, open_defects, blocker_critical,
	health, health_source, countdown_state, countdown_pct`

const runColumnCount = 19

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreateRunsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// newHistoryStoreWithDB wraps an existing connection without creating tables.
func newHistoryStoreWithDB(db *sql.DB, backend schema.DatabaseBackend) *HistoryStoreImpl {
	return &HistoryStoreImpl{db: db, backend: backend}
}

// getCreateRunsQuery returns the CREATE TABLE query for the runs table.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid VARCHAR(36) NOT NULL,
				computed_at BIGINT NOT NULL,
				feed_source VARCHAR(1024) NOT NULL,
				last_update VARCHAR(64) NOT NULL,
				today VARCHAR(10) NOT NULL,
				platform VARCHAR(64) NOT NULL,
				day_index INT NOT NULL,
				executed_pct DOUBLE NOT NULL,
				pass_pct DOUBLE NOT NULL,
				planned_executed_pct DOUBLE NOT NULL,
				planned_pass_pct DOUBLE NOT NULL,
				delta_executed INT NOT NULL,
				delta_pass INT NOT NULL,
				open_defects INT NOT NULL,
				blocker_critical INT NOT NULL,
				health VARCHAR(16) NOT NULL,
				health_source VARCHAR(16) NOT NULL,
				countdown_state VARCHAR(32) NOT NULL,
				countdown_pct DOUBLE NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				computed_at BIGINT NOT NULL,
				feed_source TEXT NOT NULL,
				last_update TEXT NOT NULL,
				today TEXT NOT NULL,
				platform TEXT NOT NULL,
				day_index INT NOT NULL,
				executed_pct DOUBLE PRECISION NOT NULL,
				pass_pct DOUBLE PRECISION NOT NULL,
				planned_executed_pct DOUBLE PRECISION NOT NULL,
				planned_pass_pct DOUBLE PRECISION NOT NULL,
				delta_executed INT NOT NULL,
				delta_pass INT NOT NULL,
				open_defects INT NOT NULL,
				blocker_critical INT NOT NULL,
				health TEXT NOT NULL,
				health_source TEXT NOT NULL,
				countdown_state TEXT NOT NULL,
				countdown_pct DOUBLE PRECISION NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				computed_at INTEGER NOT NULL,
				feed_source TEXT NOT NULL,
				last_update TEXT NOT NULL,
				today TEXT NOT NULL,
				platform TEXT NOT NULL,
				day_index INTEGER NOT NULL,
				executed_pct REAL NOT NULL,
				pass_pct REAL NOT NULL,
				planned_executed_pct REAL NOT NULL,
				planned_pass_pct REAL NOT NULL,
				delta_executed INTEGER NOT NULL,
				delta_pass INTEGER NOT NULL,
				open_defects INTEGER NOT NULL,
				blocker_critical INTEGER NOT NULL,
				health TEXT NOT NULL,
				health_source TEXT NOT NULL,
				countdown_state TEXT NOT NULL,
				countdown_pct REAL NOT NULL
			);
		`, quotedTableName)
	}
}

// RecordRun appends one computed dashboard and returns its row ID.
func (hs *HistoryStoreImpl) RecordRun(r schema.RunRecord) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	args := []any{
		r.RunUUID, r.ComputedAt.UnixMilli(), r.FeedSource, r.LastUpdate, r.Today, r.Platform,
		r.DayIndex, r.ExecutedPct, r.PassPct, r.PlannedExecutedPct, r.PlannedPassPct,
		r.DeltaExecuted, r.DeltaPass, r.OpenDefects, r.BlockerCritical,
		r.Health, r.HealthSource, r.CountdownState, r.CountdownPct,
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(runsTable, hs.backend), runColumns, placeholders(hs.backend, runColumnCount))

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		if err := hs.db.QueryRow(query+" RETURNING run_id", args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert dashboard run: %w", err)
		}
	default: // SQLite and MySQL
		result, err := hs.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert dashboard run: %w", err)
		}
		runID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read dashboard run id: %w", err)
		}
	}
	return runID, nil
}

// GetRecentRuns returns up to limit runs, newest first.
func (hs *HistoryStoreImpl) GetRecentRuns(limit int) ([]schema.RunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT run_id, %s FROM %s ORDER BY run_id DESC LIMIT %d",
		runColumns, quoteTableName(runsTable, hs.backend), limit)
	return hs.queryRuns(query)
}

// GetAllRuns returns every run, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT run_id, %s FROM %s ORDER BY run_id",
		runColumns, quoteTableName(runsTable, hs.backend))
	return hs.queryRuns(query)
}

func (hs *HistoryStoreImpl) queryRuns(query string) ([]schema.RunRecord, error) {
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var r schema.RunRecord
		var computedAt int64
		if err := rows.Scan(
			&r.RunID, &r.RunUUID, &computedAt, &r.FeedSource, &r.LastUpdate, &r.Today, &r.Platform,
			&r.DayIndex, &r.ExecutedPct, &r.PassPct, &r.PlannedExecutedPct, &r.PlannedPassPct,
			&r.DeltaExecuted, &r.DeltaPass, &r.OpenDefects, &r.BlockerCritical,
			&r.Health, &r.HealthSource, &r.CountdownState, &r.CountdownPct,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dashboard run: %w", err)
		}
		r.ComputedAt = time.UnixMilli(computedAt).UTC()
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dashboard runs: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := hs.db.QueryRow(countQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	status.TableSizes[runsTable] = int64(status.TotalRuns)

	if status.TotalRuns == 0 {
		return status, nil
	}

	var lastComputed int64
	lastQuery := fmt.Sprintf("SELECT run_id, computed_at, health FROM %s ORDER BY run_id DESC LIMIT 1", quotedTableName)
	if err := hs.db.QueryRow(lastQuery).Scan(&status.LastRunID, &lastComputed, &status.LastHealth); err != nil {
		return status, fmt.Errorf("failed to get last run info: %w", err)
	}
	status.LastRunTime = time.UnixMilli(lastComputed).UTC()

	var oldestComputed int64
	oldestQuery := fmt.Sprintf("SELECT computed_at FROM %s ORDER BY run_id ASC LIMIT 1", quotedTableName)
	if err := hs.db.QueryRow(oldestQuery).Scan(&oldestComputed); err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}
	status.OldestRunTime = time.UnixMilli(oldestComputed).UTC()

	return status, nil
}
