package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/parquet"
)

// ExecuteHistoryExport exports the run history to <outputFile>.runs.parquet.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no dashboard runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total dashboard runs: %d\n", status.TotalRuns)

	records, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve dashboard runs: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	runs := parquet.ConvertRunRecords(records)
	if err := parquet.WriteDashboardRunsParquet(runs, runsFile); err != nil {
		return fmt.Errorf("failed to write dashboard runs: %w", err)
	}
	fmt.Printf("Exported %d dashboard runs to: %s\n", len(runs), runsFile)

	return nil
}
