package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintStatusReport outputs the daily status report. Text mode writes the raw markdown.
func PrintStatusReport(r schema.StatusReport, cfg *contract.Config) error {
	return dispatch(cfg, r,
		func(w *csv.Writer) error {
			return w.Write([]string{r.Filename, r.Markdown})
		},
		[]string{"filename", "markdown"},
		func(w io.Writer) error {
			md := r.Markdown
			if !strings.HasSuffix(md, "\n") {
				md += "\n"
			}
			_, err := io.WriteString(w, md)
			return err
		})
}

// PrintRunRecords outputs recorded dashboard runs, dispatching based on the output format configured.
func PrintRunRecords(runs []schema.RunRecord, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	header := []string{
		"run_id", "run_uuid", "computed_at", "feed_source", "last_update", "today", "platform", "day_index",
		"executed_pct", "planned_executed_pct", "pass_pct", "planned_pass_pct", "delta_executed", "delta_pass",
		"open_defects", "blocker_critical", "health", "health_source", "countdown_state", "countdown_pct",
	}
	return dispatch(cfg, runs,
		func(w *csv.Writer) error {
			for _, r := range runs {
				if err := w.Write([]string{
					fmt.Sprintf(intFmt, r.RunID),
					r.RunUUID,
					r.ComputedAt.UTC().Format(time.RFC3339),
					r.FeedSource,
					r.LastUpdate,
					r.Today,
					r.Platform,
					fmt.Sprintf(intFmt, r.DayIndex),
					fmtFloat(r.ExecutedPct),
					fmtFloat(r.PlannedExecutedPct),
					fmtFloat(r.PassPct),
					fmtFloat(r.PlannedPassPct),
					fmt.Sprintf(intFmt, r.DeltaExecuted),
					fmt.Sprintf(intFmt, r.DeltaPass),
					fmt.Sprintf(intFmt, r.OpenDefects),
					fmt.Sprintf(intFmt, r.BlockerCritical),
					r.Health,
					r.HealthSource,
					r.CountdownState,
					fmtFloat(r.CountdownPct),
				}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		},
		header,
		func(w io.Writer) error {
			return writeRunsTable(runs, cfg, fmtFloat, intFmt, w)
		})
}

// writeRunsTable generates and writes the human-readable run history.
func writeRunsTable(runs []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(writer, "No dashboard runs recorded yet")
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"ID", "Computed", "Platform", "Day", "Executed", "Delta", "Pass", "Delta", "Blk/Crit", "Health"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(runs))
	for _, r := range runs {
		platform := r.Platform
		if platform == "" {
			platform = "All"
		}
		data = append(data, []string{
			fmt.Sprintf(intFmt, r.RunID),
			r.ComputedAt.Local().Format("2006-01-02 15:04"),
			platform,
			fmt.Sprintf(intFmt, r.DayIndex),
			fmtFloat(r.ExecutedPct) + "%",
			fmtDelta(int(r.DeltaExecuted)),
			fmtFloat(r.PassPct) + "%",
			fmtDelta(int(r.DeltaPass)),
			fmt.Sprintf(intFmt, r.BlockerCritical),
			contract.GetHealthLabel(schema.HealthStatus(r.Health), cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(writer, "Showing %d recorded runs\n", len(runs))
	return nil
}
