package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesResults outputs the planned-vs-actual series, dispatching based on the output format configured.
func PrintSeriesResults(s schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	header := []string{"index", "date", "executed_pct", "planned_executed_pct", "pass_pct", "planned_pass_pct"}
	return dispatch(cfg, s,
		func(w *csv.Writer) error {
			for _, p := range s.Series {
				if err := w.Write([]string{
					fmt.Sprintf(intFmt, p.Index),
					p.Date,
					fmtNumber(p.ExecutedPct, fmtFloat),
					fmtFloat(p.PlannedExecutedPct),
					fmtNumber(p.PassPct, fmtFloat),
					fmtFloat(p.PlannedPassPct),
				}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		},
		header,
		func(w io.Writer) error {
			return writeSeriesTable(s, fmtFloat, intFmt, duration, w)
		})
}

// writeSeriesTable generates and writes the human-readable series table.
func writeSeriesTable(s schema.SeriesResult, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Day", "Date", "Executed", "Planned", "Pass", "Planned"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(s.Series))
	for _, p := range s.Series {
		day := fmt.Sprintf(intFmt, p.Index)
		if p.Index == s.DayIndex {
			day = "▶ " + day
		}
		data = append(data, []string{
			day,
			orDash(p.Date),
			fmtNumber(p.ExecutedPct, fmtFloat),
			fmtFloat(p.PlannedExecutedPct),
			fmtNumber(p.PassPct, fmtFloat),
			fmtFloat(p.PlannedPassPct),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(s.Defects) > 0 {
		_, _ = fmt.Fprintln(writer, "\nOpen defects")
		defects := tablewriter.NewWriter(writer)
		defects.Header([]string{"Date", "Open"})
		defects.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		rows := make([][]string, 0, len(s.Defects))
		for _, d := range s.Defects {
			rows = append(rows, []string{orDash(d.Date), fmtFloat(d.OpenDefects)})
		}
		if err := defects.Bulk(rows); err != nil {
			return err
		}
		if err := defects.Render(); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(writer, "Showing %d business days (today is day %d)\n", len(s.Series), s.DayIndex)
	_, _ = fmt.Fprintf(writer, "Series built in %v\n", duration)
	return nil
}

// PrintCalendarResults outputs the business-day sequence, dispatching based on the output format configured.
func PrintCalendarResults(c schema.CalendarResult, cfg *contract.Config, duration time.Duration) error {
	_, intFmt := createFormatters(cfg.Precision)
	header := []string{"index", "date", "label", "weekday"}
	return dispatch(cfg, c,
		func(w *csv.Writer) error {
			for _, d := range c.Days {
				if err := w.Write([]string{fmt.Sprintf(intFmt, d.Index), d.Date, d.Label, d.Weekday}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		},
		header,
		func(w io.Writer) error {
			return writeCalendarTable(c, intFmt, duration, w)
		})
}

// writeCalendarTable generates and writes the human-readable business-day table.
func writeCalendarTable(c schema.CalendarResult, intFmt string, duration time.Duration, writer io.Writer) error {
	if !c.Configured {
		_, _ = fmt.Fprintf(writer, "No UAT schedule configured (timezone %s, today %s)\n", c.Timezone, c.Today)
		_, _ = fmt.Fprintf(writer, "Calendar built in %v\n", duration)
		return nil
	}

	_, _ = fmt.Fprintf(writer, "UAT window %s to %s (%s)\n", c.Start, c.End, c.Timezone)
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Day", "Date", "Label", "Weekday"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(c.Days))
	for _, d := range c.Days {
		idx := fmt.Sprintf(intFmt, d.Index)
		if d.Date == c.Today {
			idx = "▶ " + idx
		}
		data = append(data, []string{idx, d.Date, d.Label, d.Weekday})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(writer, "Today %s is business day %d of %d\n", c.Today, c.TodayIndex, c.Total)
	if c.NextBusinessDay != "" {
		_, _ = fmt.Fprintf(writer, "Next business day: %s\n", c.NextBusinessDay)
	}
	_, _ = fmt.Fprintf(writer, "Calendar built in %v\n", duration)
	return nil
}
