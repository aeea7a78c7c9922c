package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
)

// PrintCountdownResults outputs the countdown widget, dispatching based on the output format configured.
func PrintCountdownResults(c schema.Countdown, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	header := []string{"state", "label", "compact", "day_index", "total", "percent", "resumes_on", "start", "end"}
	return dispatch(cfg, c,
		func(w *csv.Writer) error {
			return w.Write([]string{
				string(c.State),
				c.Label,
				c.Compact,
				fmt.Sprintf(intFmt, c.DayIndex),
				fmt.Sprintf(intFmt, c.Total),
				fmtFloat(c.Percent),
				c.ResumesOn,
				c.Start,
				c.End,
			})
		},
		header,
		func(w io.Writer) error {
			return writeCountdownText(c, fmtFloat, duration, w)
		})
}

// writeCountdownText renders the countdown widget as a small text block.
func writeCountdownText(c schema.Countdown, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	icon := "⏳"
	switch c.State {
	case schema.PausedState:
		icon = "⏸️ "
	case schema.AfterWindowState:
		icon = "🏁"
	case schema.UnconfiguredState:
		icon = "❔"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", icon, c.Title)
	_, _ = fmt.Fprintf(w, "  %s\n", c.Label)
	if c.Subtitle != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", c.Subtitle)
	}
	if c.ShowPercent {
		_, _ = fmt.Fprintf(w, "  %s %s%%\n", progressBar(c.Percent, 20), fmtFloat(c.Percent))
	}
	if c.Tooltip != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", c.Tooltip)
	}
	_, _ = fmt.Fprintf(w, "Countdown derived in %v\n", duration)
	return nil
}

// progressBar draws a fixed-width bar for a 0..100 percentage.
func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(width, filled))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return "[" + string(bar) + "]"
}
