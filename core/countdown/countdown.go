// Package countdown derives the countdown widget from a business calendar.
package countdown

import (
	"fmt"
	"math"

	"github.com/huangsam/uatpulse/core/calendar"
	"github.com/huangsam/uatpulse/schema"
)

// Title is the widget heading.
const Title = "UAT Days"

// Derive computes the countdown state for the calendar's civil today.
func Derive(cal *calendar.Calendar) schema.Countdown {
	if !cal.Configured() {
		return schema.Countdown{
			State:    schema.UnconfiguredState,
			Title:    Title,
			Label:    "—",
			Compact:  "—",
			Tooltip:  "UAT dates not configured",
			Subtitle: "(dates missing)",
		}
	}

	start, end := cal.Start(), cal.End()
	total := cal.Total()
	today := cal.Today()
	span := fmt.Sprintf("%s – %s", cal.FormatDay(start), cal.FormatDay(end))

	c := schema.Countdown{
		Title: Title,
		Total: total,
		Start: calendar.FormatISO(start),
		End:   calendar.FormatISO(end),
	}

	switch {
	case today.Before(start):
		firstRun, err := cal.FirstBusinessDayOnOrAfter(start)
		if err != nil {
			firstRun = start
		}
		until := 0
		for d := calendar.AddDays(today, 1); !d.After(firstRun); d = calendar.AddDays(d, 1) {
			if cal.IsBusinessDay(d) {
				until++
			}
		}
		calDays := int(math.Ceil(firstRun.Sub(today).Hours() / 24))

		c.State = schema.BeforeWindowState
		c.Label = fmt.Sprintf("Starts in %d business %s", until, plural(until, "day"))
		c.Compact = fmt.Sprintf("Starts in %d biz %s", until, plural(until, "day"))
		c.Tooltip = fmt.Sprintf("%s · %d working days\n%d calendar days to start", span, total, calDays)
		c.Subtitle = fmt.Sprintf("%s · %d working days (%d calendar days to start)", span, total, calDays)
		c.BusinessDaysUntil = until
		c.CalendarDaysToStart = calDays

	case today.After(end):
		c.State = schema.AfterWindowState
		c.Label = "Completed"
		c.Compact = "Completed"
		c.Tooltip = fmt.Sprintf("Ran %s · %d working days", span, total)
		c.Subtitle = fmt.Sprintf("%d/%d working days · Ran %s", total, total, span)
		c.Percent = 100
		c.ShowPercent = true
		c.DayIndex = total

	case !cal.IsBusinessDay(today):
		done := cal.BusinessDayIndex(calendar.AddDays(today, -1))
		c.State = schema.PausedState
		c.DayIndex = done
		c.Percent = percent(done, total)
		c.ShowPercent = true
		c.Subtitle = fmt.Sprintf("Completed day %d of %d", done, total)
		c.Tooltip = fmt.Sprintf("Completed day %d of %d\n%s", done, total, span)
		if next, err := cal.NextBusinessDayAfter(today); err == nil {
			c.ResumesOn = calendar.FormatISO(next)
			c.Label = fmt.Sprintf("Paused · resumes %s", cal.FormatDay(next))
		} else {
			c.Label = "Paused"
		}
		c.Compact = c.Label

	default:
		idx := cal.BusinessDayIndex(today)
		c.State = schema.ActiveState
		c.DayIndex = idx
		c.Percent = percent(idx, total)
		c.ShowPercent = true
		c.Label = fmt.Sprintf("Day %d of %d", idx, total)
		c.Compact = fmt.Sprintf("Day %d/%d", idx, total)
		c.Tooltip = fmt.Sprintf("%s · %d working days", span, total)
		c.Subtitle = c.Tooltip
	}
	return c
}

// percent is index/total as a percentage clamped to [0, 100].
func percent(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Max(0, math.Min(100, float64(index)/float64(total)*100))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
