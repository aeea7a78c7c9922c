// Package calendar answers business-day questions for a schedule window.
//
// Every date handled here is a civil date: the year-month-day observed in the schedule's
// timezone, stored as UTC midnight so that adding a day never crosses a DST boundary.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	_ "time/tzdata" // IANA database for hosts without zoneinfo

	"github.com/huangsam/uatpulse/schema"
)

// DefaultTimezone is used when the schedule does not name a zone.
const DefaultTimezone = "Europe/Berlin"

// DateLayout is the ISO calendar-day layout used for holidays and output.
const DateLayout = "2006-01-02"

var (
	// ErrInvertedSchedule is returned when start is after end.
	ErrInvertedSchedule = errors.New("schedule start is after end")
	// ErrInvalidDate is returned when a schedule or holiday date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUnknownTimezone is returned when the timezone is not in the IANA database.
	ErrUnknownTimezone = errors.New("unknown timezone")
	// ErrNoBusinessDay is returned when a forward scan finds no business day.
	ErrNoBusinessDay = errors.New("no business day found")
)

// Clock returns the current instant.
type Clock func() time.Time

// Option configures a Calendar.
type Option func(*options)

type options struct {
	clock    Clock
	fallback string
	today    time.Time
}

// WithToday pins "today" to a civil date, taken at noon in the calendar's zone.
// It takes precedence over WithClock.
func WithToday(day time.Time) Option {
	return func(o *options) {
		o.today = day
	}
}

// WithClock injects the source of "now".
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithFallbackTimezone sets the zone used when the schedule has none.
func WithFallbackTimezone(name string) Option {
	return func(o *options) {
		if name != "" {
			o.fallback = name
		}
	}
}

// Calendar is an immutable business calendar for one schedule.
type Calendar struct {
	loc        *time.Location
	start      time.Time
	end        time.Time
	configured bool
	holidays   map[string]struct{}
	days       []time.Time
	clock      Clock
}

// New builds a Calendar from a schedule. A schedule missing start or end yields an
// unconfigured calendar whose range operations return neutral results.
func New(s schema.Schedule, opts ...Option) (*Calendar, error) {
	o := options{clock: time.Now, fallback: DefaultTimezone}
	for _, opt := range opts {
		opt(&o)
	}

	tzName := strings.TrimSpace(s.Timezone.String())
	if tzName == "" {
		tzName = o.fallback
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, tzName)
	}

	c := &Calendar{
		loc:      loc,
		holidays: make(map[string]struct{}, len(s.Holidays)),
		clock:    o.clock,
	}
	if !o.today.IsZero() {
		y, m, d := o.today.Date()
		pinned := time.Date(y, m, d, 12, 0, 0, 0, loc)
		c.clock = func() time.Time { return pinned }
	}

	for _, h := range s.Holidays {
		raw := strings.TrimSpace(h.String())
		if raw == "" {
			continue
		}
		d, err := c.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("holiday: %w", err)
		}
		c.holidays[d.Format(DateLayout)] = struct{}{}
	}

	startRaw := strings.TrimSpace(s.Start.String())
	endRaw := strings.TrimSpace(s.End.String())
	if startRaw == "" || endRaw == "" {
		return c, nil
	}

	if c.start, err = c.ParseDate(startRaw); err != nil {
		return nil, fmt.Errorf("schedule start: %w", err)
	}
	if c.end, err = c.ParseDate(endRaw); err != nil {
		return nil, fmt.Errorf("schedule end: %w", err)
	}
	if c.start.After(c.end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvertedSchedule, startRaw, endRaw)
	}
	c.configured = true

	for d := c.start; !d.After(c.end); d = AddDays(d, 1) {
		if c.IsBusinessDay(d) {
			c.days = append(c.days, d)
		}
	}
	return c, nil
}

// ParseDate parses a calendar date. Date-only strings are taken as civil dates; instants
// are projected to the calendar's zone first.
func (c *Calendar) ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return c.CivilDate(t), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, c.loc); err == nil {
		return c.CivilDate(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// CivilDate projects an instant onto the civil date observed in the calendar's zone.
func (c *Calendar) CivilDate(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves a civil date by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// Configured reports whether both start and end are present.
func (c *Calendar) Configured() bool {
	return c.configured
}

// Start returns the first civil date of the window.
func (c *Calendar) Start() time.Time {
	return c.start
}

// End returns the last civil date of the window.
func (c *Calendar) End() time.Time {
	return c.end
}

// Location returns the calendar's timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant from the injected clock.
func (c *Calendar) Now() time.Time {
	return c.clock()
}

// Today returns the current civil date in the calendar's zone.
func (c *Calendar) Today() time.Time {
	return c.CivilDate(c.clock())
}

// IsBusinessDay reports whether d is a weekday that is not a holiday.
func (c *Calendar) IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[d.Format(DateLayout)]
	return !holiday
}

// BusinessDays returns the business days in [start, end] in ascending order.
func (c *Calendar) BusinessDays() []time.Time {
	out := make([]time.Time, len(c.days))
	copy(out, c.days)
	return out
}

// Total returns the number of business days in the window.
func (c *Calendar) Total() int {
	return len(c.days)
}

// BusinessDayIndex returns the count of business days in the window that are on or
// before d. It is the 1-based rank of d when d is a business day.
func (c *Calendar) BusinessDayIndex(d time.Time) int {
	return sort.Search(len(c.days), func(i int) bool {
		return c.days[i].After(d)
	})
}

// NextBusinessDayAfter returns the earliest business day strictly after d.
//
// With h holidays no run of non-business days exceeds 3h+6 days, so the scan bound is
// only reached when the holiday set is inconsistent with that.
func (c *Calendar) NextBusinessDayAfter(d time.Time) (time.Time, error) {
	limit := 3*len(c.holidays) + 7
	next := AddDays(d, 1)
	for i := 0; i < limit; i++ {
		if c.IsBusinessDay(next) {
			return next, nil
		}
		next = AddDays(next, 1)
	}
	return time.Time{}, fmt.Errorf("%w after %s", ErrNoBusinessDay, d.Format(DateLayout))
}

// FirstBusinessDayOnOrAfter returns the earliest business day at or after d.
func (c *Calendar) FirstBusinessDayOnOrAfter(d time.Time) (time.Time, error) {
	if c.IsBusinessDay(d) {
		return d, nil
	}
	return c.NextBusinessDayAfter(d)
}

// FormatDay returns a short display label such as "Jan 05".
func (c *Calendar) FormatDay(d time.Time) string {
	return d.Format("Jan 02")
}

// FormatISO returns the ISO calendar-day string of d.
func FormatISO(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
