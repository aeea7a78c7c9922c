package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/uatpulse/core/calendar"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/feed"
	"github.com/huangsam/uatpulse/schema"
	"github.com/stretchr/testify/require"
)

// sampleFeedJSON is a two-week window with a Monday holiday, observed on its third
// business day. Business days: Jan 6-10 and Jan 14-17.
const sampleFeedJSON = `{
	"overview": {"lastUpdate": "2025-01-08 08:30", "inScope": 118},
	"schedule": {"start": "2025-01-06", "end": "2025-01-17", "timezone": "Europe/Berlin", "holidays": ["2025-01-13"]},
	"plan": {},
	"plannedSeries": {},
	"progressDaily": [
		{"date": "2025-01-06", "inScope": 120, "executedPct": 10, "passPct": 6},
		{"date": "2025-01-07", "inScope": 120, "executedPct": 20, "passPct": 12},
		{"date": "2025-01-08", "inScope": 120, "executedPct": 32, "passPct": 20}
	],
	"defectsDaily": [
		{"date": "2025-01-06", "openDefects": 5},
		{"date": "2025-01-07", "openDefects": 7},
		{"date": "2025-01-08", "openDefects": 4}
	],
	"issues": [
		{"id": 1, "title": "Login fails", "platform": "Web", "priority": "Blocker", "status": "Open"},
		{"id": 2, "title": "Push missing", "platform": "App", "priority": "Critical", "status": "Closed"},
		{"id": 3, "summary": "Checkout timeout", "platform": "Web", "priority": " Critical "},
		{"id": 4, "title": "Report typo", "platform": "BOSS", "priority": "Major", "status": "In Progress"},
		{"id": 5, "title": "Button color", "platform": "Web", "priority": "Minor", "status": "closed"}
	],
	"keyDates": [{"date": "2025-01-17", "label": "Sign-off"}],
	"infoUrl": "./about-uat.md"
}`

var sampleToday = time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

func sampleFeed(t *testing.T) *schema.Feed {
	t.Helper()
	f, err := feed.Decode([]byte(sampleFeedJSON))
	require.NoError(t, err)
	return f
}

func sampleOptions() []calendar.Option {
	return []calendar.Option{calendar.WithToday(sampleToday)}
}

func writeFeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uat.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func testConfig(feedPath string) *contract.Config {
	return &contract.Config{
		FeedPath:     feedPath,
		Today:        sampleToday,
		Timezone:     contract.DefaultTimezone,
		FetchTimeout: time.Second,
		Output:       schema.JSONOut,
		FailOn:       schema.RedHealth,
	}
}
