package core

import (
	"context"
	"testing"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{contract.DefaultWatchSchedule, false},
		{"@hourly", false},
		{"*/5 * * * *", false},
		{"0 */5 * * * *", false},
		{"0 9 * * MON-FRI", false},
		{"every five minutes", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			err := ValidateSchedule(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecuteWatchRunsImmediately(t *testing.T) {
	history := &iocache.MockHistoryStore{}
	history.On("RecordRun", mock.Anything).Return(int64(1), nil).Once()

	cfg := testConfig(writeFeed(t, sampleFeedJSON))
	cfg.WatchSchedule = "@every 1h"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, ExecuteWatch(ctx, cfg, newMockManager(history)))
	history.AssertExpectations(t)
}

func TestExecuteWatchInvalidSchedule(t *testing.T) {
	cfg := testConfig(writeFeed(t, sampleFeedJSON))
	cfg.WatchSchedule = "not a schedule"
	assert.Error(t, ExecuteWatch(context.Background(), cfg, nil))
}

func TestDashboardJobFailure(t *testing.T) {
	job := &dashboardJob{
		ctx: context.Background(),
		cfg: testConfig("/nonexistent/uat.json"),
		log: contract.Logger("watch"),
	}
	assert.Equal(t, "dashboard", job.Name())
	assert.Error(t, job.Run())
}
