package core

import (
	"context"
	"testing"

	"github.com/huangsam/uatpulse/internal/iocache"
	"github.com/huangsam/uatpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckResultBuilder(t *testing.T) {
	history := &iocache.MockHistoryStore{}
	history.On("RecordRun", mock.Anything).Return(int64(9), nil).Once()

	cfg := testConfig(writeFeed(t, sampleFeedJSON))
	builder := NewCheckResultBuilder(context.Background(), cfg, newMockManager(history))
	assert.Nil(t, builder.GetResult())

	_, err := builder.LoadFeed()
	require.NoError(t, err)
	assert.Contains(t, builder.source, "uat.json")

	_, err = builder.ComputeDashboard()
	require.NoError(t, err)

	result := builder.ComputeMetrics().BuildResult().GetResult()
	require.NotNil(t, result)
	assert.True(t, result.Passed)
	assert.Equal(t, schema.GreenHealth, result.Health)
	assert.Equal(t, schema.RedHealth, result.FailOn)
	assert.Equal(t, 2, result.BlockerCritical)
	assert.Equal(t, schema.ActiveState, result.Countdown)
	assert.NotNil(t, result.FailedChecks)
	history.AssertExpectations(t)
}

func TestCheckResultBuilderLoadError(t *testing.T) {
	builder := NewCheckResultBuilder(context.Background(), testConfig("/nonexistent/uat.json"), nil)
	b, err := builder.LoadFeed()
	assert.Error(t, err)
	assert.Nil(t, b)
}
