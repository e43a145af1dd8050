package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtremaTrackerNewMaximum(t *testing.T) {
	tracker := NewExtremaTracker(100)

	assert.Equal(t, EventNewMaximum, tracker.Observe(110))
	assert.Equal(t, 110.0, tracker.Max())
	// 刷新最大值不会上调最小值
	assert.Equal(t, 100.0, tracker.Min())
}

func TestExtremaTrackerNewMinimum(t *testing.T) {
	tracker := NewExtremaTracker(100)

	assert.Equal(t, EventNewMinimum, tracker.Observe(95))
	assert.Equal(t, 95.0, tracker.Min())
	assert.Equal(t, 100.0, tracker.Max())
	assert.True(t, tracker.Declined())
}

func TestExtremaTrackerStrictComparison(t *testing.T) {
	tracker := NewExtremaTracker(100)

	// 与极值相等不产生事件
	assert.Equal(t, EventNone, tracker.Observe(100))

	tracker.Observe(95)
	assert.Equal(t, EventNone, tracker.Observe(95))
	assert.Equal(t, EventNone, tracker.Observe(98))
}

func TestExtremaTrackerDrawdown(t *testing.T) {
	tracker := NewExtremaTracker(100)
	tracker.Observe(110)

	require.Equal(t, EventNewMinimum, tracker.Observe(88))
	assert.InDelta(t, 1-88.0/110.0, tracker.Drawdown(), 1e-12)
}

func TestExtremaTrackerRebound(t *testing.T) {
	tracker := NewExtremaTracker(100)
	tracker.Observe(90)

	require.Equal(t, EventNewMaximum, tracker.Observe(105))
	assert.InDelta(t, 105.0/90.0-1, tracker.Rebound(), 1e-12)
}

func TestExtremaTrackerNotDeclinedOnRise(t *testing.T) {
	tracker := NewExtremaTracker(100)
	tracker.Observe(105)
	tracker.Observe(110)

	// 只涨不跌时不构成回撤
	assert.False(t, tracker.Declined())
}

func TestExtremaTrackerMinKeptAfterNewMaximum(t *testing.T) {
	tracker := NewExtremaTracker(100)
	tracker.Observe(80)
	tracker.Observe(120)

	// 新最大值不重置最小值, 后续更低价才会刷新
	assert.Equal(t, 80.0, tracker.Min())
	assert.Equal(t, EventNone, tracker.Observe(90))
	assert.Equal(t, EventNewMinimum, tracker.Observe(75))
	assert.InDelta(t, 1-75.0/120.0, tracker.Drawdown(), 1e-12)
}
