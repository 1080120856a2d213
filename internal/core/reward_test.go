package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardCounter_Earn(t *testing.T) {
	var c RewardCounter
	assert.Equal(t, 0, c.XP())
	assert.Equal(t, 0.0, c.Progress())

	msg, err := c.Earn(10)
	require.NoError(t, err)
	assert.Equal(t, "🎉 You earned 10 XP! Keep going!", msg)

	_, err = c.Earn(20)
	require.NoError(t, err)
	assert.Equal(t, 30, c.XP())
	assert.InDelta(t, 0.3, c.Progress(), 1e-9)
}

func TestRewardCounter_RejectsNonPositive(t *testing.T) {
	var c RewardCounter
	for _, p := range []int{0, -5} {
		_, err := c.Earn(p)
		assert.ErrorIs(t, err, ErrInvalidPoints)
	}
	assert.Equal(t, 0, c.XP())
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		xp   int
		want float64
	}{
		{0, 0},
		{45, 0.45},
		{100, 1},
		{130, 1},
		{-10, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ProgressFraction(tt.xp), 1e-9, "xp=%d", tt.xp)
	}
}

func TestRewardCounter_FullRunCaps(t *testing.T) {
	var c RewardCounter
	for _, p := range []int{PointsRemoveDuplicates, PointsFillMissing, PointsInsight, PointsVisualize, PointsConvert} {
		_, err := c.Earn(p)
		require.NoError(t, err)
	}
	assert.Equal(t, 60, c.XP())

	for range 3 {
		_, err := c.Earn(PointsConvert)
		require.NoError(t, err)
	}
	assert.Equal(t, 120, c.XP())
	assert.Equal(t, 1.0, c.Progress())
}
