package core

import "fmt"

// Reward amounts per completed action.
const (
	PointsRemoveDuplicates = 10
	PointsFillMissing      = 10
	PointsInsight          = 5
	PointsVisualize        = 15
	PointsConvert          = 20
)

// ProgressCap is the XP total at which the progress indicator is full.
const ProgressCap = 100

// RewardCounter holds a session's XP. The zero value is a fresh counter.
// It is not safe for concurrent use; the owning Session serializes access.
type RewardCounter struct {
	xp int
}

// Earn adds points and returns the confirmation message.
// Non-positive amounts are rejected and leave the counter unchanged.
func (c *RewardCounter) Earn(points int) (string, error) {
	if points <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidPoints, points)
	}
	c.xp += points
	return EarnMessage(points), nil
}

// XP returns the running total.
func (c *RewardCounter) XP() int { return c.xp }

// Progress returns min(xp/ProgressCap, 1).
func (c *RewardCounter) Progress() float64 {
	return ProgressFraction(c.xp)
}

// ProgressFraction clamps xp/ProgressCap to [0, 1].
func ProgressFraction(xp int) float64 {
	p := float64(xp) / ProgressCap
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// EarnMessage is the confirmation shown after points are awarded.
func EarnMessage(points int) string {
	return fmt.Sprintf("🎉 You earned %d XP! Keep going!", points)
}
