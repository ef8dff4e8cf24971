package tetris

import (
	"math"
	"time"
)

// guidelineLevels is the number of levels covered by the default gravity curve.
const guidelineLevels = 20

// DefaultFallIntervals returns the guideline gravity curve, one entry per level starting at
// level 0: (0.8 - (L-1)*0.007)^(L-1) seconds with L = level+1.
func DefaultFallIntervals() []time.Duration {
	intervals := make([]time.Duration, guidelineLevels)
	for level := range intervals {
		n := float64(level)
		seconds := math.Pow(0.8-n*0.007, n)
		intervals[level] = time.Duration(seconds * float64(time.Second))
	}
	return intervals
}

// FallInterval returns the gravity period at level, floored at MinFallInterval.
func (c Config) FallInterval(level int) time.Duration {
	idx := min(max(level, 0), len(c.FallIntervals)-1)
	return max(c.FallIntervals[idx], c.MinFallInterval)
}

// LineBonus returns the score for clearing lines rows in one lock at level.
// More than four rows (only possible on pre-filled boards) scores as four.
func (c Config) LineBonus(lines, level int) int {
	if lines <= 0 {
		return 0
	}
	idx := min(lines, len(c.LineScores)) - 1
	return c.LineScores[idx] * (level + 1)
}

// LevelFor returns the level reached after clearing lines rows in total.
func (c Config) LevelFor(lines int) int {
	return c.StartLevel + lines/c.LinesPerLevel
}
