package tetris

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("tetris: invalid config")

// Config holds the tunable constants of a session.
type Config struct {
	Width       int
	VisibleRows int
	// HiddenRows is the spawn buffer above the visible playfield. At least one row is needed
	// for the spawn pose.
	HiddenRows int

	// PreviewCount is how many upcoming kinds the snapshot exposes.
	PreviewCount int

	StartLevel    int
	LinesPerLevel int

	// LineScores[n-1] is the bonus for clearing n rows at once, before the level multiplier.
	LineScores [4]int
	// Points per row travelled by soft and hard drops.
	SoftDropPoints int
	HardDropPoints int

	// FallIntervals[level] is the gravity period at that level; levels past the end reuse the
	// last entry.
	FallIntervals   []time.Duration
	MinFallInterval time.Duration
}

// DefaultConfig returns the standard 10x20 setup with two buffer rows and classic scoring.
func DefaultConfig() Config {
	return Config{
		Width:           10,
		VisibleRows:     20,
		HiddenRows:      2,
		PreviewCount:    5,
		StartLevel:      0,
		LinesPerLevel:   10,
		LineScores:      [4]int{100, 300, 500, 800},
		FallIntervals:   DefaultFallIntervals(),
		MinFallInterval: time.Millisecond,
	}
}

// Validate checks the config for values the session cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width < 4:
		return fmt.Errorf("%w: width %d is narrower than the I piece", ErrInvalidConfig, c.Width)
	case c.VisibleRows < 2:
		return fmt.Errorf("%w: visible rows %d", ErrInvalidConfig, c.VisibleRows)
	case c.HiddenRows < 1:
		return fmt.Errorf("%w: hidden rows %d, need at least 1", ErrInvalidConfig, c.HiddenRows)
	case c.PreviewCount < 0:
		return fmt.Errorf("%w: preview count %d", ErrInvalidConfig, c.PreviewCount)
	case c.StartLevel < 0:
		return fmt.Errorf("%w: start level %d", ErrInvalidConfig, c.StartLevel)
	case c.LinesPerLevel < 1:
		return fmt.Errorf("%w: lines per level %d", ErrInvalidConfig, c.LinesPerLevel)
	case c.SoftDropPoints < 0 || c.HardDropPoints < 0:
		return fmt.Errorf("%w: negative drop points", ErrInvalidConfig)
	case len(c.FallIntervals) == 0:
		return fmt.Errorf("%w: no fall intervals", ErrInvalidConfig)
	case c.MinFallInterval <= 0:
		return fmt.Errorf("%w: min fall interval %s", ErrInvalidConfig, c.MinFallInterval)
	}

	prev := 0
	for n, score := range c.LineScores {
		if score <= prev {
			return fmt.Errorf("%w: %d-line score %d does not exceed %d", ErrInvalidConfig, n+1, score, prev)
		}
		prev = score
	}

	for level, d := range c.FallIntervals {
		if d <= 0 {
			return fmt.Errorf("%w: fall interval %s at level %d", ErrInvalidConfig, d, level)
		}
		if level > 0 && d > c.FallIntervals[level-1] {
			return fmt.Errorf("%w: fall interval increases at level %d", ErrInvalidConfig, level)
		}
	}

	return nil
}
