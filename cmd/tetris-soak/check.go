package main

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
)

// maxDrought is the longest run of other pieces a 7-bag can deal between two of the same kind.
const maxDrought = 2 * (tetris.KindCount - 1)

// checker verifies board invariants after every session call and tracks how long each kind
// goes unseen in the spawn order.
type checker struct {
	filled int
	// gaps is the number of empty rows lying beneath a non-empty row.
	gaps int
	dealt  int

	// lastSeen maps a kind to the index of the piece that last dealt it.
	lastSeen *intmap.Map[int, int]
	// droughts maps a gap length to how often it occurred.
	droughts *intmap.Map[int, int]
	longest  int
}

func newChecker(s *tetris.Session) *checker {
	c := &checker{
		lastSeen: intmap.New[int, int](tetris.KindCount),
		droughts: intmap.New[int, int](maxDrought + 1),
	}
	c.restart(s)
	return c
}

// restart begins tracking a new game on s.
func (c *checker) restart(s *tetris.Session) {
	c.filled = countFilled(s.Board())
	c.gaps = countGaps(s.Board())
	c.dealt = 0
	c.lastSeen.Clear()
	c.deal(s.Piece().Kind)
}

func (c *checker) deal(kind tetris.Kind) error {
	k := int(kind)
	if prev, ok := c.lastSeen.Get(k); ok {
		gap := c.dealt - prev - 1
		n, _ := c.droughts.Get(gap)
		c.droughts.Put(gap, n+1)
		c.longest = max(c.longest, gap)
		if gap > maxDrought {
			c.lastSeen.Put(k, c.dealt)
			c.dealt++
			return fmt.Errorf("%s unseen for %d pieces", kind, gap)
		}
	}
	c.lastSeen.Put(k, c.dealt)
	c.dealt++
	return nil
}

// after checks s following a call that produced out.
func (c *checker) after(s *tetris.Session, out tetris.Outcome) error {
	board := s.Board()

	if full := board.FullRows(); len(full) > 0 {
		return fmt.Errorf("rows %v left full", full)
	}

	filled := countFilled(board)
	want := c.filled
	if out.Locked {
		want += 4 - out.Cleared*board.Width()
	}
	if filled != want {
		return fmt.Errorf("board holds %d cells, want %d (locked %t, cleared %d)", filled, want, out.Locked, out.Cleared)
	}
	c.filled = filled

	// Locking and compaction can close a gap but never open one.
	gaps := countGaps(board)
	if gaps > c.gaps {
		return fmt.Errorf("%d empty rows sit under a filled row, had %d", gaps, c.gaps)
	}
	c.gaps = gaps

	if out.Locked {
		if err := c.deal(s.Piece().Kind); err != nil {
			return err
		}
	}

	if s.Phase() == tetris.Falling && !s.Piece().Fits(board) {
		return fmt.Errorf("active piece %+v overlaps the board", s.Piece())
	}
	return nil
}

// histogram returns drought counts indexed by gap length, up to the longest seen.
func (c *checker) histogram() []int {
	out := make([]int, c.longest+1)
	for gap := range out {
		out[gap], _ = c.droughts.Get(gap)
	}
	return out
}

func countFilled(b *tetris.Board) int {
	n := 0
	for row := range b.Height() {
		for col := range b.Width() {
			if b.At(col, row).Filled() {
				n++
			}
		}
	}
	return n
}

func countGaps(b *tetris.Board) int {
	gaps := 0
	stacked := false
	for row := range b.Height() {
		empty := true
		for col := range b.Width() {
			if b.At(col, row).Filled() {
				empty = false
				break
			}
		}
		switch {
		case !empty:
			stacked = true
		case stacked:
			gaps++
		}
	}
	return gaps
}
