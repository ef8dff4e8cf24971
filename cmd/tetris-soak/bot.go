package main

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/tetris"
)

// bot plays random inputs: a handful of moves, rotations, soft drops and gravity ticks, then a
// hard drop so every game keeps making progress.
type bot struct {
	r      *rand.Rand
	budget int
}

func newBot(seed uint64) *bot {
	b := &bot{r: rand.New(rand.NewPCG(seed, ^seed))}
	b.budget = b.r.IntN(9)
	return b
}

// next returns the command to apply, or tick true for a gravity step instead.
func (b *bot) next() (cmd tetris.Command, tick bool) {
	if b.budget == 0 {
		b.budget = b.r.IntN(9)
		return tetris.HardDrop, false
	}
	b.budget--

	if b.r.IntN(5) == 0 {
		return 0, true
	}
	// Everything but HardDrop.
	return tetris.Commands[b.r.IntN(len(tetris.Commands)-1)], false
}
