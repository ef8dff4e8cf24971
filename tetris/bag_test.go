package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func draw(r tetris.Randomizer, n int) []tetris.Kind {
	out := make([]tetris.Kind, n)
	for i := range out {
		out[i] = r.Next()
	}
	return out
}

func TestBagDealsEveryKindOncePerBatch(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1 << 63} {
		kinds := draw(tetris.NewBag(seed), 7*50)

		for start := 0; start < len(kinds); start += tetris.KindCount {
			assert.ElementsMatch(t, tetris.Kinds[:], kinds[start:start+tetris.KindCount],
				"seed %d batch starting at %d", seed, start)
		}
	}
}

func TestBagMaxGap(t *testing.T) {
	kinds := draw(tetris.NewBag(99), 7000)

	last := make(map[tetris.Kind]int)
	for i, k := range kinds {
		if prev, ok := last[k]; ok {
			assert.LessOrEqual(t, i-prev-1, 12, "%s starved at draw %d", k, i)
		}
		last[k] = i
	}
	assert.Len(t, last, tetris.KindCount)
}

func TestBagIsDeterministic(t *testing.T) {
	assert.Equal(t, draw(tetris.NewBag(1234), 70), draw(tetris.NewBag(1234), 70))
	assert.NotEqual(t, draw(tetris.NewBag(1234), 70), draw(tetris.NewBag(4321), 70))
}

func TestSequence(t *testing.T) {
	seq := tetris.NewSequence(tetris.I, tetris.O)
	assert.Equal(t, []tetris.Kind{tetris.I, tetris.O, tetris.I, tetris.O, tetris.I}, draw(seq, 5))

	assert.Panics(t, func() { tetris.NewSequence() })
}
