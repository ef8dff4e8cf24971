package tetris

import "math/rand/v2"

// Randomizer produces the sequence of upcoming piece kinds. It always yields a value.
type Randomizer interface {
	Next() Kind
}

// bagStream decorrelates the second PCG word from the seed.
const bagStream = 0x9e3779b97f4a7c15

// Bag is a 7-bag randomizer: it deals every kind exactly once per shuffled batch, so no kind
// waits more than 12 draws.
type Bag struct {
	rng    *rand.Rand
	bag    [KindCount]Kind
	cursor int
}

// NewBag returns a bag randomizer whose sequence is fully determined by seed.
func NewBag(seed uint64) *Bag {
	return &Bag{
		rng:    rand.New(rand.NewPCG(seed, seed^bagStream)),
		cursor: KindCount,
	}
}

// Next returns the next kind, shuffling a fresh batch when the current one is exhausted.
func (b *Bag) Next() Kind {
	if b.cursor == KindCount {
		b.bag = Kinds
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
		b.cursor = 0
	}

	k := b.bag[b.cursor]
	b.cursor++
	return k
}

// Sequence cycles through a fixed list of kinds. Useful for scripted scenarios.
type Sequence struct {
	kinds  []Kind
	cursor int
}

// NewSequence returns a randomizer that repeats kinds in order. Panics if kinds is empty.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		panic("tetris: sequence needs at least one kind")
	}
	return &Sequence{kinds: append([]Kind(nil), kinds...)}
}

func (s *Sequence) Next() Kind {
	k := s.kinds[s.cursor]
	s.cursor = (s.cursor + 1) % len(s.kinds)
	return k
}
