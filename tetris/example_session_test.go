package tetris_test

import (
	"errors"
	"fmt"

	"github.com/plus3/blockfall/tetris"
)

func ExampleSession() {
	s, err := tetris.NewSession(tetris.DefaultConfig(), 7, tetris.WithRandomizer(tetris.NewSequence(tetris.O)))
	if err != nil {
		panic(err)
	}

	out, _ := s.Apply(tetris.HardDrop)
	fmt.Println(out.Locked, out.Phases)
	fmt.Println(s.Phase(), s.Score())

	for s.Phase() != tetris.GameOver {
		s.Apply(tetris.HardDrop)
	}
	_, err = s.Tick()
	fmt.Println(errors.Is(err, tetris.ErrSessionOver))
	// Output:
	// true [locking clearing spawning falling]
	// falling 0
	// true
}

func ExampleParseBoard() {
	b, err := tetris.ParseBoard(`
		....
		....
		J...
		JJJ.
	`, 1)
	if err != nil {
		panic(err)
	}

	b.Merge(tetris.I, 1, 1, 0)
	fmt.Println(b.ClearCompletedRows())
	fmt.Println(b)
	// Output:
	// 1
	// ....
	// ...I
	// ...I
	// J..I
}
