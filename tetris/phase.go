package tetris

import "fmt"

// Phase is the session's state machine position. Between calls a session is always Falling
// or GameOver; the other phases are passed through inside a single Tick or Apply and show up
// in Outcome.Phases.
type Phase uint8

const (
	Spawning Phase = iota
	Falling
	Locking
	Clearing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Spawning:
		return "spawning"
	case Falling:
		return "falling"
	case Locking:
		return "locking"
	case Clearing:
		return "clearing"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Terminal reports whether no further ticks or commands are accepted.
func (p Phase) Terminal() bool {
	return p == GameOver
}

// next returns the phases reachable from p.
func (p Phase) next() []Phase {
	switch p {
	case Spawning:
		return []Phase{Falling, GameOver}
	case Falling:
		return []Phase{Locking}
	case Locking:
		return []Phase{Clearing}
	case Clearing:
		return []Phase{Spawning}
	case GameOver:
		return nil
	default:
		panic(fmt.Sprintf("tetris: unknown phase %d", uint8(p)))
	}
}

// canEnter reports whether to is a legal transition from p.
func (p Phase) canEnter(to Phase) bool {
	for _, n := range p.next() {
		if n == to {
			return true
		}
	}
	return false
}
