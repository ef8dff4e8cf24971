// Package tetris implements the simulation core of a falling-block puzzle game.
// It owns the board, the falling piece, the piece queue and the scoring progression,
// and is advanced only by Tick and Apply from a single control loop.
package tetris

import "fmt"

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// Kinds lists every piece kind in catalog order.
var Kinds = [KindCount]Kind{I, O, T, S, Z, J, L}

var kindNames = [KindCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the seven catalog kinds.
func (k Kind) Valid() bool {
	return k < KindCount
}

// ParseKind converts a single letter (I, O, T, S, Z, J or L) to a Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Cell is a settled board cell. The zero value is empty; occupied cells carry the kind
// of the piece that was merged there.
type Cell uint8

// Empty is the unoccupied cell.
const Empty Cell = 0

// CellOf returns an occupied cell tagged with k.
func CellOf(k Kind) Cell {
	return Cell(k) + 1
}

// Filled reports whether the cell is occupied.
func (c Cell) Filled() bool {
	return c != Empty
}

// Kind returns the kind tag of an occupied cell.
func (c Cell) Kind() (Kind, bool) {
	if c == Empty {
		return 0, false
	}
	return Kind(c - 1), true
}

// Point is a column/row pair. X grows to the right, Y grows downward with row 0 at the top.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}
