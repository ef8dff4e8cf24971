package tetris

import "fmt"

// Direction is a rotation request.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// RotationCount is the number of rotation states of every kind.
const RotationCount = 4

// Spawn-state matrices inside each kind's bounding box, SRS orientation.
var baseShapes = [KindCount][][]bool{
	I: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	O: {
		{true, true},
		{true, true},
	},
	T: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	S: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	Z: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	J: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	L: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
}

// shapeTable is filled once at init and never written afterwards.
var shapeTable [KindCount][RotationCount][4]Point

func init() {
	for k := range baseShapes {
		shape := baseShapes[k]
		for rot := range RotationCount {
			shapeTable[k][rot] = shapeOffsets(shape)
			shape = rotateShape(shape)
		}
	}
}

// rotateShape turns a square matrix a quarter turn clockwise.
func rotateShape(shape [][]bool) [][]bool {
	size := len(shape)
	rotated := make([][]bool, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}

	for i := range size {
		for j := range size {
			rotated[j][size-1-i] = shape[i][j]
		}
	}

	return rotated
}

func shapeOffsets(shape [][]bool) [4]Point {
	var cells [4]Point
	n := 0
	for y := range shape {
		for x, filled := range shape[y] {
			if !filled {
				continue
			}
			if n == len(cells) {
				panic("tetris: shape matrix has more than four cells")
			}
			cells[n] = Point{X: x, Y: y}
			n++
		}
	}
	if n != len(cells) {
		panic("tetris: shape matrix has fewer than four cells")
	}
	return cells
}

func mustValid(kind Kind, rotation int) {
	if !kind.Valid() {
		panic(fmt.Sprintf("tetris: invalid piece kind %d", uint8(kind)))
	}
	if rotation < 0 || rotation >= RotationCount {
		panic(fmt.Sprintf("tetris: invalid rotation %d for %s", rotation, kind))
	}
}

// Cells returns the occupied offsets of kind at rotation, relative to the top-left corner of
// the kind's bounding box. Panics if kind or rotation is out of range.
func Cells(kind Kind, rotation int) [4]Point {
	mustValid(kind, rotation)
	return shapeTable[kind][rotation]
}

// BoxSize returns the side length of the kind's bounding box.
func BoxSize(kind Kind) int {
	mustValid(kind, 0)
	return len(baseShapes[kind])
}

// RotateIndex returns the rotation index reached from rotation in direction d, modulo 4.
func RotateIndex(rotation int, d Direction) int {
	return ((rotation+int(d))%RotationCount + RotationCount) % RotationCount
}

var defaultKicks = []Point{{0, 0}}

// SRS kick offsets in board coordinates (row grows downward), indexed by
// [from rotation][0 = clockwise, 1 = counter-clockwise].
var jlstzKicks = [RotationCount][2][5]Point{
	0: {
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	},
	1: {
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	},
	2: {
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	},
	3: {
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	},
}

var iKicks = [RotationCount][2][5]Point{
	0: {
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	},
	1: {
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	},
	2: {
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	},
	3: {
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	},
}

// Kicks returns the ordered anchor offsets tried when rotating kind from one state to another.
// The first offset is always (0,0). Kinds without kick rules, and transitions that are not a
// single quarter turn, get only (0,0). The returned slice is a fresh copy.
func Kicks(kind Kind, from, to int) []Point {
	mustValid(kind, from)
	mustValid(kind, to)

	var dir int
	switch to {
	case RotateIndex(from, Clockwise):
		dir = 0
	case RotateIndex(from, CounterClockwise):
		dir = 1
	default:
		return append([]Point(nil), defaultKicks...)
	}

	switch kind {
	case I:
		row := iKicks[from][dir]
		return append([]Point(nil), row[:]...)
	case O:
		return append([]Point(nil), defaultKicks...)
	default:
		row := jlstzKicks[from][dir]
		return append([]Point(nil), row[:]...)
	}
}

// SpawnPiece returns kind at its spawn pose: rotation 0, horizontally centred, with its top
// occupied row on the last hidden row of board so that the piece straddles the spawn buffer
// and the first visible row.
func SpawnPiece(kind Kind, width, hiddenRows int) Piece {
	cells := Cells(kind, 0)
	top := cells[0].Y
	for _, c := range cells[1:] {
		top = min(top, c.Y)
	}

	return Piece{
		Kind:     kind,
		Rotation: 0,
		Col:      (width - BoxSize(kind)) / 2,
		Row:      hiddenRows - 1 - top,
	}
}
