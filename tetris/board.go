package tetris

import (
	"errors"
	"fmt"
	"strings"
)

// Board is the grid of settled cells. Row 0 is the top of the spawn buffer; the first
// HiddenRows rows are above the visible playfield.
type Board struct {
	width  int
	height int
	hidden int
	cells  []Cell
}

// NewBoard creates an empty board with the given visible size and spawn buffer.
func NewBoard(width, visibleRows, hiddenRows int) *Board {
	if width <= 0 || visibleRows <= 0 || hiddenRows < 0 {
		panic(fmt.Sprintf("tetris: invalid board size %dx%d+%d", width, visibleRows, hiddenRows))
	}

	height := visibleRows + hiddenRows
	return &Board{
		width:  width,
		height: height,
		hidden: hiddenRows,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the total number of rows, hidden rows included.
func (b *Board) Height() int { return b.height }

// HiddenRows returns the number of spawn-buffer rows at the top.
func (b *Board) HiddenRows() int { return b.hidden }

func (b *Board) inBounds(col, row int) bool {
	return col >= 0 && col < b.width && row >= 0 && row < b.height
}

func (b *Board) mustInBounds(col, row int) {
	if !b.inBounds(col, row) {
		panic(fmt.Sprintf("tetris: cell (%d,%d) outside %dx%d board", col, row, b.width, b.height))
	}
}

// At returns the cell at col,row. Panics when out of bounds.
func (b *Board) At(col, row int) Cell {
	b.mustInBounds(col, row)
	return b.cells[row*b.width+col]
}

// Set writes a cell directly. Panics when out of bounds.
func (b *Board) Set(col, row int, c Cell) {
	b.mustInBounds(col, row)
	b.cells[row*b.width+col] = c
}

// IsCellFree reports whether col,row is inside the board and unoccupied.
// Out-of-bounds positions count as occupied.
func (b *Board) IsCellFree(col, row int) bool {
	if !b.inBounds(col, row) {
		return false
	}
	return b.cells[row*b.width+col] == Empty
}

// CanPlace reports whether every cell of kind at rotation, anchored at col,row, lands on a
// free in-bounds cell.
func (b *Board) CanPlace(kind Kind, rotation, col, row int) bool {
	for _, off := range Cells(kind, rotation) {
		if !b.IsCellFree(col+off.X, row+off.Y) {
			return false
		}
	}
	return true
}

// Merge settles the piece into the board. Callers must have checked CanPlace; an illegal
// pose panics.
func (b *Board) Merge(kind Kind, rotation, col, row int) {
	if !b.CanPlace(kind, rotation, col, row) {
		panic(fmt.Sprintf("tetris: merge of %s rotation %d at (%d,%d) collides", kind, rotation, col, row))
	}

	cell := CellOf(kind)
	for _, off := range Cells(kind, rotation) {
		b.cells[(row+off.Y)*b.width+col+off.X] = cell
	}
}

func (b *Board) row(r int) []Cell {
	return b.cells[r*b.width : (r+1)*b.width]
}

func (b *Board) rowFull(r int) bool {
	for _, c := range b.row(r) {
		if c == Empty {
			return false
		}
	}
	return true
}

// FullRows returns the indices of every full row, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for r := range b.height {
		if b.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearCompletedRows removes every full row in one compaction pass and returns how many were
// removed. Each surviving row moves down by the number of cleared rows below it; vacated rows
// at the top become empty.
func (b *Board) ClearCompletedRows() int {
	write := b.height - 1
	for read := b.height - 1; read >= 0; read-- {
		if b.rowFull(read) {
			continue
		}
		if write != read {
			copy(b.row(write), b.row(read))
		}
		write--
	}

	cleared := write + 1
	clear(b.cells[:cleared*b.width])
	return cleared
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	c.cells = append([]Cell(nil), b.cells...)
	return &c
}

// Rows returns a row-major copy of the grid.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for r := range rows {
		rows[r] = append([]Cell(nil), b.row(r)...)
	}
	return rows
}

// Equal reports whether two boards have the same dimensions and cells.
func (b *Board) Equal(o *Board) bool {
	if b.width != o.width || b.height != o.height || b.hidden != o.hidden {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board one row per line, '.' for empty and the kind letter otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for r := range b.height {
		for _, c := range b.row(r) {
			if k, ok := c.Kind(); ok {
				sb.WriteString(k.String())
			} else {
				sb.WriteByte('.')
			}
		}
		if r < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

var errEmptyBoard = errors.New("tetris: empty board text")

// ParseBoard builds a board from the String form. The first hiddenRows lines are treated as
// the spawn buffer. Blank lines and surrounding whitespace are ignored.
func ParseBoard(text string, hiddenRows int) (*Board, error) {
	var lines []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, errEmptyBoard
	}
	if hiddenRows < 0 {
		return nil, fmt.Errorf("tetris: negative hidden rows %d", hiddenRows)
	}
	if len(lines) <= hiddenRows {
		return nil, fmt.Errorf("tetris: board has %d rows, need more than %d hidden rows", len(lines), hiddenRows)
	}

	width := len(lines[0])
	b := NewBoard(width, len(lines)-hiddenRows, hiddenRows)
	for r, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("tetris: row %d has width %d, want %d", r, len(line), width)
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			k, ok := ParseKind(string(ch))
			if !ok {
				return nil, fmt.Errorf("tetris: row %d col %d: unknown cell %q", r, c, ch)
			}
			b.Set(c, r, CellOf(k))
		}
	}
	return b, nil
}
