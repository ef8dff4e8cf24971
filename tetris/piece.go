package tetris

// Piece is a tetromino pose: kind, rotation state and the board position of the top-left
// corner of its bounding box.
type Piece struct {
	Kind     Kind
	Rotation int
	Col      int
	Row      int
}

// Cells returns the board positions the piece occupies.
func (p Piece) Cells() [4]Point {
	cells := Cells(p.Kind, p.Rotation)
	for i := range cells {
		cells[i] = cells[i].Add(Point{X: p.Col, Y: p.Row})
	}
	return cells
}

// Fits reports whether the piece's current pose is legal on b.
func (p Piece) Fits(b *Board) bool {
	return b.CanPlace(p.Kind, p.Rotation, p.Col, p.Row)
}

// TryMove shifts the piece by dx,dy if the new pose fits. The piece is unchanged on failure.
func (p *Piece) TryMove(b *Board, dx, dy int) bool {
	if !b.CanPlace(p.Kind, p.Rotation, p.Col+dx, p.Row+dy) {
		return false
	}
	p.Col += dx
	p.Row += dy
	return true
}

// TryRotate turns the piece a quarter turn in direction d, trying the kick offsets in order
// and committing the first pose that fits. The piece is unchanged if none fit.
func (p *Piece) TryRotate(b *Board, d Direction) bool {
	to := RotateIndex(p.Rotation, d)
	for _, kick := range Kicks(p.Kind, p.Rotation, to) {
		col, row := p.Col+kick.X, p.Row+kick.Y
		if b.CanPlace(p.Kind, to, col, row) {
			p.Rotation = to
			p.Col = col
			p.Row = row
			return true
		}
	}
	return false
}

// IsGrounded reports whether the piece cannot move down one row.
func (p Piece) IsGrounded(b *Board) bool {
	return !b.CanPlace(p.Kind, p.Rotation, p.Col, p.Row+1)
}

// HardDrop moves the piece down until it is grounded and returns the number of rows dropped.
// The caller is responsible for locking it.
func (p *Piece) HardDrop(b *Board) int {
	rows := 0
	for p.TryMove(b, 0, 1) {
		rows++
	}
	return rows
}

// GhostRow returns the anchor row the piece would land on if hard dropped.
func (p Piece) GhostRow(b *Board) int {
	ghost := p
	ghost.HardDrop(b)
	return ghost.Row
}
