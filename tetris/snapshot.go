package tetris

import "time"

// PieceView is a read-only copy of the falling piece's pose.
type PieceView struct {
	Kind     Kind
	Rotation int
	Col      int
	Row      int
	Cells    [4]Point
	// GhostRow is the anchor row the piece would land on if hard dropped.
	GhostRow int
}

// GhostCells returns the cells the piece would occupy after a hard drop.
func (v PieceView) GhostCells() [4]Point {
	cells := v.Cells
	for i := range cells {
		cells[i].Y += v.GhostRow - v.Row
	}
	return cells
}

// Snapshot is everything a renderer needs, copied out of the session.
type Snapshot struct {
	Width      int
	Height     int
	HiddenRows int
	// Cells is row-major, Height rows including the hidden buffer at the top.
	Cells [][]Cell
	// Active is nil once the session is over.
	Active *PieceView
	Next   []Kind

	Score        int
	Level        int
	Lines        int
	Phase        Phase
	FallInterval time.Duration
	// Spawned counts how many pieces of each kind have entered play.
	Spawned [KindCount]int
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Width:        s.board.Width(),
		Height:       s.board.Height(),
		HiddenRows:   s.board.HiddenRows(),
		Cells:        s.board.Rows(),
		Score:        s.score,
		Level:        s.level,
		Lines:        s.lines,
		Phase:        s.phase,
		FallInterval: s.FallInterval(),
		Spawned:      s.spawned,
	}

	n := min(s.cfg.PreviewCount, len(s.queue))
	snap.Next = append([]Kind(nil), s.queue[:n]...)

	if s.phase == Falling {
		snap.Active = &PieceView{
			Kind:     s.piece.Kind,
			Rotation: s.piece.Rotation,
			Col:      s.piece.Col,
			Row:      s.piece.Row,
			Cells:    s.piece.Cells(),
			GhostRow: s.piece.GhostRow(s.board),
		}
	}

	return snap
}

// Visible returns the rows below the spawn buffer.
func (s Snapshot) Visible() [][]Cell {
	return s.Cells[s.HiddenRows:]
}

// CellAt returns the cell at col,row with the active piece drawn over the settled board.
func (s Snapshot) CellAt(col, row int) Cell {
	if s.Active != nil {
		for _, c := range s.Active.Cells {
			if c.X == col && c.Y == row {
				return CellOf(s.Active.Kind)
			}
		}
	}
	return s.Cells[row][col]
}
