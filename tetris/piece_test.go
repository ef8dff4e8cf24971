package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardBoard() *tetris.Board {
	return tetris.NewBoard(10, 20, 2)
}

func TestPieceTryMove(t *testing.T) {
	b := standardBoard()

	t.Run("commits on success", func(t *testing.T) {
		p := tetris.SpawnPiece(tetris.T, 10, 2)
		require.True(t, p.TryMove(b, -1, 0))
		assert.Equal(t, 2, p.Col)
		require.True(t, p.TryMove(b, 0, 1))
		assert.Equal(t, 2, p.Row)
	})

	t.Run("unchanged on failure", func(t *testing.T) {
		p := tetris.Piece{Kind: tetris.O, Col: 0, Row: 5}
		before := p
		assert.False(t, p.TryMove(b, -1, 0))
		assert.Equal(t, before, p)
	})

	t.Run("walks to the wall", func(t *testing.T) {
		p := tetris.SpawnPiece(tetris.I, 10, 2)
		moves := 0
		for p.TryMove(b, 1, 0) {
			moves++
		}
		assert.Equal(t, 3, moves)
		assert.Equal(t, 9, p.Cells()[3].X)
	})
}

func TestPieceTryRotateWallKick(t *testing.T) {
	b := standardBoard()

	// Vertical T pointing right, flush against the left wall.
	p := tetris.Piece{Kind: tetris.T, Rotation: 1, Col: -1, Row: 10}
	require.True(t, p.Fits(b))
	require.False(t, b.CanPlace(tetris.T, 2, p.Col, p.Row), "naive rotation must collide")

	before := p
	require.True(t, p.TryRotate(b, tetris.Clockwise))

	assert.Equal(t, 2, p.Rotation)
	assert.Equal(t, 0, p.Col, "expected the (+1,0) kick")
	assert.Equal(t, 10, p.Row)
	assert.NotEqual(t, before, p)
	assert.True(t, p.Fits(b))
}

func TestPieceTryRotateKicks(t *testing.T) {
	b := standardBoard()

	tests := []struct {
		name    string
		piece   tetris.Piece
		dir     tetris.Direction
		wantRot int
		wantCol int
		wantRow int
	}{
		{
			name:    "no kick needed",
			piece:   tetris.Piece{Kind: tetris.T, Rotation: 0, Col: 4, Row: 10},
			dir:     tetris.Clockwise,
			wantRot: 1, wantCol: 4, wantRow: 10,
		},
		{
			name:    "I off the right wall",
			piece:   tetris.Piece{Kind: tetris.I, Rotation: 1, Col: 7, Row: 5},
			dir:     tetris.Clockwise,
			wantRot: 2, wantCol: 6, wantRow: 5,
		},
		{
			name:    "T counter-clockwise off the right wall",
			piece:   tetris.Piece{Kind: tetris.T, Rotation: 3, Col: 8, Row: 5},
			dir:     tetris.CounterClockwise,
			wantRot: 2, wantCol: 7, wantRow: 5,
		},
		{
			name:    "O turns in place",
			piece:   tetris.Piece{Kind: tetris.O, Rotation: 3, Col: 8, Row: 20},
			dir:     tetris.Clockwise,
			wantRot: 0, wantCol: 8, wantRow: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.piece
			require.True(t, p.Fits(b))
			require.True(t, p.TryRotate(b, tt.dir))
			assert.Equal(t, tt.wantRot, p.Rotation)
			assert.Equal(t, tt.wantCol, p.Col)
			assert.Equal(t, tt.wantRow, p.Row)
		})
	}
}

func TestPieceTryRotateBlocked(t *testing.T) {
	b := standardBoard()
	p := tetris.Piece{Kind: tetris.T, Rotation: 0, Col: 3, Row: 10}

	own := make(map[tetris.Point]bool)
	for _, c := range p.Cells() {
		own[c] = true
	}
	for row := range b.Height() {
		for col := range b.Width() {
			if !own[tetris.Point{X: col, Y: row}] {
				b.Set(col, row, tetris.CellOf(tetris.Z))
			}
		}
	}

	before := p
	assert.False(t, p.TryRotate(b, tetris.Clockwise))
	assert.False(t, p.TryRotate(b, tetris.CounterClockwise))
	assert.Equal(t, before, p)
}

func TestPieceHardDrop(t *testing.T) {
	b := standardBoard()
	p := tetris.SpawnPiece(tetris.O, 10, 2)

	ghost := p.GhostRow(b)
	assert.False(t, p.IsGrounded(b))

	assert.Equal(t, 19, p.HardDrop(b))
	assert.Equal(t, 20, p.Row)
	assert.Equal(t, ghost, p.Row)
	assert.True(t, p.IsGrounded(b))
	assert.Equal(t, 0, p.HardDrop(b))
}

func TestPieceGroundedOnStack(t *testing.T) {
	b := standardBoard()
	b.Set(4, 12, tetris.CellOf(tetris.L))

	p := tetris.Piece{Kind: tetris.O, Col: 4, Row: 10}
	assert.True(t, p.IsGrounded(b))

	p.Col = 5
	assert.False(t, p.IsGrounded(b))
}
