package tetris_test

import (
	"math/rand/v2"
	"path"
	"strconv"
	"strings"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

func mustParse(t *testing.T, text string, hidden int) *tetris.Board {
	t.Helper()
	b, err := tetris.ParseBoard(text, hidden)
	require.NoError(t, err)
	return b
}

type clearCase struct {
	before, after string
	cleared       int
}

func loadClearCases(t *testing.T) map[string]*clearCase {
	t.Helper()
	archive, err := txtar.ParseFile("testdata/clear.txtar")
	require.NoError(t, err)

	cases := make(map[string]*clearCase)
	for _, f := range archive.Files {
		name, part := path.Split(f.Name)
		name = strings.TrimSuffix(name, "/")
		c, ok := cases[name]
		if !ok {
			c = &clearCase{}
			cases[name] = c
		}
		switch part {
		case "before":
			c.before = string(f.Data)
		case "after":
			c.after = string(f.Data)
		case "cleared":
			n, err := strconv.Atoi(strings.TrimSpace(string(f.Data)))
			require.NoError(t, err, f.Name)
			c.cleared = n
		default:
			t.Fatalf("unexpected fixture file %s", f.Name)
		}
	}
	return cases
}

func TestBoardClearCompletedRows(t *testing.T) {
	cases := loadClearCases(t)
	require.NotEmpty(t, cases)

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			b := mustParse(t, c.before, 0)
			want := mustParse(t, c.after, 0)

			assert.Equal(t, c.cleared, b.ClearCompletedRows())
			assert.Equal(t, want.String(), b.String())
			assert.Empty(t, b.FullRows())
		})
	}
}

// clearOne removes a single row by shifting everything above it down one row.
func clearOne(b *tetris.Board, row int) {
	for r := row; r > 0; r-- {
		for c := range b.Width() {
			b.Set(c, r, b.At(c, r-1))
		}
	}
	for c := range b.Width() {
		b.Set(c, 0, tetris.Empty)
	}
}

func TestBoardClearMatchesSequentialClears(t *testing.T) {
	cases := loadClearCases(t)
	b := mustParse(t, cases["gap"].before, 0)
	full := b.FullRows()
	require.Equal(t, []int{2, 5}, full)

	t.Run("top down", func(t *testing.T) {
		seq := b.Clone()
		// Removing a row never moves rows below it, so ascending indices stay valid.
		for _, r := range full {
			clearOne(seq, r)
		}
		once := b.Clone()
		once.ClearCompletedRows()
		assert.True(t, once.Equal(seq), "simultaneous:\n%s\nsequential:\n%s", once, seq)
	})

	t.Run("bottom up", func(t *testing.T) {
		seq := b.Clone()
		for i := len(full) - 1; i >= 0; i-- {
			// Each clear below shifts the remaining target down one row.
			clearOne(seq, full[i]+(len(full)-1-i))
		}
		once := b.Clone()
		once.ClearCompletedRows()
		assert.True(t, once.Equal(seq), "simultaneous:\n%s\nsequential:\n%s", once, seq)
	})
}

func randomBoard(r *rand.Rand, width, height int) *tetris.Board {
	b := tetris.NewBoard(width, height, 0)
	for row := range height {
		switch r.IntN(3) {
		case 0:
			continue
		case 1:
			for col := range width {
				b.Set(col, row, tetris.CellOf(tetris.Kinds[r.IntN(tetris.KindCount)]))
			}
		default:
			for col := range width {
				if r.IntN(2) == 0 {
					b.Set(col, row, tetris.CellOf(tetris.Kinds[r.IntN(tetris.KindCount)]))
				}
			}
		}
	}
	return b
}

func TestBoardClearPreservesSurvivingRows(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := range 200 {
		b := randomBoard(r, 6, 12)
		full := b.FullRows()

		var survivors []string
		rows := strings.Split(b.String(), "\n")
		for idx, row := range rows {
			if !contains(full, idx) {
				survivors = append(survivors, row)
			}
		}

		cleared := b.ClearCompletedRows()
		require.Equal(t, len(full), cleared, "board %d", i)

		after := strings.Split(b.String(), "\n")
		for idx := range cleared {
			assert.Equal(t, strings.Repeat(".", 6), after[idx], "board %d row %d should be empty", i, idx)
		}
		assert.Equal(t, survivors, after[cleared:], "board %d", i)
	}
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func TestBoardCanPlace(t *testing.T) {
	b := tetris.NewBoard(10, 20, 2)
	b.Set(4, 10, tetris.CellOf(tetris.Z))

	tests := []struct {
		name     string
		kind     tetris.Kind
		rotation int
		col, row int
		want     bool
	}{
		{"empty area", tetris.T, 0, 0, 0, true},
		{"left wall", tetris.T, 0, -1, 5, false},
		{"right wall", tetris.I, 0, 7, 5, false},
		{"flush right", tetris.I, 0, 6, 5, true},
		{"floor", tetris.O, 0, 0, 21, false},
		{"resting on floor", tetris.O, 0, 0, 20, true},
		{"above top", tetris.O, 0, 0, -1, false},
		{"overlap", tetris.O, 0, 3, 9, false},
		{"beside occupied", tetris.O, 0, 5, 9, true},
		{"vertical I negative anchor", tetris.I, 1, -2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.CanPlace(tt.kind, tt.rotation, tt.col, tt.row))
		})
	}
}

func TestBoardCanPlaceAgreesWithCells(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	b := randomBoard(r, 8, 10)
	b.ClearCompletedRows()

	for _, kind := range tetris.Kinds {
		for rot := range tetris.RotationCount {
			for col := -3; col < b.Width()+1; col++ {
				for row := -3; row < b.Height()+1; row++ {
					want := true
					for _, c := range tetris.Cells(kind, rot) {
						if !b.IsCellFree(col+c.X, row+c.Y) {
							want = false
						}
					}
					if got := b.CanPlace(kind, rot, col, row); got != want {
						t.Fatalf("CanPlace(%s, %d, %d, %d) = %v, want %v", kind, rot, col, row, got, want)
					}
				}
			}
		}
	}
}

func TestBoardIsCellFree(t *testing.T) {
	b := tetris.NewBoard(4, 4, 1)
	b.Set(1, 1, tetris.CellOf(tetris.S))

	assert.True(t, b.IsCellFree(0, 0))
	assert.False(t, b.IsCellFree(1, 1))
	assert.False(t, b.IsCellFree(-1, 0))
	assert.False(t, b.IsCellFree(4, 0))
	assert.False(t, b.IsCellFree(0, -1))
	assert.False(t, b.IsCellFree(0, 5))
	assert.True(t, b.IsCellFree(3, 4))
}

func TestBoardMerge(t *testing.T) {
	t.Run("writes kind tagged cells", func(t *testing.T) {
		b := tetris.NewBoard(4, 4, 0)
		b.Merge(tetris.T, 0, 0, 2)

		want := mustParse(t, `
			....
			....
			.T..
			TTT.
		`, 0)
		assert.Equal(t, want.String(), b.String())

		k, ok := b.At(1, 2).Kind()
		assert.True(t, ok)
		assert.Equal(t, tetris.T, k)
	})

	t.Run("panics on collision", func(t *testing.T) {
		b := tetris.NewBoard(4, 4, 0)
		b.Merge(tetris.O, 0, 0, 2)
		before := b.String()

		assert.Panics(t, func() { b.Merge(tetris.O, 0, 1, 2) })
		assert.Equal(t, before, b.String())
	})

	t.Run("panics out of bounds", func(t *testing.T) {
		b := tetris.NewBoard(4, 4, 0)
		assert.Panics(t, func() { b.Merge(tetris.I, 0, 1, 0) })
	})

	t.Run("fills gap and clears", func(t *testing.T) {
		b := mustParse(t, `
			..........
			..........
			..........
			..........
			.ZZSSOOJJL
		`, 0)
		require.True(t, b.CanPlace(tetris.I, 1, -2, 1))
		b.Merge(tetris.I, 1, -2, 1)

		assert.Equal(t, 1, b.ClearCompletedRows())
		want := mustParse(t, `
			..........
			..........
			I.........
			I.........
			I.........
		`, 0)
		assert.Equal(t, want.String(), b.String())
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		text := "....\n.SS.\nSS..\nIIII"
		b := mustParse(t, text, 1)
		assert.Equal(t, text, b.String())
		assert.Equal(t, 4, b.Width())
		assert.Equal(t, 4, b.Height())
		assert.Equal(t, 1, b.HiddenRows())
	})

	tests := []struct {
		name string
		text string
	}{
		{"empty", "  \n"},
		{"ragged", "....\n..."},
		{"unknown cell", "....\n..X."},
		{"only hidden rows", "...."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tetris.ParseBoard(tt.text, 1)
			assert.Error(t, err)
		})
	}

	t.Run("negative hidden rows", func(t *testing.T) {
		_, err := tetris.ParseBoard("....\n....", -1)
		assert.ErrorContains(t, err, "negative hidden rows")
	})
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := tetris.NewBoard(4, 4, 0)
	c := b.Clone()
	c.Set(0, 0, tetris.CellOf(tetris.L))

	assert.Equal(t, tetris.Empty, b.At(0, 0))
	assert.False(t, b.Equal(c))

	rows := b.Rows()
	rows[1][1] = tetris.CellOf(tetris.J)
	assert.Equal(t, tetris.Empty, b.At(1, 1))
}
