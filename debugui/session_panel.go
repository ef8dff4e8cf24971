package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// SessionPanel shows the state of one session: counters, the queue, spawn statistics and a
// miniature of the board.
type SessionPanel struct {
	// CellSize is the side of a board cell in the miniature, in pixels.
	CellSize   float32
	ShowHidden bool
}

// NewSessionPanel returns a panel drawing 8 pixel cells.
func NewSessionPanel() *SessionPanel {
	return &SessionPanel{CellSize: 8}
}

func (sp *SessionPanel) Render(snap tetris.Snapshot) {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Phase: %s", snap.Phase))
	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Level: %d  Lines: %d", snap.Level, snap.Lines))
	imgui.Text(fmt.Sprintf("Fall Interval: %s", snap.FallInterval))
	imgui.Text(fmt.Sprintf("Next: %s", FormatQueue(snap.Next)))

	if snap.Active != nil {
		a := snap.Active
		imgui.Text(fmt.Sprintf("Active: %s rot %d at (%d, %d), ghost row %d", a.Kind, a.Rotation, a.Col, a.Row, a.GhostRow))
	}

	imgui.Separator()

	if imgui.TreeNodeStr("Spawned") {
		sp.renderSpawned(snap)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Board") {
		imgui.Checkbox("Show hidden rows", &sp.ShowHidden)
		sp.renderBoard(snap)
		imgui.TreePop()
	}

	imgui.End()
}

func (sp *SessionPanel) renderSpawned(snap tetris.Snapshot) {
	peak := 0
	for _, n := range snap.Spawned {
		peak = max(peak, n)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SpawnedTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		for _, kind := range tetris.Kinds {
			n := snap.Spawned[kind]
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(kind.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", n))

			if peak > 0 {
				barWidth := float32(n) / float32(peak) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(vec4(KindColor(kind)))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}
}

func (sp *SessionPanel) renderBoard(snap tetris.Snapshot) {
	first := snap.HiddenRows
	if sp.ShowHidden {
		first = 0
	}

	ghost := make(map[tetris.Point]bool, 4)
	if snap.Active != nil {
		for _, c := range snap.Active.GhostCells() {
			ghost[c] = true
		}
	}

	size := sp.CellSize
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()

	for row := first; row < snap.Height; row++ {
		for col := range snap.Width {
			cell := snap.CellAt(col, row)
			isGhost := false
			if !cell.Filled() && ghost[tetris.Point{X: col, Y: row}] {
				cell = tetris.CellOf(snap.Active.Kind)
				isGhost = true
			}

			x := origin.X + float32(col)*size
			y := origin.Y + float32(row-first)*size
			color := imgui.ColorU32Vec4(vec4(CellColor(cell, isGhost)))
			drawList.AddRectFilled(imgui.NewVec2(x, y), imgui.NewVec2(x+size-1, y+size-1), color)
		}
	}

	imgui.Dummy(imgui.NewVec2(float32(snap.Width)*size, float32(snap.Height-first)*size))
}
