package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/runner"
)

// StatsPanel shows frame timing and the runner's per-operation statistics.
type StatsPanel struct {
	history *FrameHistory
}

func NewStatsPanel(historyFrames int) *StatsPanel {
	return &StatsPanel{history: NewFrameHistory(historyFrames)}
}

func (sp *StatsPanel) Render(stats []runner.OpStats, deltaTime float32) {
	if !imgui.BeginV("Runner Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sp.history.Push(deltaTime * 1000.0)
	avgFrameTime := sp.history.Average()

	imgui.Text(fmt.Sprintf("Session Calls: %d", runner.TotalCount(stats)))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := sp.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if imgui.TreeNodeStr("Operations") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("OpStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Operation")
			imgui.TableSetupColumn("Count")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, op := range stats {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(op.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", op.Count))
				imgui.TableNextColumn()
				imgui.Text(op.Avg.String())
				imgui.TableNextColumn()
				imgui.Text(op.Max.String())
				imgui.TableNextColumn()
				imgui.Text(op.Last.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
}

// NewFrameHistory panics if frames is not positive.
func NewFrameHistory(frames int) *FrameHistory {
	if frames <= 0 {
		panic(fmt.Sprintf("debugui: frame history of %d frames", frames))
	}
	return &FrameHistory{samples: make([]float32, frames)}
}

func (h *FrameHistory) Push(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
}

// Average is taken over the whole ring, including slots not yet written.
func (h *FrameHistory) Average() float32 {
	var sum float32
	for _, s := range h.samples {
		sum += s
	}
	return sum / float32(len(h.samples))
}

// Samples returns the ring buffer in storage order, for plotting.
func (h *FrameHistory) Samples() []float32 { return h.samples }

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
