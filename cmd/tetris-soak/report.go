package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/blockfall/runner"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	Sessions       int
	Seed           uint64
	MaxPieces      int
	GCPauseMetrics bool

	// Results
	Games      int
	Pieces     int
	Lines      int
	Score      int
	BestScore  int
	TotalTime  time.Duration
	UpdateTime Stats
	Ops        []runner.OpStats
	// Droughts[gap] counts how often a kind reappeared after gap other pieces.
	Droughts      []int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Stats accumulates call durations without retaining them.
type Stats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Total time.Duration
}

func (s *Stats) Record(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	s.Max = max(s.Max, d)
	s.Total += d
	s.Count++
}

// Merge folds o into s.
func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 || o.Min < s.Min {
		s.Min = o.Min
	}
	s.Max = max(s.Max, o.Max)
	s.Total += o.Total
	s.Count += o.Count
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.Total / time.Duration(s.Count)
}

// Add merges one session's results into the report.
func (r *Report) Add(res *sessionResult) {
	if res == nil {
		return
	}

	r.Games += res.Games
	r.Pieces += res.Pieces
	r.Lines += res.Lines
	r.Score += res.Score
	r.BestScore = max(r.BestScore, res.BestScore)
	r.UpdateTime.Merge(res.Updates)

	for len(r.Droughts) < len(res.Droughts) {
		r.Droughts = append(r.Droughts, 0)
	}
	for gap, n := range res.Droughts {
		r.Droughts[gap] += n
	}

	if r.Ops == nil {
		r.Ops = make([]runner.OpStats, len(res.Ops))
		for i, op := range res.Ops {
			r.Ops[i].Name = op.Name
		}
	}
	for i, op := range res.Ops {
		merged := &r.Ops[i]
		if op.Count == 0 {
			continue
		}
		if merged.Count == 0 || op.Min < merged.Min {
			merged.Min = op.Min
		}
		merged.Max = max(merged.Max, op.Max)
		merged.Count += op.Count
		merged.Total += op.Total
		merged.Last = op.Last
	}
}

// Finalize computes the aggregate timings once every session has been added.
func (r *Report) Finalize() {
	r.UpdateTime.Finalize()
	for i := range r.Ops {
		if r.Ops[i].Count > 0 {
			r.Ops[i].Avg = r.Ops[i].Total / time.Duration(r.Ops[i].Count)
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetris Soak Report

## Run Configuration
- **Run Duration:** {{.Duration}}
- **Sessions:** {{.Sessions}}
- **Base Seed:** {{.Seed}}
- **Piece Limit:** {{if .MaxPieces}}{{.MaxPieces}}{{else}}none{{end}}

## Play Results
- **Games:** {{.Games}}
- **Pieces Locked:** {{.Pieces}}
- **Lines Cleared:** {{.Lines}}
- **Total Score:** {{.Score}}
- **Best Game:** {{.BestScore}}

## Performance Results
- **Total Updates:** {{.UpdateTime.Count}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| Operation | Count | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Ops}}
| {{.Name}} | {{.Count}} | {{.Avg}} | {{.Min}} | {{.Max}} |
{{- end}}

## Piece Droughts
{{- range $gap, $n := .Droughts}}
- {{printf "%2d" $gap}}: {{printf "%8d" $n}} {{bar $n $.Droughts}}
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"bar": func(n int, all []int) string {
			peak := 0
			for _, v := range all {
				peak = max(peak, v)
			}
			if peak == 0 {
				return ""
			}
			return strings.Repeat("#", n*40/peak)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
