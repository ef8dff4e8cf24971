// Package runner drives a tetris.Session in real time: gravity ticks at the session's fall
// interval and player commands arrive on a channel, all applied from one goroutine.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

// OpStats provides execution statistics for one kind of session call.
type OpStats struct {
	Name  string
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Last  time.Duration
	Total time.Duration
}

type opStatsInternal struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (s *opStatsInternal) record(d time.Duration) {
	s.count++
	s.last = d
	s.total += d
	if d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
}

// Options configures a Runner.
type Options struct {
	// OnUpdate, if set, receives a snapshot after every tick or command.
	OnUpdate func(tetris.Snapshot)
	// Logger defaults to zerolog.Nop().
	Logger *zerolog.Logger
}

// Runner owns the timing loop around a session. It is not safe for concurrent use; only the
// channel passed to Run crosses goroutines.
type Runner struct {
	session *tetris.Session
	opts    Options
	log     zerolog.Logger

	// stats[0] is gravity, stats[1+cmd] is each command.
	stats []*opStatsInternal
}

// New creates a runner for session. The zero Options logs nothing and reports nothing.
func New(session *tetris.Session, opts Options) *Runner {
	r := &Runner{
		session: session,
		opts:    opts,
		log:     zerolog.Nop(),
	}
	if opts.Logger != nil {
		r.log = *opts.Logger
	}

	r.stats = append(r.stats, &opStatsInternal{name: "tick", min: time.Duration(1<<63 - 1)})
	for _, cmd := range tetris.Commands {
		r.stats = append(r.stats, &opStatsInternal{name: cmd.String(), min: time.Duration(1<<63 - 1)})
	}
	return r
}

// Session returns the driven session.
func (r *Runner) Session() *tetris.Session { return r.session }

// TickOnce applies one gravity step.
func (r *Runner) TickOnce() (tetris.Outcome, error) {
	start := time.Now()
	out, err := r.session.Tick()
	r.stats[0].record(time.Since(start))

	r.notify(out, err)
	return out, err
}

// Step applies one player command.
func (r *Runner) Step(cmd tetris.Command) (tetris.Outcome, error) {
	start := time.Now()
	out, err := r.session.Apply(cmd)
	if int(cmd) < len(tetris.Commands) {
		r.stats[1+int(cmd)].record(time.Since(start))
	}

	r.notify(out, err)
	return out, err
}

func (r *Runner) notify(out tetris.Outcome, err error) {
	if err != nil {
		return
	}
	if out.Locked {
		r.log.Debug().
			Int("cleared", out.Cleared).
			Int("awarded", out.Awarded).
			Int("score", r.session.Score()).
			Msg("lock")
	}
	if r.opts.OnUpdate != nil {
		r.opts.OnUpdate(r.session.Snapshot())
	}
}

// Run ticks the session at its fall interval and applies commands as they arrive until the
// session is over or ctx is done. It returns nil on game over and ctx.Err() on cancellation.
// A closed commands channel leaves gravity running.
func (r *Runner) Run(ctx context.Context, commands <-chan tetris.Command) error {
	if r.session.Phase().Terminal() {
		return nil
	}

	interval := r.session.FallInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info().Uint64("seed", r.session.Seed()).Dur("fall_interval", interval).Msg("runner started")

	for {
		var err error
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			_, err = r.Step(cmd)
		case <-ticker.C:
			_, err = r.TickOnce()
		}

		switch {
		case errors.Is(err, tetris.ErrSessionOver):
			return nil
		case errors.Is(err, tetris.ErrUnknownCommand):
			r.log.Warn().Err(err).Msg("dropped command")
		case err != nil:
			return err
		}

		if r.session.Phase().Terminal() {
			r.log.Info().
				Int("score", r.session.Score()).
				Int("lines", r.session.Lines()).
				Msg("game over")
			return nil
		}

		// Level ups shorten the period; the next tick starts a full new interval.
		if next := r.session.FallInterval(); next != interval {
			interval = next
			ticker.Reset(interval)
		}
	}
}

// Stats returns per-operation timing, gravity first and then each command in
// tetris.Commands order.
func (r *Runner) Stats() []OpStats {
	out := make([]OpStats, len(r.stats))
	for i, internal := range r.stats {
		avg := time.Duration(0)
		minimum := time.Duration(0)
		if internal.count > 0 {
			avg = internal.total / time.Duration(internal.count)
			minimum = internal.min
		}

		out[i] = OpStats{
			Name:  internal.name,
			Count: internal.count,
			Min:   minimum,
			Max:   internal.max,
			Avg:   avg,
			Last:  internal.last,
			Total: internal.total,
		}
	}
	return out
}

// TotalCount returns the number of session calls summed over stats.
func TotalCount(stats []OpStats) int64 {
	var n int64
	for _, op := range stats {
		n += op.Count
	}
	return n
}
