package main

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/blockfall/runner"
	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

// sessionResult is what one soak worker hands back to be merged into the report.
type sessionResult struct {
	Seed      uint64
	Games     int
	Pieces    int
	Lines     int
	Score     int
	BestScore int
	Droughts  []int
	Ops       []runner.OpStats
	Updates   Stats
}

// soakSession plays games on one session until ctx is done or maxPieces pieces have locked,
// resetting with a fresh seed after every game over.
func soakSession(ctx context.Context, seed uint64, maxPieces int, log zerolog.Logger) (*sessionResult, error) {
	session, err := tetris.NewSession(tetris.DefaultConfig(), seed, tetris.WithLogger(log))
	if err != nil {
		return nil, err
	}

	r := runner.New(session, runner.Options{Logger: &log})
	b := newBot(seed)
	check := newChecker(session)
	res := &sessionResult{Seed: seed, Games: 1}

	finish := func() {
		res.Lines += session.Lines()
		res.Score += session.Score()
		res.BestScore = max(res.BestScore, session.Score())
	}

	for maxPieces == 0 || res.Pieces < maxPieces {
		if ctx.Err() != nil {
			break
		}

		if session.Phase().Terminal() {
			finish()
			next := seed + uint64(res.Games)<<32
			log.Debug().Int("game", res.Games).Int("score", session.Score()).Uint64("next_seed", next).Msg("game finished")
			session.Reset(next)
			check.restart(session)
			res.Games++
		}

		cmd, tick := b.next()
		start := time.Now()
		var out tetris.Outcome
		if tick {
			out, err = r.TickOnce()
		} else {
			out, err = r.Step(cmd)
		}
		res.Updates.Record(time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("seed %d game %d: %w", seed, res.Games, err)
		}

		if out.Locked {
			res.Pieces++
		}
		if err := check.after(session, out); err != nil {
			return nil, fmt.Errorf("seed %d game %d piece %d: %w\n%s", seed, res.Games, res.Pieces, err, session.Board())
		}
	}

	finish()
	res.Droughts = check.histogram()
	res.Ops = r.Stats()
	return res, nil
}
