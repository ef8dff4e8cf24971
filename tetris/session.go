package tetris

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrSessionOver is returned by Tick and Apply once the session reached GameOver.
	ErrSessionOver = errors.New("tetris: session over")
	// ErrUnknownCommand is returned for command values outside the Command enum.
	ErrUnknownCommand = errors.New("tetris: unknown command")
)

// Outcome describes what a single Tick or Apply did.
type Outcome struct {
	// Accepted is false when a move or rotation did not fit; the session is unchanged then.
	Accepted bool
	Locked   bool
	Cleared  int
	Awarded  int
	// Phases lists every phase entered while handling the call, in order.
	Phases []Phase
}

// Option configures a Session at construction.
type Option func(*sessionOptions)

type sessionOptions struct {
	randomizer Randomizer
	logger     zerolog.Logger
	board      *Board
}

// WithRandomizer replaces the seeded bag for the first game. Reset always returns to a bag.
func WithRandomizer(r Randomizer) Option {
	return func(o *sessionOptions) {
		o.randomizer = r
	}
}

// WithLogger attaches a logger for lifecycle events. Sessions are silent by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithBoard starts the session on a copy of b instead of an empty board. The board must have
// the configured dimensions.
func WithBoard(b *Board) Option {
	return func(o *sessionOptions) {
		o.board = b.Clone()
	}
}

// Session is one game: it owns the board, the falling piece, the queue and the score, and
// moves through its phases only when Tick or Apply is called.
type Session struct {
	cfg   Config
	seed  uint64
	log   zerolog.Logger
	rand  Randomizer
	board *Board
	piece Piece
	queue []Kind

	phase   Phase
	score   int
	level   int
	lines   int
	spawned [KindCount]int
}

// NewSession validates cfg and starts a game, spawning the first piece. The session may
// already be in GameOver if the board given with WithBoard blocks the spawn pose.
func NewSession(cfg Config, seed uint64, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := sessionOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.board == nil {
		o.board = NewBoard(cfg.Width, cfg.VisibleRows, cfg.HiddenRows)
	} else if o.board.Width() != cfg.Width || o.board.Height() != cfg.VisibleRows+cfg.HiddenRows || o.board.HiddenRows() != cfg.HiddenRows {
		return nil, fmt.Errorf("%w: board is %dx%d+%d, config wants %dx%d+%d", ErrInvalidConfig,
			o.board.Width(), o.board.Height()-o.board.HiddenRows(), o.board.HiddenRows(),
			cfg.Width, cfg.VisibleRows, cfg.HiddenRows)
	}
	if o.randomizer == nil {
		o.randomizer = NewBag(seed)
	}

	s := &Session{
		cfg:   cfg,
		seed:  seed,
		log:   o.logger,
		rand:  o.randomizer,
		board: o.board,
		phase: Spawning,
		level: cfg.StartLevel,
	}
	s.spawn(nil)
	return s, nil
}

// Reset discards the current game and starts a fresh one on an empty board with a bag
// seeded by seed. It is the only call accepted after GameOver.
func (s *Session) Reset(seed uint64) {
	*s = Session{
		cfg:   s.cfg,
		seed:  seed,
		log:   s.log,
		rand:  NewBag(seed),
		board: NewBoard(s.cfg.Width, s.cfg.VisibleRows, s.cfg.HiddenRows),
		phase: Spawning,
		level: s.cfg.StartLevel,
	}
	s.log.Debug().Uint64("seed", seed).Msg("session reset")
	s.spawn(nil)
}

// Phase returns the current phase; always Falling or GameOver between calls.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Lines returns the total number of cleared rows.
func (s *Session) Lines() int { return s.lines }

// Seed returns the seed the session was started or last reset with.
func (s *Session) Seed() uint64 { return s.seed }

// Config returns the session's configuration.
func (s *Session) Config() Config { return s.cfg }

// FallInterval is the tick cadence the caller should use at the current level.
func (s *Session) FallInterval() time.Duration {
	return s.cfg.FallInterval(s.level)
}

// Piece returns a copy of the falling piece. Meaningless once the session is over.
func (s *Session) Piece() Piece { return s.piece }

// Board returns a copy of the settled board.
func (s *Session) Board() *Board { return s.board.Clone() }

// Tick applies gravity: the piece falls one row, or locks if it cannot.
func (s *Session) Tick() (Outcome, error) {
	var out Outcome

	switch s.phase {
	case GameOver:
		return out, ErrSessionOver
	case Falling:
		out.Accepted = true
		if !s.piece.TryMove(s.board, 0, 1) {
			s.lock(&out)
		}
		return out, nil
	case Spawning, Locking, Clearing:
		panic(fmt.Sprintf("tetris: tick during transient phase %s", s.phase))
	default:
		panic(fmt.Sprintf("tetris: unknown phase %d", uint8(s.phase)))
	}
}

// Apply handles one player command. Moves and rotations that do not fit leave the session
// unchanged and report Accepted false.
func (s *Session) Apply(cmd Command) (Outcome, error) {
	var out Outcome

	switch s.phase {
	case GameOver:
		return out, ErrSessionOver
	case Falling:
	case Spawning, Locking, Clearing:
		panic(fmt.Sprintf("tetris: command during transient phase %s", s.phase))
	default:
		panic(fmt.Sprintf("tetris: unknown phase %d", uint8(s.phase)))
	}

	switch cmd {
	case MoveLeft:
		out.Accepted = s.piece.TryMove(s.board, -1, 0)
	case MoveRight:
		out.Accepted = s.piece.TryMove(s.board, 1, 0)
	case RotateCW:
		out.Accepted = s.piece.TryRotate(s.board, Clockwise)
	case RotateCCW:
		out.Accepted = s.piece.TryRotate(s.board, CounterClockwise)
	case SoftDrop:
		if s.piece.TryMove(s.board, 0, 1) {
			out.Accepted = true
			s.award(&out, s.cfg.SoftDropPoints)
		}
	case HardDrop:
		rows := s.piece.HardDrop(s.board)
		out.Accepted = true
		s.award(&out, rows*s.cfg.HardDropPoints)
		s.lock(&out)
	default:
		return out, fmt.Errorf("%w: %d", ErrUnknownCommand, uint8(cmd))
	}

	return out, nil
}

func (s *Session) award(out *Outcome, points int) {
	s.score += points
	out.Awarded += points
}

func (s *Session) enter(out *Outcome, to Phase) {
	if !s.phase.canEnter(to) {
		panic(fmt.Sprintf("tetris: illegal transition %s -> %s", s.phase, to))
	}
	s.phase = to
	if out != nil {
		out.Phases = append(out.Phases, to)
	}
}

// lock runs Locking, Clearing and the next Spawning for the grounded piece.
func (s *Session) lock(out *Outcome) {
	s.enter(out, Locking)
	s.board.Merge(s.piece.Kind, s.piece.Rotation, s.piece.Col, s.piece.Row)
	out.Locked = true

	s.enter(out, Clearing)
	cleared := s.board.ClearCompletedRows()
	if cleared > 0 {
		s.award(out, s.cfg.LineBonus(cleared, s.level))
		s.lines += cleared
		out.Cleared = cleared

		if level := s.cfg.LevelFor(s.lines); level != s.level {
			s.log.Debug().Int("level", level).Dur("fall_interval", s.cfg.FallInterval(level)).Msg("level up")
			s.level = level
		}
	}
	s.log.Debug().
		Stringer("kind", s.piece.Kind).
		Int("col", s.piece.Col).
		Int("row", s.piece.Row).
		Int("cleared", cleared).
		Int("score", s.score).
		Msg("piece locked")

	s.enter(out, Spawning)
	s.spawn(out)
}

// spawn pulls the next kind and places it at its spawn pose, ending the game if it collides.
// The session must already be in Spawning.
func (s *Session) spawn(out *Outcome) {
	kind := s.pop()
	s.piece = SpawnPiece(kind, s.board.Width(), s.board.HiddenRows())
	if !s.piece.Fits(s.board) {
		s.enter(out, GameOver)
		s.log.Debug().Stringer("kind", kind).Int("score", s.score).Int("lines", s.lines).Msg("game over")
		return
	}
	s.spawned[kind]++
	s.enter(out, Falling)
}

func (s *Session) fill() {
	for len(s.queue) < s.cfg.PreviewCount+1 {
		s.queue = append(s.queue, s.rand.Next())
	}
}

func (s *Session) pop() Kind {
	s.fill()
	kind := s.queue[0]
	s.queue = append(s.queue[:0], s.queue[1:]...)
	s.fill()
	return kind
}
