package game

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// TickResult reports what happened during one tick.
type TickResult struct {
	Tick      uint64
	Cues      []Cue
	Scorer    Side
	Restarted bool
	// Quit is set when the player asked to leave from the game-over menu.
	Quit bool
}

// Engine owns every entity of one match and advances them together.
// It is not safe for concurrent use; the frame loop drives it from one
// goroutine.
type Engine struct {
	court Court
	human *Paddle
	ai    *Paddle
	ball  *Ball
	brain AIController
	match *Match
	tick  uint64

	logger zerolog.Logger
}

type Option func(*engineOptions)

type engineOptions struct {
	rng    RandomSource
	logger zerolog.Logger
	bestOf BestOf
	court  Court
}

// WithRandomSource replaces the serve randomness, mostly for tests.
func WithRandomSource(rng RandomSource) Option {
	return func(o *engineOptions) { o.rng = rng }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

// WithBestOf sets the length of the first match.
func WithBestOf(bestOf BestOf) Option {
	return func(o *engineOptions) { o.bestOf = bestOf }
}

func WithCourt(court Court) Option {
	return func(o *engineOptions) { o.court = court }
}

func NewEngine(opts ...Option) (*Engine, error) {
	o := engineOptions{
		logger: zerolog.Nop(),
		bestOf: DefaultBestOf,
		court:  DefaultCourt(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRandomSource(0)
	}

	match, err := NewMatch(o.bestOf)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create match")
	}

	humanSpawn, aiSpawn := o.court.PaddleSpawns()
	ballSpawn := o.court.BallSpawn()

	e := &Engine{
		court:  o.court,
		human:  NewPaddle(SideHuman, humanSpawn.X, humanSpawn.Y),
		ai:     NewPaddle(SideAI, aiSpawn.X, aiSpawn.Y),
		ball:   NewBall(ballSpawn.X, ballSpawn.Y, BallSize, BallSize, o.court, o.rng),
		brain:  NewAIController(),
		match:  match,
		logger: o.logger.With().Str("component", "engine").Logger(),
	}
	e.logger.Info().Int("best_of", int(match.BestOf)).Msg("match started")
	return e, nil
}

// Tick runs one simulation step. While the match is over only in.Command is
// looked at; paddles and ball stay where they are.
func (e *Engine) Tick(in Input) TickResult {
	e.tick++
	res := TickResult{Tick: e.tick}

	if e.match.Phase == PhaseGameOver {
		e.handleCommand(in.Command, &res)
		return res
	}

	if in.Up {
		e.human.Move(-PaddleStep, e.court.Height)
	}
	if in.Down {
		e.human.Move(PaddleStep, e.court.Height)
	}

	if e.ball.Move() {
		res.Cues = append(res.Cues, CueWallBounce)
	}
	if e.ball.CheckCollision(e.human.Rect(), e.ai.Rect()) {
		res.Cues = append(res.Cues, CuePaddleHit)
	}

	ball := e.ball.Rect()
	switch {
	case ball.Left() <= 0:
		res.Scorer = SideAI
	case ball.Right() >= e.court.Width:
		res.Scorer = SideHuman
	}
	if res.Scorer != SideNone {
		res.Cues = append(res.Cues, CueScore)
		e.ball.Reset()
		over := e.match.Award(res.Scorer)
		e.logger.Debug().
			Uint64("tick", e.tick).
			Str("scorer", res.Scorer.String()).
			Int("player_score", e.match.PlayerScore).
			Int("ai_score", e.match.AIScore).
			Msg("point scored")
		if over {
			e.logger.Info().
				Str("winner", e.match.Winner().String()).
				Int("player_score", e.match.PlayerScore).
				Int("ai_score", e.match.AIScore).
				Msg("match over")
		}
	}

	e.brain.Track(e.ai, e.ball.Rect(), e.court.Height)
	return res
}

func (e *Engine) handleCommand(cmd Command, res *TickResult) {
	if cmd == CommandQuit {
		res.Quit = true
		return
	}
	bestOf, ok := cmd.BestOf()
	if !ok {
		return
	}
	// Commands only produce valid lengths, so Restart cannot fail here.
	if err := e.Restart(bestOf); err == nil {
		res.Restarted = true
	}
}

// Restart begins a new match of the given length with the ball on its spawn.
// Paddles keep their positions.
func (e *Engine) Restart(bestOf BestOf) error {
	if err := e.match.Restart(bestOf); err != nil {
		return err
	}
	e.ball.Reset()
	e.logger.Info().Int("best_of", int(bestOf)).Msg("match started")
	return nil
}

func (e *Engine) Phase() Phase { return e.match.Phase }

// Match returns a copy of the score state.
func (e *Engine) Match() Match { return *e.match }

func (e *Engine) Court() Court { return e.court }

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        e.tick,
		Court:       e.court,
		Human:       e.human.Rect(),
		AI:          e.ai.Rect(),
		Ball:        e.ball.Rect(),
		PlayerScore: e.match.PlayerScore,
		AIScore:     e.match.AIScore,
		Phase:       e.match.Phase,
		BestOf:      e.match.BestOf,
	}
	if s.Phase == PhaseGameOver {
		s.Menu = append([]string(nil), MenuLines...)
	}
	return s
}
