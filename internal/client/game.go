package client

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"pingpong/internal/audio"
	"pingpong/internal/game"
)

// Broadcaster receives every tick after it is simulated. The spectator hub
// implements it.
type Broadcaster interface {
	Broadcast(snap game.Snapshot, cues []game.Cue)
}

// Simulation is the part of *game.Engine the window needs.
type Simulation interface {
	Tick(in game.Input) game.TickResult
	Snapshot() game.Snapshot
}

// Game is the local-play ebiten.Game: keyboard in, engine tick, picture and
// sound out.
type Game struct {
	engine   Simulation
	renderer *Renderer
	audio    audio.Player
	keys     KeySource
	feed     Broadcaster
	snap     game.Snapshot
	logger   zerolog.Logger
}

type GameOption func(*Game)

// WithBroadcaster mirrors every tick to b.
func WithBroadcaster(b Broadcaster) GameOption {
	return func(g *Game) { g.feed = b }
}

func WithKeySource(keys KeySource) GameOption {
	return func(g *Game) { g.keys = keys }
}

func NewGame(engine Simulation, player audio.Player, logger zerolog.Logger, opts ...GameOption) *Game {
	g := &Game{
		engine:   engine,
		renderer: NewRenderer(),
		audio:    player,
		keys:     ebitenKeys{},
		snap:     engine.Snapshot(),
		logger:   logger.With().Str("component", "client").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Update() error {
	res := g.engine.Tick(ReadInput(g.keys))

	for _, cue := range res.Cues {
		g.audio.Play(cue)
	}
	g.snap = g.engine.Snapshot()
	if g.feed != nil {
		g.feed.Broadcast(g.snap, res.Cues)
	}

	if res.Quit {
		g.logger.Info().Msg("quit from game-over menu")
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.snap)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	c := g.snap.Court
	return int(c.Width), int(c.Height)
}

// Run opens the window and blocks until the player quits, closes it, or ctx
// is cancelled.
func Run(ctx context.Context, g ebiten.Game, title string, tps int) error {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(&untilDone{Game: g, ctx: ctx})
}

type untilDone struct {
	ebiten.Game
	ctx context.Context
}

func (u *untilDone) Update() error {
	if u.ctx.Err() != nil {
		return ebiten.Termination
	}
	return u.Game.Update()
}
