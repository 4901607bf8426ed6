// Package tui plays the match in a terminal.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"pingpong/internal/audio"
	"pingpong/internal/game"
)

type Simulation interface {
	Tick(in game.Input) game.TickResult
	Snapshot() game.Snapshot
}

type Broadcaster interface {
	Broadcast(snap game.Snapshot, cues []game.Cue)
}

// App owns the terminal loop. Events arrive on a channel and every engine
// call happens on the loop goroutine.
type App struct {
	screen   tcell.Screen
	engine   Simulation
	audio    audio.Player
	feed     Broadcaster
	controls Controls
	view     *View
	tps      int
	now      uint64
	logger   zerolog.Logger
}

type Option func(*App)

func WithBroadcaster(b Broadcaster) Option {
	return func(a *App) { a.feed = b }
}

// WithTPS sets the tick rate. Non-positive values keep the default of 60.
func WithTPS(tps int) Option {
	return func(a *App) {
		if tps > 0 {
			a.tps = tps
		}
	}
}

// NewApp takes an initialized screen. The caller still owns Fini.
func NewApp(screen tcell.Screen, engine Simulation, player audio.Player, logger zerolog.Logger, opts ...Option) *App {
	cols, rows := screen.Size()
	a := &App{
		screen: screen,
		engine: engine,
		audio:  player,
		view:   NewView(cols, rows, engine.Snapshot().Court),
		tps:    60,
		logger: logger.With().Str("component", "tui").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HandleEvent applies one terminal event and reports whether to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.controls.HandleKey(ev, a.now)
	case *tcell.EventResize:
		a.view.Resize(ev.Size())
		a.screen.Sync()
	}
	return false
}

// Step runs one tick and redraws. It reports whether the player chose to quit.
func (a *App) Step() bool {
	res := a.engine.Tick(a.controls.Input(a.now))
	a.now++

	for _, cue := range res.Cues {
		a.audio.Play(cue)
	}
	snap := a.engine.Snapshot()
	if a.feed != nil {
		a.feed.Broadcast(snap, res.Cues)
	}

	a.view.Draw(a.screen, snap)
	a.screen.Show()
	return res.Quit
}

// Run blocks until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.tps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.logger.Info().Int("tps", a.tps).Msg("terminal loop started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.HandleEvent(ev) {
				a.logger.Info().Msg("interrupted")
				return nil
			}
		case <-ticker.C:
			if a.Step() {
				a.logger.Info().Msg("quit from game-over menu")
				return nil
			}
		}
	}
}
