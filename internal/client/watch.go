package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pingpong/internal/audio"
	"pingpong/internal/game"
	"pingpong/internal/net"
)

// ErrFeedClosed ends a watch session when the host goes away.
var ErrFeedClosed = eris.New("spectator feed closed")

// SnapshotSource is where a Watcher gets frames from. NetClient implements it.
type SnapshotSource interface {
	GetSnapshot() *net.SnapMessage
	Done() <-chan struct{}
}

// Watcher is the spectator ebiten.Game. It draws what the host sends and
// plays the host's cues; it never sends input back.
type Watcher struct {
	source   SnapshotSource
	renderer *Renderer
	audio    audio.Player
	keys     KeySource
	snap     *game.Snapshot
	logger   zerolog.Logger
}

func NewWatcher(source SnapshotSource, player audio.Player, logger zerolog.Logger) *Watcher {
	return &Watcher{
		source:   source,
		renderer: NewRenderer(),
		audio:    player,
		keys:     ebitenKeys{},
		logger:   logger.With().Str("component", "watcher").Logger(),
	}
}

func (w *Watcher) Update() error {
	if w.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Drain everything that arrived since the last frame so no cue is lost,
	// then show the newest picture.
	for {
		msg := w.source.GetSnapshot()
		if msg == nil {
			break
		}
		for _, cue := range msg.Cues {
			w.audio.Play(cue)
		}
		snap := msg.Snapshot
		w.snap = &snap
	}

	select {
	case <-w.source.Done():
		return ErrFeedClosed
	default:
	}
	return nil
}

func (w *Watcher) Draw(screen *ebiten.Image) {
	if w.snap == nil {
		w.renderer.DrawWaiting(screen, "Waiting for host...")
		return
	}
	w.renderer.Draw(screen, *w.snap)
}

func (w *Watcher) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
