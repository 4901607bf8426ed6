package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pingpong/internal/game"
)

// Player turns simulation cues into sound. Play must return immediately.
type Player interface {
	Play(cue game.Cue)
	Close()
}

type Config struct {
	Enabled   bool
	Volume    float64 // 0..1
	AssetsDir string
}

// Silent drops every cue.
type Silent struct{}

func (Silent) Play(game.Cue) {}
func (Silent) Close()        {}

// BeepPlayer mixes cue buffers into the system speaker.
type BeepPlayer struct {
	sounds map[game.Cue]*beep.Buffer
	volume float64

	mu     sync.Mutex
	closed bool
}

// NewPlayer opens the speaker and loads the cue sounds. Audio problems are
// never fatal: the game falls back to a Silent player and logs why.
func NewPlayer(cfg Config, logger zerolog.Logger) Player {
	logger = logger.With().Str("component", "audio").Logger()
	if !cfg.Enabled || cfg.Volume == 0 {
		logger.Info().Msg("audio disabled")
		return Silent{}
	}

	p, err := newBeepPlayer(cfg, logger)
	if err != nil {
		logger.Warn().Str("error", eris.ToString(err, false)).Msg("audio unavailable, continuing without sound")
		return Silent{}
	}
	return p
}

func newBeepPlayer(cfg Config, logger zerolog.Logger) (*BeepPlayer, error) {
	sounds, synthesized, err := loadSounds(cfg.AssetsDir)
	if err != nil {
		return nil, err
	}
	for _, cue := range synthesized {
		logger.Debug().Str("cue", string(cue)).Str("dir", cfg.AssetsDir).Msg("no wav asset, using generated tone")
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, eris.Wrap(err, "failed to initialize speaker")
	}
	return &BeepPlayer{sounds: sounds, volume: cfg.Volume}, nil
}

func (p *BeepPlayer) Play(cue game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if s := p.streamer(cue); s != nil {
		speaker.Play(s)
	}
}

// streamer returns a fresh volume-adjusted stream for cue, or nil if cue is unknown.
func (p *BeepPlayer) streamer(cue game.Cue) beep.Streamer {
	buf, ok := p.sounds[cue]
	if !ok {
		return nil
	}
	return &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   math.Log2(p.volume),
		Silent:   p.volume <= 0,
	}
}

func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}
