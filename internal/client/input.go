package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pingpong/internal/game"
)

// KeySource is the keyboard as seen by one frame.
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

var (
	upKeys   = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	downKeys = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}

	commandKeys = []struct {
		keys []ebiten.Key
		cmd  game.Command
	}{
		{[]ebiten.Key{ebiten.KeyDigit3, ebiten.KeyNumpad3}, game.CommandRestartBestOf3},
		{[]ebiten.Key{ebiten.KeyDigit5, ebiten.KeyNumpad5}, game.CommandRestartBestOf5},
		{[]ebiten.Key{ebiten.KeyDigit7, ebiten.KeyNumpad7}, game.CommandRestartBestOf7},
		{[]ebiten.Key{ebiten.KeyEscape}, game.CommandQuit},
	}
)

// ReadInput samples held movement keys and at most one freshly pressed
// menu key.
func ReadInput(keys KeySource) game.Input {
	in := game.Input{
		Up:   anyPressed(keys, upKeys),
		Down: anyPressed(keys, downKeys),
	}
	for _, ck := range commandKeys {
		for _, k := range ck.keys {
			if keys.IsKeyJustPressed(k) {
				in.Command = ck.cmd
				return in
			}
		}
	}
	return in
}

func anyPressed(keys KeySource, candidates []ebiten.Key) bool {
	for _, k := range candidates {
		if keys.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
