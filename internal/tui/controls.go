package tui

import (
	"github.com/gdamore/tcell/v2"

	"pingpong/internal/game"
)

// holdTicks is how long one key press keeps a paddle moving. Terminals only
// report presses, so auto-repeat keeps the hold alive while a key is down.
const holdTicks = 6

// Controls turns key presses into per-tick game.Input.
type Controls struct {
	upUntil   uint64
	downUntil uint64
	pending   game.Command
}

// HandleKey records a press seen at tick now. It reports true for Ctrl-C,
// which quits regardless of phase.
func (c *Controls) HandleKey(ev *tcell.EventKey, now uint64) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		c.holdUp(now)
	case tcell.KeyDown:
		c.holdDown(now)
	case tcell.KeyEscape:
		c.pending = game.CommandQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			c.holdUp(now)
		case 's', 'S':
			c.holdDown(now)
		case '3':
			c.pending = game.CommandRestartBestOf3
		case '5':
			c.pending = game.CommandRestartBestOf5
		case '7':
			c.pending = game.CommandRestartBestOf7
		}
	}
	return false
}

// Reversing direction drops the opposite hold.
func (c *Controls) holdUp(now uint64) {
	c.upUntil = now + holdTicks
	c.downUntil = 0
}

func (c *Controls) holdDown(now uint64) {
	c.downUntil = now + holdTicks
	c.upUntil = 0
}

// Input returns the controls for tick now and consumes any pending command.
func (c *Controls) Input(now uint64) game.Input {
	in := game.Input{
		Up:      now < c.upUntil,
		Down:    now < c.downUntil,
		Command: c.pending,
	}
	c.pending = game.CommandNone
	return in
}
