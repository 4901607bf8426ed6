package game

// Command is a one-shot menu selection. Commands are only honored while the
// match is over.
type Command int

const (
	CommandNone Command = iota
	CommandRestartBestOf3
	CommandRestartBestOf5
	CommandRestartBestOf7
	CommandQuit
)

// BestOf returns the match length a restart command asks for.
func (c Command) BestOf() (BestOf, bool) {
	switch c {
	case CommandRestartBestOf3:
		return BestOf3, true
	case CommandRestartBestOf5:
		return BestOf5, true
	case CommandRestartBestOf7:
		return BestOf7, true
	}
	return 0, false
}

// Input is the control state sampled once per frame.
type Input struct {
	Up      bool
	Down    bool
	Command Command
}

// Cue names a sound the presentation layer may play. Cues are notifications,
// not state.
type Cue string

const (
	CueWallBounce Cue = "wall_bounce"
	CuePaddleHit  Cue = "paddle_hit"
	CueScore      Cue = "score"
)

// MenuLines is the game-over menu shown to the player.
var MenuLines = []string{
	"GAME OVER!",
	"Press 3 for Best of 3",
	"Press 5 for Best of 5",
	"Press 7 for Best of 7",
	"Press ESC to Exit",
}
