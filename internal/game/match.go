package game

import "github.com/rotisserie/eris"

// ErrInvalidBestOf is returned when a match length outside {3,5,7} is requested.
var ErrInvalidBestOf = eris.New("best-of must be 3, 5 or 7")

// BestOf is the score a side must reach to win the match.
type BestOf int

const (
	BestOf3 BestOf = 3
	BestOf5 BestOf = 5
	BestOf7 BestOf = 7

	DefaultBestOf = BestOf3
)

func (b BestOf) Valid() bool {
	return b == BestOf3 || b == BestOf5 || b == BestOf7
}

type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// Match keeps the score and decides when the match is over.
type Match struct {
	PlayerScore int
	AIScore     int
	BestOf      BestOf
	Phase       Phase
}

func NewMatch(bestOf BestOf) (*Match, error) {
	if !bestOf.Valid() {
		return nil, eris.Wrapf(ErrInvalidBestOf, "got %d", bestOf)
	}
	return &Match{BestOf: bestOf, Phase: PhasePlaying}, nil
}

// Award gives side a point and reports whether that point ended the match.
// Points are ignored once the match is over.
func (m *Match) Award(side Side) bool {
	if m.Phase == PhaseGameOver {
		return false
	}
	switch side {
	case SideHuman:
		m.PlayerScore++
	case SideAI:
		m.AIScore++
	default:
		return false
	}
	if m.PlayerScore >= int(m.BestOf) || m.AIScore >= int(m.BestOf) {
		m.Phase = PhaseGameOver
		return true
	}
	return false
}

// Restart zeroes the score, switches to a new match length and resumes play.
func (m *Match) Restart(bestOf BestOf) error {
	if !bestOf.Valid() {
		return eris.Wrapf(ErrInvalidBestOf, "got %d", bestOf)
	}
	m.BestOf = bestOf
	m.ResetScores()
	return nil
}

// ResetScores starts a new match of the current length.
func (m *Match) ResetScores() {
	m.PlayerScore = 0
	m.AIScore = 0
	m.Phase = PhasePlaying
}

// Winner returns the side that reached the target, or SideNone while playing.
func (m *Match) Winner() Side {
	if m.Phase != PhaseGameOver {
		return SideNone
	}
	if m.PlayerScore > m.AIScore {
		return SideHuman
	}
	return SideAI
}
