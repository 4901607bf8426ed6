package game

// Snapshot is a read-only view of one tick, built fresh for whoever draws it.
type Snapshot struct {
	Tick        uint64   `json:"tick"`
	Court       Court    `json:"court"`
	Human       Rect     `json:"human"`
	AI          Rect     `json:"ai"`
	Ball        Rect     `json:"ball"`
	PlayerScore int      `json:"playerScore"`
	AIScore     int      `json:"aiScore"`
	Phase       Phase    `json:"phase"`
	BestOf      BestOf   `json:"bestOf"`
	Menu        []string `json:"menu,omitempty"`
}

func (s Snapshot) GameOver() bool {
	return s.Phase == PhaseGameOver
}
