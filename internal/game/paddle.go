package game

// Side identifies who owns a paddle or a point.
type Side int

const (
	SideNone Side = iota
	SideHuman
	SideAI
)

func (s Side) String() string {
	switch s {
	case SideHuman:
		return "human"
	case SideAI:
		return "ai"
	default:
		return "none"
	}
}

// Paddle is a vertical-only bat. X never changes after construction.
type Paddle struct {
	Side   Side
	X, Y   float64
	Width  float64
	Height float64
}

func NewPaddle(side Side, x, y float64) *Paddle {
	return &Paddle{
		Side:   side,
		X:      x,
		Y:      y,
		Width:  PaddleWidth,
		Height: PaddleHeight,
	}
}

// Move shifts the paddle by dy and clamps it into [0, courtHeight-Height].
func (p *Paddle) Move(dy, courtHeight float64) {
	p.Y = clamp(p.Y+dy, 0, courtHeight-p.Height)
}

func (p *Paddle) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}
