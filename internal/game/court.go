package game

const (
	CourtWidth  = 800.0
	CourtHeight = 600.0

	PaddleWidth  = 10.0
	PaddleHeight = 100.0
	// PaddleStep is the per-tick travel of both paddles.
	PaddleStep = 10.0
	// PaddleInset is the gap between a paddle and its back wall.
	PaddleInset = 10.0

	BallSize   = 7.0
	BallSpeedX = 5.0
	BallSpeedY = 3.0
)

// Point is a position in court coordinates.
type Point struct {
	X, Y float64
}

// Court is the play area.
type Court struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultCourt returns the 800x600 court.
func DefaultCourt() Court {
	return Court{Width: CourtWidth, Height: CourtHeight}
}

// PaddleSpawns returns the starting positions of the human and AI paddles.
func (c Court) PaddleSpawns() (human, ai Point) {
	y := c.Height/2 - PaddleHeight/2
	human = Point{X: PaddleInset, Y: y}
	ai = Point{X: c.Width - PaddleInset - PaddleWidth, Y: y}
	return human, ai
}

// BallSpawn returns the top-left corner that centers the ball on the court.
func (c Court) BallSpawn() Point {
	return Point{X: (c.Width - BallSize) / 2, Y: (c.Height - BallSize) / 2}
}
