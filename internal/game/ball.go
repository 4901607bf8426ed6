package game

// Ball moves a fixed distance per tick and bounces off the top and bottom
// walls. It is never clamped horizontally; leaving the court is how a point
// is scored.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Width  float64
	Height float64

	spawn Point
	court Court
	rng   RandomSource
}

// NewBall places a ball at (x, y) and serves it in a random diagonal.
func NewBall(x, y, width, height float64, court Court, rng RandomSource) *Ball {
	return &Ball{
		X:      x,
		Y:      y,
		VX:     choose(rng, -BallSpeedX, BallSpeedX),
		VY:     choose(rng, -BallSpeedY, BallSpeedY),
		Width:  width,
		Height: height,
		spawn:  Point{X: x, Y: y},
		court:  court,
		rng:    rng,
	}
}

// Move advances the ball one tick and reports whether it bounced off the
// top or bottom wall.
func (b *Ball) Move() bool {
	b.X += b.VX
	b.Y += b.VY

	if b.Y <= 0 || b.Y+b.Height >= b.court.Height {
		b.VY = -b.VY
		return true
	}
	return false
}

// CheckCollision flips horizontal velocity once if the ball overlaps either
// paddle. The ball is not pushed out of the paddle.
func (b *Ball) CheckCollision(a, c Rect) bool {
	r := b.Rect()
	if r.Intersects(a) || r.Intersects(c) {
		b.VX = -b.VX
		return true
	}
	return false
}

// Reset puts the ball back on its spawn point, reverses horizontal direction
// and picks a new vertical direction.
func (b *Ball) Reset() {
	b.X = b.spawn.X
	b.Y = b.spawn.Y
	b.VX = -b.VX
	b.VY = choose(b.rng, -BallSpeedY, BallSpeedY)
}

func (b *Ball) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

func (b *Ball) Spawn() Point { return b.spawn }

func (b *Ball) Velocity() (vx, vy float64) { return b.VX, b.VY }
