package game

// AIController steers a paddle toward the ball's vertical center.
// It holds no state between ticks.
type AIController struct {
	Step float64
}

func NewAIController() AIController {
	return AIController{Step: PaddleStep}
}

func (c AIController) Track(p *Paddle, ball Rect, courtHeight float64) {
	target := ball.CenterY()
	center := p.Rect().CenterY()
	switch {
	case target < center:
		p.Move(-c.Step, courtHeight)
	case target > center:
		p.Move(c.Step, courtHeight)
	}
}
