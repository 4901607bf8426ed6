package client

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"pingpong/internal/game"
)

const (
	ScreenWidth  = int(game.CourtWidth)
	ScreenHeight = int(game.CourtHeight)

	// textScale blows up the 7x13 bitmap face to roughly a 26px font.
	textScale   = 2
	scoreTop    = 20
	menuOffset  = 80
	menuSpacing = 40
)

var (
	background = color.RGBA{0, 0, 0, 255}
	foreground = color.RGBA{255, 255, 255, 255}
)

// Renderer draws snapshots. It keeps no game state of its own.
type Renderer struct {
	face font.Face
}

func NewRenderer() *Renderer {
	return &Renderer{face: basicfont.Face7x13}
}

func (r *Renderer) Draw(screen *ebiten.Image, s game.Snapshot) {
	screen.Fill(background)

	drawRect(screen, s.Human)
	drawRect(screen, s.AI)

	// The ball is a circle inscribed in its box.
	vector.DrawFilledCircle(screen,
		float32(s.Ball.X+s.Ball.W/2), float32(s.Ball.Y+s.Ball.H/2),
		float32(s.Ball.W/2), foreground, true)

	mid := float32(s.Court.Width / 2)
	vector.StrokeLine(screen, mid, 0, mid, float32(s.Court.Height), 1, foreground, true)

	left, right := scorePositions(s.Court)
	r.drawText(screen, strconv.Itoa(s.PlayerScore), left)
	r.drawText(screen, strconv.Itoa(s.AIScore), right)

	if s.GameOver() {
		for i, line := range s.Menu {
			r.drawCentered(screen, line, menuLineCenter(s.Court, i))
		}
	}
}

// DrawWaiting fills the screen while a watcher has nothing to show yet.
func (r *Renderer) DrawWaiting(screen *ebiten.Image, msg string) {
	screen.Fill(background)
	r.drawCentered(screen, msg, game.Point{X: float64(ScreenWidth) / 2, Y: float64(ScreenHeight) / 2})
}

func drawRect(screen *ebiten.Image, rect game.Rect) {
	vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), foreground, false)
}

// scorePositions returns the top-left corners of the two score labels.
func scorePositions(c game.Court) (player, ai game.Point) {
	return game.Point{X: c.Width / 4, Y: scoreTop},
		game.Point{X: c.Width * 3 / 4, Y: scoreTop}
}

// menuLineCenter returns the center of game-over menu line i.
func menuLineCenter(c game.Court, i int) game.Point {
	return game.Point{
		X: c.Width / 2,
		Y: c.Height/2 - menuOffset + float64(i*menuSpacing),
	}
}

// textSize returns the on-screen size of s after scaling.
func (r *Renderer) textSize(s string) (w, h float64) {
	adv := font.MeasureString(r.face, s).Ceil()
	m := r.face.Metrics()
	return float64(adv * textScale), float64((m.Ascent + m.Descent).Ceil() * textScale)
}

func (r *Renderer) drawCentered(screen *ebiten.Image, s string, center game.Point) {
	w, h := r.textSize(s)
	r.drawText(screen, s, game.Point{X: center.X - w/2, Y: center.Y - h/2})
}

// drawText draws s with its top-left corner at p.
func (r *Renderer) drawText(screen *ebiten.Image, s string, p game.Point) {
	ascent := r.face.Metrics().Ascent.Ceil()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(p.X, p.Y+float64(ascent*textScale))
	text.DrawWithOptions(screen, s, r.face, op)
}
