package tui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"pingpong/internal/game"
)

const (
	paddleRune = '█'
	ballRune   = '●'
	netRune    = '│'

	scoreTop    = 20.0
	menuOffset  = 80.0
	menuSpacing = 40.0
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleNet     = styleDefault.Foreground(tcell.ColorDarkGray)
	styleScore   = styleDefault.Bold(true)
	styleMenu    = styleDefault.Foreground(tcell.ColorYellow)
)

// View maps court coordinates onto whatever grid the terminal currently has.
type View struct {
	cols, rows int
	court      game.Court
}

func NewView(cols, rows int, court game.Court) *View {
	return &View{cols: cols, rows: rows, court: court}
}

// Resize is called on tcell.EventResize.
func (v *View) Resize(cols, rows int) {
	v.cols, v.rows = cols, rows
}

func (v *View) cellX(x float64) int {
	return clampCell(int(x*float64(v.cols)/v.court.Width), v.cols)
}

func (v *View) cellY(y float64) int {
	return clampCell(int(y*float64(v.rows)/v.court.Height), v.rows)
}

func clampCell(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

// Draw paints one snapshot. The caller calls Show.
func (v *View) Draw(screen tcell.Screen, s game.Snapshot) {
	if v.cols <= 0 || v.rows <= 0 {
		return
	}
	v.court = s.Court
	screen.SetStyle(styleDefault)
	screen.Clear()

	mid := v.cols / 2
	for y := 0; y < v.rows; y += 2 {
		screen.SetContent(mid, y, netRune, nil, styleNet)
	}

	v.drawPaddle(screen, s.Human)
	v.drawPaddle(screen, s.AI)

	ball := s.Ball
	screen.SetContent(v.cellX(ball.X+ball.W/2), v.cellY(ball.CenterY()), ballRune, nil, styleDefault)

	row := v.cellY(scoreTop)
	v.drawString(screen, v.cellX(s.Court.Width/4), row, strconv.Itoa(s.PlayerScore), styleScore)
	v.drawString(screen, v.cellX(s.Court.Width*3/4), row, strconv.Itoa(s.AIScore), styleScore)

	if s.GameOver() {
		for i, line := range s.Menu {
			y := v.cellY(s.Court.Height/2 - menuOffset + float64(i)*menuSpacing)
			v.drawString(screen, mid-len([]rune(line))/2, y, line, styleMenu)
		}
	}
}

// drawPaddle fills every row the paddle covers, at least one.
func (v *View) drawPaddle(screen tcell.Screen, r game.Rect) {
	x := v.cellX(r.X)
	top := v.cellY(r.Top())
	bottom := int(r.Bottom() * float64(v.rows) / v.court.Height)
	if bottom > v.rows {
		bottom = v.rows
	}
	if bottom <= top {
		bottom = top + 1
	}
	for y := top; y < bottom; y++ {
		screen.SetContent(x, y, paddleRune, nil, styleDefault)
	}
}

func (v *View) drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= 0 && x < v.cols {
			screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
