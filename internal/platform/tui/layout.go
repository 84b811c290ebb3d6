package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/aetherbreakout/internal/breakout"
	"github.com/vovakirdan/aetherbreakout/internal/core"
)

// Screen layout constants
const (
	hudRows      = 1 // Score line above the playfield
	minFieldCols = 24
	minFieldRows = 12
)

// Layout maps board units to terminal cells. The playfield is framed by a
// one-cell border below the HUD line. Each cell holds two pixels vertically,
// so one pixel is roughly square.
type Layout struct {
	Field    core.Rect // Inner playfield in screen cells
	TooSmall bool

	sx, sy float64 // Pixels per board unit
}

// NewLayout fits the board into a screen of the given size, keeping its
// aspect ratio.
func NewLayout(width, height int) Layout {
	cols := width - 2
	rows := height - hudRows - 2

	ratio := breakout.BoardWidth / breakout.BoardHeight * 2 // Columns per row
	if float64(cols) > float64(rows)*ratio {
		cols = int(float64(rows) * ratio)
	} else {
		rows = int(float64(cols) / ratio)
	}

	l := Layout{TooSmall: cols < minFieldCols || rows < minFieldRows}
	cols = core.Max(cols, minFieldCols)
	rows = core.Max(rows, minFieldRows)

	x := core.Max((width-cols-2)/2, 0) + 1
	l.Field = core.NewRect(x, hudRows+1, cols, rows)
	l.sx = float64(cols) / breakout.BoardWidth
	l.sy = float64(rows*2) / breakout.BoardHeight
	return l
}

// ToPixels converts a board box to canvas pixels. Edges are floored so
// neighbouring bricks never overlap; every box covers at least one pixel.
func (l Layout) ToPixels(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.X * l.sx))
	x1 := int(math.Floor(r.Right() * l.sx))
	y0 := int(math.Floor(r.Y * l.sy))
	y1 := int(math.Floor(r.Bottom() * l.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// ToCells converts a board box to screen cells.
func (l Layout) ToCells(r core.RectF) core.Rect {
	p := l.ToPixels(r)
	y0 := p.Y / 2
	y1 := (p.Bottom() + 1) / 2
	return core.NewRect(l.Field.X+p.X, l.Field.Y+y0, p.W, core.Max(y1-y0, 1))
}

// ColumnToBoard converts a screen column to a board x coordinate, clamped
// to the board.
func (l Layout) ColumnToBoard(col int) float64 {
	x := (float64(col-l.Field.X) + 0.5) / l.sx
	return core.ClampF(x, 0, breakout.BoardWidth)
}

// Object colors
const (
	paddleColor     = core.ColorBrightCyan
	ballColor       = core.ColorBrightWhite
	juggernautColor = core.ColorBrightRed
	borderColor     = core.ColorGray
)

// powerUpColors colors falling power-up labels.
var powerUpColors = map[breakout.PowerUpType]core.Color{
	breakout.PowerUpWidenPaddle: core.ColorBrightGreen,
	breakout.PowerUpSplitBall:   core.ColorBrightYellow,
	breakout.PowerUpBigBall:     core.ColorBrightMagenta,
	breakout.PowerUpJuggernaut:  core.ColorBrightRed,
}

// DrawFrame draws the HUD, the border and every entity of f onto s.
func DrawFrame(s *core.Screen, l Layout, f breakout.Frame) {
	drawHUD(s, f)
	drawBorder(s, l)

	canvas := NewCanvas(l.Field.W, l.Field.H)
	for _, b := range f.Bricks {
		canvas.Fill(l.ToPixels(b.Bounds), b.Color)
	}
	if f.HasPaddle {
		canvas.Fill(l.ToPixels(f.Paddle), paddleColor)
	}
	for _, b := range f.Balls {
		c := ballColor
		if b.Juggernaut {
			c = juggernautColor
		}
		size := core.V(b.Radius*2, b.Radius*2)
		canvas.Fill(l.ToPixels(core.NewRectF(b.Position, size)), c)
	}
	canvas.Blit(s, l.Field.X, l.Field.Y)

	// Power-ups are text, drawn over the raster
	for _, p := range f.PowerUps {
		drawPowerUp(s, l, p)
	}
}

// drawPowerUp draws a labelled power-up as colored text and WidenPaddle as
// an outlined box.
func drawPowerUp(s *core.Screen, l Layout, p breakout.PowerUpView) {
	r := l.ToCells(p.Bounds)
	c := powerUpColors[p.Type]

	if p.Label == "" {
		r.H = core.Max(r.H, 2)
		drawBoxColored(s, r, c)
		return
	}

	label := []rune(p.Label)
	x := r.X + (r.W-len(label))/2
	x = core.Clamp(x, l.Field.X, core.Max(l.Field.Right()-len(label), l.Field.X))
	y := r.Y + (r.H-1)/2
	for i, ch := range label {
		if x+i >= l.Field.Right() {
			break
		}
		s.SetColored(x+i, y, ch, c)
	}
}

func drawBoxColored(s *core.Screen, r core.Rect, c core.Color) {
	s.DrawBox(r)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' {
				s.SetColored(x, y, cell.Rune, c)
			}
		}
	}
}

func drawBorder(s *core.Screen, l Layout) {
	outer := core.NewRect(l.Field.X-1, l.Field.Y-1, l.Field.W+2, l.Field.H+2)
	drawBoxColored(s, outer, borderColor)
}

// drawHUD writes the status line: high score, score, lives and level, plus
// the active effects.
func drawHUD(s *core.Screen, f breakout.Frame) {
	x := 1
	put := func(label, value string, c core.Color) {
		s.DrawTextColored(x, 0, label, core.ColorGray)
		x += len(label)
		s.DrawTextColored(x, 0, value, c)
		x += len([]rune(value)) + 3
	}

	put("HI ", fmt.Sprint(f.HighScore), core.ColorBrightYellow)
	put("SCORE ", fmt.Sprint(f.Score), core.ColorBrightWhite)
	put("LIVES ", strings.Repeat("♥", core.Max(f.Lives, 0)), core.ColorBrightRed)
	put("LEVEL ", fmt.Sprint(f.Level), core.ColorBrightCyan)

	for _, e := range []breakout.PowerUpType{f.PaddleEffect, f.BallEffect} {
		if e == breakout.PowerUpNone {
			continue
		}
		s.DrawTextColored(x, 0, e.String(), powerUpColors[e])
		x += len(e.String()) + 2
	}
}

// drawCenteredBlock writes lines centered in the playfield, starting a
// little above the middle.
func drawCenteredBlock(s *core.Screen, l Layout, lines []string, colors []core.Color) {
	y := l.Field.Y + (l.Field.H-len(lines))/2
	for i, line := range lines {
		c := core.ColorBrightWhite
		if i < len(colors) {
			c = colors[i]
		}
		n := len([]rune(line))
		x := l.Field.X + (l.Field.W-n)/2
		// Blank the row under the text so it reads over bricks
		for j := -1; j <= n; j++ {
			s.SetColored(x+j, y+i, ' ', core.ColorDefault)
		}
		s.DrawTextColored(x, y+i, line, c)
	}
}
