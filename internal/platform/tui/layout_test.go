package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/aetherbreakout/internal/breakout"
	"github.com/vovakirdan/aetherbreakout/internal/core"
)

func TestLayoutFitsBoard(t *testing.T) {
	l := NewLayout(80, 40)

	assert.False(t, l.TooSmall)
	assert.Equal(t, 55, l.Field.W)
	assert.Equal(t, 37, l.Field.H)
	assert.Equal(t, 12, l.Field.X, "field is centered")
	assert.Equal(t, hudRows+1, l.Field.Y)
}

func TestLayoutTooSmall(t *testing.T) {
	l := NewLayout(20, 10)

	assert.True(t, l.TooSmall)
	assert.GreaterOrEqual(t, l.Field.W, minFieldCols)
	assert.GreaterOrEqual(t, l.Field.H, minFieldRows)
}

func TestBricksDoNotOverlapOnScreen(t *testing.T) {
	l := NewLayout(120, 50)
	bricks := breakout.GenerateLevel(1)

	for i := 1; i < breakout.BrickColumns; i++ {
		left := l.ToPixels(bricks[i-1].Bounds())
		right := l.ToPixels(bricks[i].Bounds())
		assert.LessOrEqual(t, left.Right(), right.X, "column %d", i)
		assert.Positive(t, left.W)
	}
}

func TestColumnToBoard(t *testing.T) {
	l := NewLayout(80, 40)

	assert.Equal(t, 0.0, l.ColumnToBoard(l.Field.X-5))
	assert.Equal(t, breakout.BoardWidth, l.ColumnToBoard(l.Field.Right()+5))

	mid := l.Field.X + l.Field.W/2
	assert.InDelta(t, breakout.BoardWidth/2, l.ColumnToBoard(mid), 2)
}

func TestCanvasBlit(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Fill(core.NewRect(0, 0, 1, 1), core.ColorRed)  // Top pixel only
	c.Fill(core.NewRect(1, 0, 1, 2), core.ColorBlue) // Both pixels
	c.Fill(core.NewRect(2, 1, 1, 1), core.ColorGreen)
	c.Fill(core.NewRect(-5, -5, 2, 2), core.ColorRed) // Clipped away

	s := core.NewScreen(3, 1)
	c.Blit(s, 0, 0)

	assert.Equal(t, core.Cell{Rune: '▀', Color: core.ColorRed}, s.GetCell(0, 0))
	assert.Equal(t, core.Cell{Rune: '█', Color: core.ColorBlue}, s.GetCell(1, 0))
	assert.Equal(t, core.Cell{Rune: '▄', Color: core.ColorGreen}, s.GetCell(2, 0))
}

func TestCanvasBlitTwoColors(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Fill(core.NewRect(0, 0, 1, 1), core.ColorRed)
	c.Fill(core.NewRect(0, 1, 1, 1), core.ColorBlue)

	s := core.NewScreen(1, 1)
	c.Blit(s, 0, 0)

	assert.Equal(t, core.Cell{Rune: '▀', Color: core.ColorRed, Bg: core.ColorBlue}, s.GetCell(0, 0))
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(0, 1, "colored", core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "plain")
	assert.Contains(t, lines[1], "colored")
}

func TestDrawFrameShowsHUD(t *testing.T) {
	session := breakout.NewSession(breakout.SessionConfig{Seed: 3})
	session.StartNewGame()

	l := NewLayout(80, 40)
	s := core.NewScreen(80, 40)
	DrawFrame(s, l, session.Frame())

	hud := s.Row(0)
	assert.Contains(t, hud, "SCORE 0")
	assert.Contains(t, hud, "LEVEL 1")
	assert.Contains(t, hud, "♥♥♥")

	// The top border sits right above the field
	assert.Equal(t, '┌', s.Get(l.Field.X-1, l.Field.Y-1))
}

func TestDrawPowerUpLabels(t *testing.T) {
	l := NewLayout(100, 50)
	s := core.NewScreen(100, 50)

	drawPowerUp(s, l, breakout.PowerUpView{
		Bounds: core.NewRectF(core.V(45, 60), core.V(breakout.PowerUpWidth, breakout.PowerUpHeight)),
		Type:   breakout.PowerUpBigBall,
		Label:  breakout.PowerUpBigBall.Label(),
	})
	assert.Contains(t, s.String(), "BIG BALLS")

	drawPowerUp(s, l, breakout.PowerUpView{
		Bounds: core.NewRectF(core.V(10, 100), core.V(breakout.PowerUpWidth, breakout.PowerUpHeight)),
		Type:   breakout.PowerUpWidenPaddle,
	})
	assert.Contains(t, s.String(), "┌")
}
