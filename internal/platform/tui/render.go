package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aetherbreakout/internal/core"
)

// palette maps core.Color to ANSI 256-color codes.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           lipgloss.Color("1"),
	core.ColorGreen:         lipgloss.Color("2"),
	core.ColorYellow:        lipgloss.Color("3"),
	core.ColorBlue:          lipgloss.Color("4"),
	core.ColorMagenta:       lipgloss.Color("5"),
	core.ColorCyan:          lipgloss.Color("6"),
	core.ColorWhite:         lipgloss.Color("7"),
	core.ColorBrightRed:     lipgloss.Color("9"),
	core.ColorBrightGreen:   lipgloss.Color("10"),
	core.ColorBrightYellow:  lipgloss.Color("11"),
	core.ColorBrightBlue:    lipgloss.Color("12"),
	core.ColorBrightMagenta: lipgloss.Color("13"),
	core.ColorBrightCyan:    lipgloss.Color("14"),
	core.ColorBrightWhite:   lipgloss.Color("15"),
	core.ColorOrange:        lipgloss.Color("208"),
	core.ColorGray:          lipgloss.Color("245"),
	core.ColorPurple:        lipgloss.Color("93"),
}

// cellStyle returns the lipgloss style for a foreground/background pair.
func cellStyle(fg, bg core.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := palette[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			// Collect consecutive cells with the same colors
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Color == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(start.Color, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}

// Canvas is a color raster with two pixels per terminal cell vertically.
// It is blitted onto a Screen with half-block characters.
type Canvas struct {
	w, h int
	px   []core.Color
}

// NewCanvas creates a canvas covering cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{w: cols, h: rows * 2, px: make([]core.Color, cols*rows*2)}
}

// Fill paints a pixel rectangle, clipped to the canvas.
func (c *Canvas) Fill(r core.Rect, col core.Color) {
	x0, x1 := core.Clamp(r.X, 0, c.w), core.Clamp(r.Right(), 0, c.w)
	y0, y1 := core.Clamp(r.Y, 0, c.h), core.Clamp(r.Bottom(), 0, c.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.px[y*c.w+x] = col
		}
	}
}

// At returns the pixel color, ColorDefault outside the canvas.
func (c *Canvas) At(x, y int) core.Color {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return core.ColorDefault
	}
	return c.px[y*c.w+x]
}

// Blit draws the canvas onto s with its top-left cell at (x0, y0). Empty
// pixel pairs leave the screen untouched.
func (c *Canvas) Blit(s *core.Screen, x0, y0 int) {
	for cy := 0; cy < c.h/2; cy++ {
		for x := 0; x < c.w; x++ {
			top, bottom := c.At(x, cy*2), c.At(x, cy*2+1)
			var cell core.Cell
			switch {
			case top == core.ColorDefault && bottom == core.ColorDefault:
				continue
			case top == bottom:
				cell = core.Cell{Rune: '█', Color: top}
			case top == core.ColorDefault:
				cell = core.Cell{Rune: '▄', Color: bottom}
			default:
				cell = core.Cell{Rune: '▀', Color: top, Bg: bottom}
			}
			s.SetCell(x0+x, y0+cy, cell)
		}
	}
}
