package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	assert.Equal(t, 80, s.Width())
	assert.Equal(t, 24, s.Height())

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	assert.Equal(t, Cell{Rune: 'X', Color: ColorRed}, s.GetCell(5, 5))
	assert.Equal(t, 'X', s.Get(5, 5))

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	assert.Equal(t, ' ', s.Get(-1, 0))
	assert.Equal(t, ' ', s.Get(100, 0))
	assert.Equal(t, ColorDefault, s.GetCell(100, 0).Color)
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(0, 0, 4, 3), '#', ColorBlue)
	s.Clear()

	assert.Equal(t, "    \n    \n    ", s.String())
	assert.Equal(t, ColorDefault, s.GetCell(2, 2).Color)
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(2, 0, "Hello")
	s.DrawTextColored(7, 1, "World", ColorGreen)

	assert.Equal(t, "  Hello   ", s.Row(0))
	// Clipped at the right edge
	assert.Equal(t, "       Wor", s.Row(1))
	assert.Equal(t, ColorGreen, s.GetCell(8, 1).Color)
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")

	assert.Equal(t, "    abc    ", s.Row(0))
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3))

	lines := strings.Split(s.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "┌──┐", lines[0])
	assert.Equal(t, "│  │", lines[1])
	assert.Equal(t, "└──┘", lines[2])
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'x')

	s.Resize(4, 4)
	assert.Equal(t, 'x', s.Get(1, 1), "same size keeps content")

	s.Resize(6, 2)
	assert.Equal(t, 6, s.Width())
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, ' ', s.Get(1, 1))
	assert.Equal(t, strings.Repeat(" ", 6), s.Row(5))
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(4, 4)

	c := Cell{Rune: '▀', Color: ColorRed, Bg: ColorBlue}
	s.SetCell(1, 2, c)
	s.SetCell(9, 9, c)

	assert.Equal(t, c, s.GetCell(1, 2))
	assert.Equal(t, ColorDefault, s.GetCell(0, 0).Bg)
}
