package breakout

import "github.com/vovakirdan/aetherbreakout/internal/core"

// Brick layout constants.
const (
	BrickColumns   = 10
	BrickBaseRows  = 5
	BrickPadding   = 0.5
	BrickHeight    = 4.0
	BrickTopOffset = 25.0
)

// BrickPalette holds the row colors, cycled by row index.
var BrickPalette = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorPurple,
}

// RowCount returns the number of brick rows for a level.
func RowCount(level int) int {
	if level < 0 {
		level = 0
	}
	return BrickBaseRows + level/2
}

// BrickWidth returns the width of every brick.
func BrickWidth() float64 {
	return BoardWidth/BrickColumns - BrickPadding
}

// GenerateLevel builds the full brick set for a level in row-major order.
// The layout depends only on the level index.
func GenerateLevel(level int) []*Brick {
	rows := RowCount(level)
	w := BrickWidth()

	bricks := make([]*Brick, 0, rows*BrickColumns)
	for row := range rows {
		color := BrickPalette[row%len(BrickPalette)]
		y := BrickTopOffset + float64(row)*(BrickHeight+BrickPadding)
		for col := range BrickColumns {
			x := float64(col)*(w+BrickPadding) + BrickPadding/2
			bricks = append(bricks, &Brick{
				Position: core.V(x, y),
				Size:     core.V(w, BrickHeight),
				Color:    color,
				Active:   true,
			})
		}
	}
	return bricks
}

// purgeBricks drops inactive bricks, keeping the original order.
func purgeBricks(bricks []*Brick) []*Brick {
	kept := bricks[:0]
	for _, b := range bricks {
		if b.Active {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(bricks); i++ {
		bricks[i] = nil
	}
	return kept
}
