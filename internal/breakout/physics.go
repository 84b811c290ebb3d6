package breakout

import (
	"math"

	"github.com/vovakirdan/aetherbreakout/internal/core"
)

// WallHit reports which boundary a ball touched during a step.
type WallHit int

const (
	WallNone   WallHit = iota
	WallSide           // Left or right wall, bounced
	WallTop            // Ceiling, bounced
	WallBottom         // Fell off the board, ball is lost
)

// integrate advances the ball by one Euler step.
func integrate(b *Ball, dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// resolveWalls reflects the ball off the left, right and top walls and
// clamps it back inside the board. The velocity sign is forced away from
// the wall so a ball still overlapping next frame cannot flip twice.
func resolveWalls(b *Ball) WallHit {
	d := b.Radius * 2
	hit := WallNone

	if b.Position.X < 0 {
		b.Velocity.X = math.Abs(b.Velocity.X)
		b.Position.X = 0
		hit = WallSide
	} else if b.Position.X+d > BoardWidth {
		b.Velocity.X = -math.Abs(b.Velocity.X)
		b.Position.X = BoardWidth - d
		hit = WallSide
	}

	if b.Position.Y < 0 {
		b.Velocity.Y = math.Abs(b.Velocity.Y)
		b.Position.Y = 0
		hit = WallTop
	}

	if b.Position.Y+d >= BoardHeight {
		return WallBottom
	}
	return hit
}

// resolvePaddle bounces the ball off the paddle. The ball is placed flush on
// top of the paddle and always leaves upward; its horizontal speed is bent by
// where it struck and by how fast the paddle was moving.
func resolvePaddle(b *Ball, p *Paddle) bool {
	if !b.Bounds().Intersects(p.Bounds()) {
		return false
	}

	b.Position.Y = p.Position.Y - b.Radius*2
	b.Velocity.Y = -math.Abs(b.Velocity.Y)

	half := p.Size.X / 2
	var offset float64
	if half > 0 {
		offset = core.ClampF((b.Center().X-p.CenterX())/half, -1, 1)
	}

	vx := b.Velocity.X + offset*PaddleDeflection + p.Velocity.X*PaddleInfluence
	b.Velocity.X = core.ClampF(vx, -MaxBallSpeedX, MaxBallSpeedX)
	return true
}

// resolveBricks finds the first active brick the ball overlaps, in board
// order, and destroys it. Only one brick is resolved per ball per step.
// The ball bounces vertically unless it is a juggernaut.
func resolveBricks(b *Ball, bricks []*Brick) *Brick {
	bounds := b.Bounds()
	for _, brick := range bricks {
		if !brick.Active || !bounds.Intersects(brick.Bounds()) {
			continue
		}
		brick.Active = false
		if !b.Juggernaut {
			b.Velocity.Y = -b.Velocity.Y
		}
		return brick
	}
	return nil
}

// compactBalls drops balls marked lost, keeping survivors in order.
func compactBalls(balls []*Ball) []*Ball {
	kept := balls[:0]
	for _, b := range balls {
		if !b.lost {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(balls); i++ {
		balls[i] = nil
	}
	return kept
}
