// Package breakout implements the brick-breaking simulation: entity motion,
// collision response, level layouts, power-up effects and the session
// lifecycle. It has no knowledge of terminals, audio devices or files; those
// are reached through the collaborator interfaces in collaborators.go.
package breakout

import "github.com/vovakirdan/aetherbreakout/internal/core"

// Board geometry in logical units. All entities live in this space.
const (
	BoardWidth  = 100.0
	BoardHeight = 133.3
)

// Paddle baseline geometry.
const (
	PaddleBaseWidth    = 25.0
	PaddleHeight       = 4.0
	PaddleBottomMargin = 10.0 // Gap between paddle bottom and board bottom
)

// Ball baseline geometry and motion.
const (
	BallBaseRadius  = 2.5
	BallLaunchSpeed = 50.0 // Per-axis launch speed before the multiplier
	BallSpawnGap    = 1.0  // Gap between a fresh ball and the paddle top
)

// Paddle deflection tuning.
const (
	PaddleDeflection = 50.0 // Horizontal kick at the paddle edge
	PaddleInfluence  = 0.4  // Share of paddle velocity passed to the ball
	MaxBallSpeedX    = 80.0
)

// Scoring and progression.
const (
	BrickScore       = 10
	StageClearBonus  = 1000
	StartingLives    = 3
	LevelSpeedGrowth = 1.01
)

// Ball is a live ball. Position is the top-left corner of its
// 2*Radius square bounding box.
type Ball struct {
	Position   core.Vec2
	Velocity   core.Vec2
	Radius     float64
	Juggernaut bool // Passes through bricks without bouncing

	lost bool // Crossed the bottom edge this frame; compacted after physics
}

// Bounds returns the ball's bounding box.
func (b *Ball) Bounds() core.RectF {
	d := b.Radius * 2
	return core.NewRectF(b.Position, core.V(d, d))
}

// Center returns the ball's center point.
func (b *Ball) Center() core.Vec2 {
	return core.V(b.Position.X+b.Radius, b.Position.Y+b.Radius)
}

// Paddle is the player's paddle. Velocity is derived from the position
// change between frames, never integrated.
type Paddle struct {
	Position core.Vec2
	Size     core.Vec2
	Velocity core.Vec2

	lastX float64 // Position.X at the previous frame
}

// newPaddle creates a baseline paddle centered near the bottom of the board.
func newPaddle() *Paddle {
	x := (BoardWidth - PaddleBaseWidth) / 2
	return &Paddle{
		Position: core.V(x, BoardHeight-PaddleHeight-PaddleBottomMargin),
		Size:     core.V(PaddleBaseWidth, PaddleHeight),
		lastX:    x,
	}
}

// Bounds returns the paddle's bounding box.
func (p *Paddle) Bounds() core.RectF {
	return core.NewRectF(p.Position, p.Size)
}

// CenterX returns the paddle's horizontal center.
func (p *Paddle) CenterX() float64 {
	return p.Position.X + p.Size.X/2
}

// centerOn moves the paddle so its center is at x, kept inside the board.
func (p *Paddle) centerOn(x float64) {
	maxX := BoardWidth - p.Size.X
	if maxX < 0 {
		maxX = 0
	}
	p.Position.X = core.ClampF(x-p.Size.X/2, 0, maxX)
}

// resize changes the paddle width while keeping its center. The shift is
// not movement, so lastX follows it.
func (p *Paddle) resize(width float64) {
	old := p.Position.X
	center := p.CenterX()
	p.Size.X = width
	p.centerOn(center)
	p.lastX += p.Position.X - old
}

// trackVelocity derives the paddle velocity from movement since the last frame.
func (p *Paddle) trackVelocity(dt float64) {
	p.Velocity = core.V((p.Position.X-p.lastX)/dt, 0)
	p.lastX = p.Position.X
}

// Brick is a destructible brick. Inactive bricks are purged after physics.
type Brick struct {
	Position core.Vec2
	Size     core.Vec2
	Color    core.Color
	Active   bool
}

// Bounds returns the brick's bounding box.
func (b *Brick) Bounds() core.RectF {
	return core.NewRectF(b.Position, b.Size)
}

// PowerUp is a falling collectible.
type PowerUp struct {
	Position core.Vec2
	Size     core.Vec2
	Type     PowerUpType

	gone bool // Collected or fell off the board this frame
}

// Bounds returns the power-up's bounding box.
func (p *PowerUp) Bounds() core.RectF {
	return core.NewRectF(p.Position, p.Size)
}

// Label returns the text drawn for this power-up. WidenPaddle has none
// and is drawn as a plain box.
func (p *PowerUp) Label() string {
	return p.Type.Label()
}
