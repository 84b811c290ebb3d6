package breakout

import (
	"math"

	"github.com/vovakirdan/aetherbreakout/internal/core"
)

// BallView is the render data of one ball.
type BallView struct {
	Position   core.Vec2 // Top-left of the bounding box
	Radius     float64
	Juggernaut bool
}

// BrickView is the render data of one active brick.
type BrickView struct {
	Bounds core.RectF
	Color  core.Color
}

// PowerUpView is the render data of one falling power-up.
type PowerUpView struct {
	Bounds core.RectF
	Type   PowerUpType
	Label  string // Empty for WidenPaddle, drawn as a box
}

// Frame is an immutable copy of everything a renderer needs. It shares no
// memory with the session, so it can be handed to another goroutine.
type Frame struct {
	Tick            uint64
	State           State
	Score           int
	HighScore       int
	Lives           int
	Level           int
	SpeedMultiplier float64

	HasPaddle bool
	Paddle    core.RectF

	Balls    []BallView
	Bricks   []BrickView
	PowerUps []PowerUpView

	BallEffect   PowerUpType
	PaddleEffect PowerUpType

	RNGState uint64
}

// Frame returns a snapshot of the current session state.
func (s *Session) Frame() Frame {
	f := Frame{
		Tick:            s.tick,
		State:           s.state,
		Score:           s.score,
		HighScore:       s.scores.HighScore(),
		Lives:           s.lives,
		Level:           s.level,
		SpeedMultiplier: s.speedMultiplier,
		BallEffect:      s.active[CategoryBall],
		PaddleEffect:    s.active[CategoryPaddle],
		RNGState:        s.rng.State(),
	}

	if s.paddle != nil {
		f.HasPaddle = true
		f.Paddle = s.paddle.Bounds()
	}

	f.Balls = make([]BallView, 0, len(s.balls))
	for _, b := range s.balls {
		f.Balls = append(f.Balls, BallView{
			Position:   b.Position,
			Radius:     b.Radius,
			Juggernaut: b.Juggernaut,
		})
	}

	f.Bricks = make([]BrickView, 0, len(s.bricks))
	for _, b := range s.bricks {
		if !b.Active {
			continue
		}
		f.Bricks = append(f.Bricks, BrickView{Bounds: b.Bounds(), Color: b.Color})
	}

	f.PowerUps = make([]PowerUpView, 0, len(s.powerUps))
	for _, p := range s.powerUps {
		f.PowerUps = append(f.PowerUps, PowerUpView{
			Bounds: p.Bounds(),
			Type:   p.Type,
			Label:  p.Label(),
		})
	}

	return f
}

// Hash returns a simple hash of the frame for determinism testing.
func (f *Frame) Hash() uint64 {
	h := f.Tick
	h = h*31 + uint64(f.State)        //#nosec G115 -- hash computation
	h = h*31 + uint64(f.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(f.Lives)        //#nosec G115 -- hash computation
	h = h*31 + uint64(f.Level)        //#nosec G115 -- hash computation
	h = h*31 + uint64(f.BallEffect)   //#nosec G115 -- hash computation
	h = h*31 + uint64(f.PaddleEffect) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(f.SpeedMultiplier)
	h = hashRect(h, f.Paddle)

	for _, b := range f.Balls {
		h = h*31 + math.Float64bits(b.Position.X)
		h = h*31 + math.Float64bits(b.Position.Y)
		h = h*31 + math.Float64bits(b.Radius)
	}

	for _, b := range f.Bricks {
		h = hashRect(h, b.Bounds)
	}

	for _, p := range f.PowerUps {
		h = hashRect(h, p.Bounds)
		h = h*31 + uint64(p.Type) //#nosec G115 -- hash computation
	}

	h = h*31 + f.RNGState

	return h
}

func hashRect(h uint64, r core.RectF) uint64 {
	h = h*31 + math.Float64bits(r.X)
	h = h*31 + math.Float64bits(r.Y)
	h = h*31 + math.Float64bits(r.W)
	h = h*31 + math.Float64bits(r.H)
	return h
}
