package breakout

import "github.com/vovakirdan/aetherbreakout/internal/core"

// PowerUpType represents the kinds of falling power-ups.
type PowerUpType int

const (
	PowerUpNone        PowerUpType = iota - 1 // No effect active
	PowerUpWidenPaddle                        // Paddle x3 wide
	PowerUpSplitBall                          // One ball becomes three
	PowerUpBigBall                            // Ball radius x3
	PowerUpJuggernaut                         // Balls pass through bricks
	powerUpTypeCount
)

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpNone:
		return "None"
	case PowerUpWidenPaddle:
		return "WidenPaddle"
	case PowerUpSplitBall:
		return "SplitBall"
	case PowerUpBigBall:
		return "BigBall"
	case PowerUpJuggernaut:
		return "Juggernaut"
	default:
		return "Unknown"
	}
}

// Label returns the text shown on a falling power-up.
func (t PowerUpType) Label() string {
	switch t {
	case PowerUpSplitBall:
		return "3x"
	case PowerUpBigBall:
		return "BIG BALLS"
	case PowerUpJuggernaut:
		return "I'M THE JUGGERNAUT"
	default:
		return ""
	}
}

// Category returns the effect slot this power-up occupies.
func (t PowerUpType) Category() Category {
	if t == PowerUpWidenPaddle {
		return CategoryPaddle
	}
	return CategoryBall
}

// Category groups power-ups whose effects are mutually exclusive.
type Category int

const (
	CategoryBall   Category = iota // SplitBall, BigBall, Juggernaut
	CategoryPaddle                 // WidenPaddle
	categoryCount
)

// String returns the category name.
func (c Category) String() string {
	if c == CategoryPaddle {
		return "paddle"
	}
	return "ball"
}

// Power-up tuning.
const (
	PowerUpWidth     = 10.0
	PowerUpHeight    = 5.0
	PowerUpFallSpeed = 20.0 // Units per second

	WidenFactor   = 3.0
	BigBallFactor = 3.0

	firstThresholdMin  = 3
	firstThresholdMax  = 10
	secondThresholdMin = 25
	secondThresholdMax = 35
	secondThresholdLvl = 5 // First level that arms the second threshold
)

// effect is one power-up variant: the slot it occupies and how it changes
// session state. deactivate restores the baseline values, never the values
// seen at activation time.
type effect struct {
	category   Category
	activate   func(s *Session)
	deactivate func(s *Session)
}

var effects = [powerUpTypeCount]effect{
	PowerUpWidenPaddle: {
		category: CategoryPaddle,
		activate: func(s *Session) {
			s.paddle.resize(PaddleBaseWidth * WidenFactor)
		},
		deactivate: func(s *Session) {
			s.paddle.resize(PaddleBaseWidth)
		},
	},
	PowerUpSplitBall: {
		category: CategoryBall,
		activate: func(s *Session) {
			if len(s.balls) == 0 {
				return
			}
			src := s.balls[0]
			left := *src
			left.Velocity.X = -src.Velocity.X
			right := *src
			s.balls = append(s.balls, &left, &right)
		},
		deactivate: func(s *Session) {
			if len(s.balls) > 1 {
				for i := 1; i < len(s.balls); i++ {
					s.balls[i] = nil
				}
				s.balls = s.balls[:1]
			}
		},
	},
	PowerUpBigBall: {
		category: CategoryBall,
		activate: func(s *Session) {
			for _, b := range s.balls {
				b.Radius = BallBaseRadius * BigBallFactor
			}
		},
		deactivate: func(s *Session) {
			for _, b := range s.balls {
				b.Radius = BallBaseRadius
			}
		},
	},
	PowerUpJuggernaut: {
		category: CategoryBall,
		activate: func(s *Session) {
			for _, b := range s.balls {
				b.Juggernaut = true
			}
		},
		deactivate: func(s *Session) {
			for _, b := range s.balls {
				b.Juggernaut = false
			}
		},
	},
}

// threshold is one brick-count trigger in a level's spawn schedule.
type threshold struct {
	at    int
	armed bool
	fired bool
}

// spawnSchedule decides when a destroyed brick drops a power-up.
type spawnSchedule struct {
	thresholds [2]threshold
}

// rollSchedule draws the spawn thresholds for a level.
func rollSchedule(rng *RNG, level int) spawnSchedule {
	return spawnSchedule{
		thresholds: [2]threshold{
			{at: rng.IntRange(firstThresholdMin, firstThresholdMax), armed: true},
			{at: rng.IntRange(secondThresholdMin, secondThresholdMax), armed: level >= secondThresholdLvl},
		},
	}
}

// trigger reports whether destroying the n-th brick of the stage spawns a
// power-up. Each threshold fires at most once.
func (sc *spawnSchedule) trigger(n int) bool {
	for i := range sc.thresholds {
		th := &sc.thresholds[i]
		if th.armed && !th.fired && th.at == n {
			th.fired = true
			return true
		}
	}
	return false
}

// newPowerUp creates a falling power-up at a brick's position.
func newPowerUp(t PowerUpType, at core.Vec2) *PowerUp {
	return &PowerUp{
		Position: at,
		Size:     core.V(PowerUpWidth, PowerUpHeight),
		Type:     t,
	}
}

// activate applies a power-up effect, first fully reverting whatever effect
// currently holds the same category.
func (s *Session) activate(t PowerUpType) {
	if t <= PowerUpNone || t >= powerUpTypeCount {
		return
	}
	e := effects[t]
	s.deactivate(e.category)
	e.activate(s)
	s.active[e.category] = t
	s.log.Debug("power-up activated", "type", t, "category", e.category)
}

// deactivate reverts the effect holding a category, if any.
func (s *Session) deactivate(c Category) {
	t := s.active[c]
	if t == PowerUpNone {
		return
	}
	effects[t].deactivate(s)
	s.active[c] = PowerUpNone
	s.log.Debug("power-up deactivated", "type", t, "category", c)
}

// deactivateAll reverts every active effect.
func (s *Session) deactivateAll() {
	for c := range categoryCount {
		s.deactivate(c)
	}
}

// clearEffects marks every category empty without running deactivation.
func (s *Session) clearEffects() {
	for c := range s.active {
		s.active[c] = PowerUpNone
	}
}

// updatePowerUps moves falling power-ups, collects those touching the paddle
// and drops those that left the board.
func (s *Session) updatePowerUps(dt float64) {
	paddle := s.paddle.Bounds()
	var collected []PowerUpType

	for _, p := range s.powerUps {
		p.Position.Y += PowerUpFallSpeed * dt
		switch {
		case p.Bounds().Intersects(paddle):
			p.gone = true
			collected = append(collected, p.Type)
		case p.Position.Y >= BoardHeight:
			p.gone = true
		}
	}

	kept := s.powerUps[:0]
	for _, p := range s.powerUps {
		if !p.gone {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.powerUps); i++ {
		s.powerUps[i] = nil
	}
	s.powerUps = kept

	for _, t := range collected {
		s.audio.PlaySfx(SfxPowerUp)
		s.activate(t)
	}
}

// maybeSpawnPowerUp drops a random power-up when the stage's destroyed brick
// count hits an armed threshold.
func (s *Session) maybeSpawnPowerUp(at core.Vec2) {
	if !s.schedule.trigger(s.destroyed) {
		return
	}
	t := PowerUpType(s.rng.Intn(int(powerUpTypeCount)))
	s.powerUps = append(s.powerUps, newPowerUp(t, at))
	s.log.Debug("power-up spawned", "type", t, "destroyed", s.destroyed)
}
