package breakout

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aetherbreakout/internal/core"
)

// State is the session lifecycle state.
type State int

const (
	StateMainMenu State = iota // Initial, no entities exist
	StateInGame                // Simulation running
	StateGameOver              // Out of lives, final frame kept for display
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "MainMenu"
	case StateInGame:
		return "InGame"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Speed multiplier bounds.
const (
	DefaultSpeedMultiplier = 1.0
	MinSpeedMultiplier     = 0.1
)

// NormalizeSpeedMultiplier maps a configured multiplier to a usable one.
// Non-finite and non-positive values fall back to the default; tiny
// positive values are raised to MinSpeedMultiplier.
func NormalizeSpeedMultiplier(m float64) float64 {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return DefaultSpeedMultiplier
	}
	if m < MinSpeedMultiplier {
		return MinSpeedMultiplier
	}
	return m
}

// SessionConfig holds the collaborators and tuning for a session.
// Zero values are valid: nil collaborators become silent or in-memory.
type SessionConfig struct {
	SpeedMultiplier float64 // Ball speed at level 1
	Seed            int64   // Seed for power-up schedule and types
	Audio           Audio
	Scores          ScoreKeeper
	Logger          *log.Logger
}

// Session owns one player's game: score, lives, level and all entities.
// It is not safe for concurrent use; hosts that render on another goroutine
// should read the Frame snapshot instead.
type Session struct {
	state State

	score int
	lives int
	level int

	baseMultiplier  float64 // Multiplier restored by StartNewGame
	speedMultiplier float64 // Grows by LevelSpeedGrowth per cleared stage

	paddle   *Paddle
	balls    []*Ball
	bricks   []*Brick
	powerUps []*PowerUp

	schedule  spawnSchedule
	destroyed int // Bricks destroyed this stage
	active    [categoryCount]PowerUpType

	tick uint64
	rng  *RNG

	audio  Audio
	scores ScoreKeeper
	log    *log.Logger
}

// NewSession creates a session in the main menu.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		state:  StateMainMenu,
		rng:    NewRNG(cfg.Seed),
		audio:  cfg.Audio,
		scores: cfg.Scores,
		log:    cfg.Logger,
	}
	if s.audio == nil {
		s.audio = SilentAudio{}
	}
	if s.scores == nil {
		s.scores = NewMemoryScoreKeeper(0)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	s.baseMultiplier = NormalizeSpeedMultiplier(cfg.SpeedMultiplier)
	s.speedMultiplier = s.baseMultiplier
	s.clearEffects()
	return s
}

// SetSpeedMultiplier changes the level 1 ball speed for the next game.
func (s *Session) SetSpeedMultiplier(m float64) {
	s.baseMultiplier = NormalizeSpeedMultiplier(m)
	if s.state == StateMainMenu {
		s.speedMultiplier = s.baseMultiplier
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// SpeedMultiplier returns the multiplier applied to newly spawned balls.
func (s *Session) SpeedMultiplier() float64 { return s.speedMultiplier }

// HighScore returns the persisted high score.
func (s *Session) HighScore() int { return s.scores.HighScore() }

// ActiveEffect returns the power-up holding a category, or PowerUpNone.
func (s *Session) ActiveEffect(c Category) PowerUpType {
	if c < 0 || c >= categoryCount {
		return PowerUpNone
	}
	return s.active[c]
}

// StartNewGame begins a run from the main menu. It does nothing in any
// other state.
func (s *Session) StartNewGame() {
	if s.state != StateMainMenu {
		return
	}

	s.score = 0
	s.lives = StartingLives
	s.level = 1
	s.speedMultiplier = s.baseMultiplier
	s.tick = 0
	s.clearEffects()

	s.paddle = newPaddle()
	s.startStage()

	s.state = StateInGame
	s.audio.PlayMusic(MusicFirstTrack, false)
	s.log.Info("game started", "speed", s.speedMultiplier)
}

// startStage lays out the current level and resets per-stage state.
func (s *Session) startStage() {
	s.bricks = GenerateLevel(s.level)
	s.powerUps = nil
	s.destroyed = 0
	s.schedule = rollSchedule(s.rng, s.level)
	s.resetBalls()
}

// resetBalls replaces every ball with one baseline ball resting above the
// paddle center.
func (s *Session) resetBalls() {
	speed := BallLaunchSpeed * s.speedMultiplier
	x := s.paddle.CenterX() - BallBaseRadius
	y := s.paddle.Position.Y - BallBaseRadius*2 - BallSpawnGap
	s.balls = []*Ball{{
		Position: core.V(x, y),
		Velocity: core.V(speed, -speed),
		Radius:   BallBaseRadius,
	}}
}

// MovePaddle sets the desired paddle center in board units. The paddle is
// kept fully inside the board. Non-finite input is ignored.
func (s *Session) MovePaddle(centerX float64) {
	if s.paddle == nil || math.IsNaN(centerX) || math.IsInf(centerX, 0) {
		return
	}
	s.paddle.centerOn(centerX)
}

// Update advances the simulation by dt seconds. It runs only while in game.
// Each frame: paddle velocity, ball physics, brick purge, power-ups, stage
// clear, then ball exhaustion.
func (s *Session) Update(dt float64) {
	if s.state != StateInGame || s.paddle == nil {
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return
	}
	s.tick++

	s.paddle.trackVelocity(dt)

	for _, b := range s.balls {
		s.updateBall(b, dt)
	}
	s.balls = compactBalls(s.balls)
	s.bricks = purgeBricks(s.bricks)

	s.updatePowerUps(dt)

	if len(s.bricks) == 0 {
		s.clearStage()
		return
	}

	if len(s.balls) == 0 {
		s.loseLife()
	}
}

// updateBall runs one ball through motion and every collision test.
func (s *Session) updateBall(b *Ball, dt float64) {
	integrate(b, dt)

	switch resolveWalls(b) {
	case WallBottom:
		b.lost = true
		return
	case WallSide, WallTop:
		s.audio.PlaySfx(SfxBounce)
	}

	if resolvePaddle(b, s.paddle) {
		s.audio.PlaySfx(SfxBounce)
	}

	if brick := resolveBricks(b, s.bricks); brick != nil {
		s.score += BrickScore
		s.destroyed++
		s.audio.PlaySfx(SfxPop)
		s.maybeSpawnPowerUp(brick.Position)
	}
}

// clearStage moves to the next level.
func (s *Session) clearStage() {
	s.level++
	s.score += StageClearBonus
	s.speedMultiplier *= LevelSpeedGrowth
	s.deactivateAll()
	s.startStage()
	s.log.Debug("stage cleared", "level", s.level, "score", s.score, "speed", s.speedMultiplier)
}

// loseLife handles the last ball leaving the board.
func (s *Session) loseLife() {
	s.lives--
	s.deactivateAll()
	s.powerUps = nil

	if s.lives > 0 {
		s.resetBalls()
		s.log.Debug("life lost", "lives", s.lives)
		return
	}

	s.lives = 0
	s.state = StateGameOver
	s.recordHighScore()
	s.audio.PlaySfx(SfxGameOver)
	s.audio.FadeMusic(0, GameOverFade, s.audio.StopMusic)
	s.log.Info("game over", "score", s.score, "level", s.level)
}

// GoToMainMenu ends the run from GameOver or InGame and discards every
// entity.
func (s *Session) GoToMainMenu() {
	if s.state == StateMainMenu {
		return
	}
	s.recordHighScore()

	s.paddle = nil
	s.balls = nil
	s.bricks = nil
	s.powerUps = nil
	s.clearEffects()
	s.speedMultiplier = s.baseMultiplier

	s.state = StateMainMenu
	s.audio.StopMusic()
}

// recordHighScore writes the score through the keeper when it beats the
// stored value. Persistence failures are logged and otherwise ignored.
func (s *Session) recordHighScore() {
	if s.score <= s.scores.HighScore() {
		return
	}
	if err := s.scores.SaveHighScore(s.score); err != nil {
		s.log.Warn("failed to save high score", "score", s.score, "err", err)
		return
	}
	s.log.Info("new high score", "score", s.score)
}
