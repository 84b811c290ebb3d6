package breakout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/aetherbreakout/internal/core"
)

func TestNewSessionStartsInMenu(t *testing.T) {
	s := NewSession(SessionConfig{})

	assert.Equal(t, StateMainMenu, s.State())
	assert.Equal(t, DefaultSpeedMultiplier, s.SpeedMultiplier())

	// Everything is a no-op before a game starts
	s.Update(1.0 / 60)
	s.MovePaddle(10)
	s.GoToMainMenu()

	f := s.Frame()
	assert.Equal(t, StateMainMenu, f.State)
	assert.False(t, f.HasPaddle)
	assert.Empty(t, f.Balls)
	assert.Empty(t, f.Bricks)
}

func TestStartNewGame(t *testing.T) {
	s, audio, _ := startedSession(t)

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 3, s.Lives())
	assert.Equal(t, 0, s.Score())
	require.Len(t, s.balls, 1)
	assert.Len(t, s.bricks, 50)
	assert.Equal(t, []string{MusicFirstTrack}, audio.music)

	ball := s.balls[0]
	assert.InDelta(t, s.paddle.CenterX(), ball.Center().X, 1e-9, "ball starts centered on the paddle")
	assert.Equal(t, BallBaseRadius, ball.Radius)
	assert.Less(t, ball.Velocity.Y, 0.0)
	assert.False(t, ball.Bounds().Intersects(s.paddle.Bounds()))
	assert.InDelta(t, s.paddle.Position.Y-BallSpawnGap, ball.Bounds().Bottom(), 1e-9)
}

func TestStartNewGameOnlyFromMenu(t *testing.T) {
	s, _, _ := startedSession(t)
	s.score = 120

	s.StartNewGame()

	assert.Equal(t, 120, s.Score(), "restart while in game is ignored")
}

func TestNormalizeSpeedMultiplier(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{1.0, 1.0},
		{2.5, 2.5},
		{0, DefaultSpeedMultiplier},
		{-3, DefaultSpeedMultiplier},
		{math.NaN(), DefaultSpeedMultiplier},
		{math.Inf(1), DefaultSpeedMultiplier},
		{0.01, MinSpeedMultiplier},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, NormalizeSpeedMultiplier(tc.in), "input %v", tc.in)
	}
}

func TestSpeedMultiplierScalesLaunch(t *testing.T) {
	s := NewSession(SessionConfig{SpeedMultiplier: 2})
	s.StartNewGame()

	assert.Equal(t, core.V(100, -100), s.balls[0].Velocity)

	s.GoToMainMenu()
	s.SetSpeedMultiplier(-1)
	s.StartNewGame()
	assert.Equal(t, core.V(50, -50), s.balls[0].Velocity)
}

func TestMovePaddle(t *testing.T) {
	s, _, _ := startedSession(t)

	s.MovePaddle(50)
	assert.Equal(t, 37.5, s.paddle.Position.X)

	s.MovePaddle(-100)
	assert.Equal(t, 0.0, s.paddle.Position.X)

	s.MovePaddle(1000)
	assert.Equal(t, BoardWidth-PaddleBaseWidth, s.paddle.Position.X)

	s.MovePaddle(math.NaN())
	assert.Equal(t, BoardWidth-PaddleBaseWidth, s.paddle.Position.X)
}

func TestPaddleVelocityFromMovement(t *testing.T) {
	s, _, _ := startedSession(t)
	placeBall(s, core.V(50, 60), core.V(0, 0))

	s.MovePaddle(60)
	s.Update(0.5)

	assert.InDelta(t, 20.0, s.paddle.Velocity.X, 1e-9)

	s.Update(0.5)
	assert.Zero(t, s.paddle.Velocity.X, "no movement, no velocity")
}

func TestResizeIsNotPaddleMovement(t *testing.T) {
	s, _, _ := startedSession(t)
	placeBall(s, core.V(50, 60), core.V(0, 0))
	s.Update(1.0 / 60)

	center := s.paddle.CenterX()
	s.activate(PowerUpWidenPaddle)
	s.MovePaddle(center)

	// Straight down onto the paddle center
	b := placeBall(s, core.V(center-BallBaseRadius, s.paddle.Position.Y-BallBaseRadius*2+0.5), core.V(0, 30))
	s.Update(1.0 / 60)

	assert.Zero(t, s.paddle.Velocity.X)
	assert.InDelta(t, 0.0, b.Velocity.X, 1e-9)
	assert.Negative(t, b.Velocity.Y)

	s.deactivate(CategoryPaddle)
	s.Update(1.0 / 60)
	assert.Zero(t, s.paddle.Velocity.X, "narrowing back is not movement either")
}

func TestStageClear(t *testing.T) {
	s, _, _ := startedSession(t)
	s.activate(PowerUpWidenPaddle)
	s.activate(PowerUpSplitBall)
	s.powerUps = []*PowerUp{newPowerUp(PowerUpBigBall, core.V(0, 60))}
	s.destroyed = 7
	s.score = 200
	for _, b := range s.bricks {
		b.Active = false
	}

	s.Update(1.0 / 60)

	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 1200, s.Score())
	assert.InDelta(t, 1.01, s.SpeedMultiplier(), 1e-12)
	assert.Len(t, s.bricks, 60, "level 2 has six rows")
	assert.Empty(t, s.powerUps)
	assert.Zero(t, s.destroyed)
	assert.False(t, s.schedule.thresholds[0].fired)

	require.Len(t, s.balls, 1)
	ball := s.balls[0]
	assert.InDelta(t, s.paddle.CenterX(), ball.Center().X, 1e-9)
	assert.InDelta(t, BallLaunchSpeed*1.01, ball.Velocity.X, 1e-9)

	assert.Equal(t, PowerUpNone, s.ActiveEffect(CategoryBall))
	assert.Equal(t, PowerUpNone, s.ActiveEffect(CategoryPaddle))
	assert.Equal(t, PaddleBaseWidth, s.paddle.Size.X)
}

func TestStageClearBeatsLifeLoss(t *testing.T) {
	s, _, _ := startedSession(t)
	placeBall(s, core.V(50, BoardHeight-5.5), core.V(0, 30))
	for _, b := range s.bricks {
		b.Active = false
	}

	s.Update(0.1)

	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 3, s.Lives())
	assert.Len(t, s.balls, 1)
}

func TestLifeLost(t *testing.T) {
	s, audio, _ := startedSession(t)
	s.activate(PowerUpBigBall)
	s.activate(PowerUpWidenPaddle)
	s.powerUps = []*PowerUp{newPowerUp(PowerUpSplitBall, core.V(0, 60))}
	s.destroyed = 4
	placeBall(s, core.V(5, BoardHeight-5.5), core.V(0, 30))

	s.Update(0.1)

	assert.Equal(t, StateInGame, s.State())
	assert.Equal(t, 2, s.Lives())
	require.Len(t, s.balls, 1)
	assert.Equal(t, BallBaseRadius, s.balls[0].Radius)
	assert.Equal(t, PaddleBaseWidth, s.paddle.Size.X)
	assert.Empty(t, s.powerUps)
	assert.Equal(t, 4, s.destroyed, "stage progress survives a lost life")
	assert.Zero(t, audio.count(SfxGameOver))
}

func TestGameOver(t *testing.T) {
	s, audio, keeper := startedSession(t)
	s.lives = 1
	s.score = 500
	placeBall(s, core.V(5, 129), core.V(0, 10))

	s.Update(0.1)

	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, 0, s.Lives())
	assert.Equal(t, 1, keeper.saves)
	assert.Equal(t, 500, keeper.best)
	assert.Equal(t, 1, audio.count(SfxGameOver))
	assert.Equal(t, []float64{0}, audio.fades)
	assert.Equal(t, 1, audio.stops, "music stops once the fade completes")

	// Frozen after game over
	s.Update(0.1)
	assert.Equal(t, 0, s.Lives())

	s.GoToMainMenu()
	assert.Equal(t, StateMainMenu, s.State())
	assert.Equal(t, 1, keeper.saves, "high score is saved exactly once")
	assert.Nil(t, s.paddle)
	assert.Nil(t, s.balls)
	assert.Nil(t, s.bricks)
}

func TestGameOverWithoutNewHighScore(t *testing.T) {
	s, _, keeper := startedSession(t)
	keeper.best = 1000
	s.lives = 1
	s.score = 500
	placeBall(s, core.V(5, 129), core.V(0, 10))

	s.Update(0.1)

	assert.Equal(t, StateGameOver, s.State())
	assert.Zero(t, keeper.saves)
	assert.Equal(t, 1000, s.HighScore())
}

func TestHighScoreSaveFailureIsTolerated(t *testing.T) {
	s, _, keeper := startedSession(t)
	keeper.fail = true
	s.lives = 1
	s.score = 50
	placeBall(s, core.V(5, 129), core.V(0, 10))

	s.Update(0.1)

	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, 50, s.Score())

	s.GoToMainMenu()
	assert.Equal(t, StateMainMenu, s.State())
}

func TestGoToMainMenuFromGame(t *testing.T) {
	s, audio, keeper := startedSession(t)
	s.score = 70

	s.GoToMainMenu()

	assert.Equal(t, StateMainMenu, s.State())
	assert.Equal(t, 70, keeper.best)
	assert.Equal(t, 1, audio.stops)

	s.StartNewGame()
	assert.Equal(t, StateInGame, s.State())
	assert.Equal(t, 0, s.Score())
}

func TestSilentCollaborators(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 3})
	s.StartNewGame()
	s.lives = 1
	s.score = 10
	placeBall(s, core.V(5, 129), core.V(0, 10))

	assert.NotPanics(t, func() { s.Update(0.1) })
	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, 10, s.HighScore())
}

// autoplay keeps the paddle under the first ball.
func autoplay(s *Session) {
	if len(s.balls) > 0 {
		s.MovePaddle(s.balls[0].Center().X)
	}
}

func TestInvariantsHoldDuringPlay(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 99})
	s.StartNewGame()

	prevScore := 0
	prevLevel := s.Level()
	prevBricks := len(s.bricks)

	for frame := range 20000 {
		autoplay(s)
		s.Update(1.0 / 60)

		require.GreaterOrEqual(t, s.Lives(), 0, "frame %d", frame)
		require.GreaterOrEqual(t, s.Score(), prevScore, "frame %d: score went down", frame)
		prevScore = s.Score()

		if s.Level() == prevLevel {
			require.LessOrEqual(t, len(s.bricks), prevBricks, "frame %d: bricks grew", frame)
		}
		prevLevel = s.Level()
		prevBricks = len(s.bricks)

		// State on board must match the single active effect of each category
		ball := s.ActiveEffect(CategoryBall)
		if len(s.balls) > 1 {
			require.Equal(t, PowerUpSplitBall, ball, "frame %d", frame)
		}
		for _, b := range s.balls {
			if b.Radius != BallBaseRadius {
				require.Equal(t, PowerUpBigBall, ball, "frame %d", frame)
			}
			if b.Juggernaut {
				require.Equal(t, PowerUpJuggernaut, ball, "frame %d", frame)
			}
		}
		if s.State() == StateInGame && s.paddle.Size.X != PaddleBaseWidth {
			require.Equal(t, PowerUpWidenPaddle, s.ActiveEffect(CategoryPaddle), "frame %d", frame)
		}

		if s.State() != StateInGame {
			break
		}
	}

	assert.Positive(t, s.Score(), "autoplay should break some bricks")
}

func TestDeterminism(t *testing.T) {
	run := func() Frame {
		s := NewSession(SessionConfig{Seed: 12345})
		s.StartNewGame()
		for i := range 3000 {
			if i%7 != 0 {
				autoplay(s)
			}
			s.Update(1.0 / 60)
		}
		return s.Frame()
	}

	f1 := run()
	f2 := run()

	assert.Equal(t, f1.Hash(), f2.Hash())
	assert.Equal(t, f1.Score, f2.Score)
	assert.Equal(t, f1.Tick, f2.Tick)
}

func TestFrameIsDetached(t *testing.T) {
	s, _, _ := startedSession(t)
	s.powerUps = []*PowerUp{newPowerUp(PowerUpJuggernaut, core.V(20, 60))}

	f := s.Frame()
	require.Len(t, f.Bricks, 50)
	require.Len(t, f.PowerUps, 1)
	assert.Equal(t, "I'M THE JUGGERNAUT", f.PowerUps[0].Label)
	assert.True(t, f.HasPaddle)
	assert.Equal(t, s.paddle.Bounds(), f.Paddle)

	s.balls[0].Position = core.V(1, 1)
	s.bricks[0].Active = false
	assert.NotEqual(t, core.V(1, 1), f.Balls[0].Position)
	assert.Equal(t, core.ColorRed, f.Bricks[0].Color)

	after := s.Frame()
	assert.Len(t, after.Bricks, 49, "inactive bricks are not rendered")
}
