package breakout

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/aetherbreakout/internal/core"
)

// recordingAudio captures every request the session makes.
type recordingAudio struct {
	sfx   []string
	music []string
	stops int
	fades []float64
}

func (a *recordingAudio) PlaySfx(name string)           { a.sfx = append(a.sfx, name) }
func (a *recordingAudio) PlayMusic(name string, _ bool) { a.music = append(a.music, name) }
func (a *recordingAudio) StopMusic()                    { a.stops++ }

func (a *recordingAudio) FadeMusic(target float64, _ time.Duration, onComplete func()) {
	a.fades = append(a.fades, target)
	if onComplete != nil {
		onComplete()
	}
}

func (a *recordingAudio) count(name string) int {
	n := 0
	for _, s := range a.sfx {
		if s == name {
			n++
		}
	}
	return n
}

// countingKeeper counts writes and can be told to fail them.
type countingKeeper struct {
	best  int
	saves int
	fail  bool
}

func (k *countingKeeper) HighScore() int { return k.best }

func (k *countingKeeper) SaveHighScore(score int) error {
	k.saves++
	if k.fail {
		return errors.New("disk full")
	}
	k.best = score
	return nil
}

// startedSession returns an in-game session wired to recorders.
func startedSession(t *testing.T) (*Session, *recordingAudio, *countingKeeper) {
	t.Helper()
	audio := &recordingAudio{}
	keeper := &countingKeeper{}
	s := NewSession(SessionConfig{Seed: 42, Audio: audio, Scores: keeper})
	s.StartNewGame()
	require.Equal(t, StateInGame, s.State())
	return s, audio, keeper
}

// placeBall replaces the ball set with a single ball.
func placeBall(s *Session, pos, vel core.Vec2) *Ball {
	b := &Ball{Position: pos, Velocity: vel, Radius: BallBaseRadius}
	s.balls = []*Ball{b}
	return b
}

func ballValues(balls []*Ball) []Ball {
	out := make([]Ball, len(balls))
	for i, b := range balls {
		out[i] = *b
	}
	return out
}
