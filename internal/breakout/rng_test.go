package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(2024)
	b := NewRNG(2024)
	for range 100 {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestRNGZeroSeed(t *testing.T) {
	r := NewRNG(0)
	assert.NotZero(t, r.State())
	assert.NotEqual(t, r.Next(), r.Next())
}

func TestRNGIntRange(t *testing.T) {
	r := NewRNG(5)
	for range 1000 {
		n := r.IntRange(25, 35)
		if n < 25 || n > 35 {
			t.Fatalf("IntRange(25, 35) = %d", n)
		}
	}

	assert.Equal(t, 4, r.IntRange(4, 4))
	assert.Zero(t, r.Intn(0))
}

func TestMemoryScoreKeeper(t *testing.T) {
	k := NewMemoryScoreKeeper(100)
	assert.Equal(t, 100, k.HighScore())

	assert.NoError(t, k.SaveHighScore(50))
	assert.Equal(t, 100, k.HighScore(), "high score never decreases")

	assert.NoError(t, k.SaveHighScore(150))
	assert.Equal(t, 150, k.HighScore())

	assert.Equal(t, 0, NewMemoryScoreKeeper(-5).HighScore())
}

func TestSilentAudioCompletesFade(t *testing.T) {
	done := false
	SilentAudio{}.FadeMusic(0, GameOverFade, func() { done = true })
	assert.True(t, done)

	assert.NotPanics(t, func() { SilentAudio{}.FadeMusic(1, 0, nil) })
}
