package breakout

import (
	"sync"
	"time"
)

// Sound effect and music names emitted by the session.
const (
	SfxBounce   = "bounce"
	SfxPop      = "pop"
	SfxPowerUp  = "powerup"
	SfxGameOver = "gameover"

	MusicFirstTrack = "bgm1"
)

// GameOverFade is how long the music takes to fade out after game over.
const GameOverFade = 2 * time.Second

// Audio receives fire-and-forget sound requests. Implementations must not
// block the caller.
type Audio interface {
	PlaySfx(name string)
	PlayMusic(name string, loop bool)
	StopMusic()
	// FadeMusic ramps the music volume to target over duration and then
	// calls onComplete, which may be nil.
	FadeMusic(target float64, duration time.Duration, onComplete func())
}

// ScoreKeeper persists the best score across sessions.
type ScoreKeeper interface {
	HighScore() int
	SaveHighScore(score int) error
}

// SilentAudio is an Audio that plays nothing. Fades complete immediately.
type SilentAudio struct{}

func (SilentAudio) PlaySfx(string)         {}
func (SilentAudio) PlayMusic(string, bool) {}
func (SilentAudio) StopMusic()             {}

func (SilentAudio) FadeMusic(_ float64, _ time.Duration, onComplete func()) {
	if onComplete != nil {
		onComplete()
	}
}

// MemoryScoreKeeper holds the high score in memory only.
type MemoryScoreKeeper struct {
	mu   sync.Mutex
	best int
}

// NewMemoryScoreKeeper creates a keeper starting at the given high score.
func NewMemoryScoreKeeper(initial int) *MemoryScoreKeeper {
	if initial < 0 {
		initial = 0
	}
	return &MemoryScoreKeeper{best: initial}
}

// HighScore returns the stored high score.
func (k *MemoryScoreKeeper) HighScore() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.best
}

// SaveHighScore stores score if it beats the current high score.
func (k *MemoryScoreKeeper) SaveHighScore(score int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if score > k.best {
		k.best = score
	}
	return nil
}
