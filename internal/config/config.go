// Package config provides YAML-based settings loading and persistence for
// the game: ball speed, difficulty, audio levels and the local high score.
package config

import (
	"math"

	"github.com/vovakirdan/aetherbreakout/internal/breakout"
)

// Speed multiplier range offered to the player.
const (
	MinBallSpeed = 0.5
	MaxBallSpeed = 3.0
)

// Settings contains everything persisted between runs.
type Settings struct {
	BallSpeedMultiplier float64          `yaml:"ball_speed_multiplier"`
	Difficulty          DifficultyPreset `yaml:"difficulty"`
	HighScore           int              `yaml:"high_score"`
	Audio               AudioSettings    `yaml:"audio"`
}

// AudioSettings holds volume levels in [0, 1] and mute switches.
type AudioSettings struct {
	SfxVolume   float64 `yaml:"sfx_volume"`
	MusicVolume float64 `yaml:"music_volume"`
	SfxMuted    bool    `yaml:"sfx_muted"`
	MusicMuted  bool    `yaml:"music_muted"`
}

// Normalize brings every field into its valid range.
func (s *Settings) Normalize() {
	s.BallSpeedMultiplier = ClampBallSpeed(s.BallSpeedMultiplier)
	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		s.Difficulty = DifficultyNormal
	}
	if s.HighScore < 0 {
		s.HighScore = 0
	}
	s.Audio.SfxVolume = clampVolume(s.Audio.SfxVolume)
	s.Audio.MusicVolume = clampVolume(s.Audio.MusicVolume)
}

// SpeedMultiplier returns the launch multiplier for a new session: the
// player's ball speed scaled by the difficulty preset.
func (s Settings) SpeedMultiplier() float64 {
	return breakout.NormalizeSpeedMultiplier(s.BallSpeedMultiplier * s.Difficulty.SpeedFactor())
}

// ClampBallSpeed normalizes a multiplier the way the session does and then
// limits it to the slider range.
func ClampBallSpeed(m float64) float64 {
	return clampF(breakout.NormalizeSpeedMultiplier(m), MinBallSpeed, MaxBallSpeed)
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clampF(v, 0, 1)
}
