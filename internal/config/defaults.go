package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		BallSpeedMultiplier: 1.0,
		Difficulty:          DifficultyNormal,
		HighScore:           0,
		Audio: AudioSettings{
			SfxVolume:   0.8,
			MusicVolume: 0.5,
		},
	}
}
