package config

import (
	"sync"

	"github.com/vovakirdan/aetherbreakout/internal/breakout"
)

// Store keeps the loaded settings and writes every change back to disk.
// It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	path     string
	settings Settings
}

var _ breakout.ScoreKeeper = (*Store)(nil)

// Open loads settings with the same search order as Load. Changes are saved
// to customPath, or to the user settings file when customPath is empty.
func Open(customPath string) (*Store, error) {
	s, err := Load(customPath)
	if err != nil {
		return nil, err
	}
	path := customPath
	if path == "" {
		path = UserSettingsPath()
	}
	return &Store{path: path, settings: s}, nil
}

// Path returns where settings are saved.
func (s *Store) Path() string {
	return s.path
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Save writes the current settings.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Save(s.path, s.settings)
}

// SetBallSpeedMultiplier stores a new ball speed and returns the value
// actually applied after clamping.
func (s *Store) SetBallSpeedMultiplier(m float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.BallSpeedMultiplier = ClampBallSpeed(m)
	return s.settings.BallSpeedMultiplier, Save(s.path, s.settings)
}

// SetDifficulty stores a difficulty preset.
func (s *Store) SetDifficulty(p DifficultyPreset) error {
	if _, err := ParseDifficulty(string(p)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Difficulty = p
	return Save(s.path, s.settings)
}

// SetAudio stores audio levels.
func (s *Store) SetAudio(a AudioSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Audio = a
	s.settings.Normalize()
	return Save(s.path, s.settings)
}

// HighScore returns the best score recorded in the settings file.
func (s *Store) HighScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.HighScore
}

// SaveHighScore records score if it beats the stored one. The in-memory
// value is kept even when writing the file fails.
func (s *Store) SaveHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score <= s.settings.HighScore {
		return nil
	}
	s.settings.HighScore = score
	return Save(s.path, s.settings)
}
