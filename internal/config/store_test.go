package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) (*Store, string) {
	t.Helper()
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	st, err := Open(path)
	require.NoError(t, err)
	return st, path
}

func TestOpenDefaultsToUserPath(t *testing.T) {
	home := isolateHome(t)

	st, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".aetherbreakout", SettingsFile), st.Path())
}

func TestStoreHighScoreNeverDecreases(t *testing.T) {
	st, path := openTempStore(t)

	require.NoError(t, st.SaveHighScore(500))
	require.NoError(t, st.SaveHighScore(300))
	assert.Equal(t, 500, st.HighScore())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, reloaded.HighScore)
}

func TestStoreSetBallSpeed(t *testing.T) {
	st, path := openTempStore(t)

	applied, err := st.SetBallSpeedMultiplier(5)
	require.NoError(t, err)
	assert.Equal(t, MaxBallSpeed, applied)

	applied, err = st.SetBallSpeedMultiplier(1.75)
	require.NoError(t, err)
	assert.Equal(t, 1.75, applied)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1.75, reopened.Settings().BallSpeedMultiplier)
}

func TestStoreSetDifficultyAndAudio(t *testing.T) {
	st, _ := openTempStore(t)

	assert.Error(t, st.SetDifficulty("insane"))
	require.NoError(t, st.SetDifficulty(DifficultyEasy))

	require.NoError(t, st.SetAudio(AudioSettings{SfxVolume: 2, MusicVolume: 0.25, MusicMuted: true}))

	s := st.Settings()
	assert.Equal(t, DifficultyEasy, s.Difficulty)
	assert.Equal(t, 1.0, s.Audio.SfxVolume)
	assert.Equal(t, 0.25, s.Audio.MusicVolume)
	assert.True(t, s.Audio.MusicMuted)
}

func TestStoreKeepsScoreWhenSaveFails(t *testing.T) {
	st := &Store{settings: DefaultSettings()}

	err := st.SaveHighScore(900)
	require.Error(t, err)
	assert.Equal(t, 900, st.HighScore())
}
