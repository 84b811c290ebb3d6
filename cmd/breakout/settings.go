package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aetherbreakout/internal/config"
)

var (
	flagSpeed       float64
	flagSetDiff     string
	flagSfxVolume   float64
	flagMusicVolume float64
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted settings",
	Long: `Show the current settings, or change them with flags.
Values are clamped to their valid ranges before saving.

Examples:
  breakout settings
  breakout settings --speed 1.5
  breakout settings --difficulty easy --music-volume 0.2`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().Float64Var(&flagSpeed, "speed", 1.0, "Ball speed multiplier (0.5 to 3.0)")
	settingsCmd.Flags().StringVar(&flagSetDiff, "difficulty", "", "Difficulty preset: easy, normal, hard")
	settingsCmd.Flags().Float64Var(&flagSfxVolume, "sfx-volume", 0.8, "Sound effect volume (0 to 1)")
	settingsCmd.Flags().Float64Var(&flagMusicVolume, "music-volume", 0.5, "Music volume (0 to 1)")
}

func runSettings(cmd *cobra.Command, _ []string) error {
	store, err := config.Open(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		if _, err := store.SetBallSpeedMultiplier(flagSpeed); err != nil {
			return err
		}
	}
	if flags.Changed("difficulty") {
		preset, err := config.ParseDifficulty(flagSetDiff)
		if err != nil {
			return err
		}
		if err := store.SetDifficulty(preset); err != nil {
			return err
		}
	}
	if flags.Changed("sfx-volume") || flags.Changed("music-volume") {
		a := store.Settings().Audio
		if flags.Changed("sfx-volume") {
			a.SfxVolume = flagSfxVolume
		}
		if flags.Changed("music-volume") {
			a.MusicVolume = flagMusicVolume
		}
		if err := store.SetAudio(a); err != nil {
			return err
		}
	}

	s := store.Settings()
	fmt.Printf("Settings file:  %s\n", store.Path())
	fmt.Printf("Ball speed:     %.1fx\n", s.BallSpeedMultiplier)
	fmt.Printf("Difficulty:     %s (effective speed %.2fx)\n", s.Difficulty, s.SpeedMultiplier())
	fmt.Printf("High score:     %d\n", s.HighScore)
	fmt.Printf("Sfx volume:     %.2f%s\n", s.Audio.SfxVolume, mutedSuffix(s.Audio.SfxMuted))
	fmt.Printf("Music volume:   %.2f%s\n", s.Audio.MusicVolume, mutedSuffix(s.Audio.MusicMuted))
	return nil
}

func mutedSuffix(muted bool) string {
	if muted {
		return " (muted)"
	}
	return ""
}
