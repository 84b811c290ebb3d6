package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/aetherbreakout/internal/audio"
	"github.com/vovakirdan/aetherbreakout/internal/breakout"
	"github.com/vovakirdan/aetherbreakout/internal/config"
	"github.com/vovakirdan/aetherbreakout/internal/core"
	"github.com/vovakirdan/aetherbreakout/internal/platform/tui"
	"github.com/vovakirdan/aetherbreakout/internal/storage"
)

var (
	flagSeed       int64
	flagMute       bool
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game at the main menu.

Controls:
  Mouse          - Move the paddle
  Left/Right     - Nudge the paddle (also A/D, H/L)
  Enter/Space    - Select in menus
  P              - Pause
  Esc/B          - Back to the main menu
  Q/Ctrl+C       - Quit
  Ctrl+S         - Save a screenshot

Difficulty options (saved to settings):
  easy   - Slower ball
  normal - Configured ball speed
  hard   - Faster ball

Examples:
  breakout play
  breakout play --difficulty hard
  breakout play --seed 42 --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable all audio")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("breakout", true)
	if err != nil {
		return err
	}
	defer closeLog()

	settingsStore, err := config.Open(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		if err := settingsStore.SetDifficulty(preset); err != nil {
			logger.Warn("could not save difficulty", "err", err)
		}
	}
	settings := settingsStore.Settings()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The game still works without run history
	var runs tui.RunRecorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs database unavailable", "path", flagDBPath, "err", err)
	} else {
		defer store.Close()
		runs = storage.NewKeeper(store, "local", logger)
	}

	player := audio.New(audio.Options{
		SfxVolume:   settings.Audio.SfxVolume,
		MusicVolume: settings.Audio.MusicVolume,
		SfxMuted:    settings.Audio.SfxMuted,
		MusicMuted:  settings.Audio.MusicMuted,
		Logger:      logger,
	})
	if !flagMute {
		if err := player.Start(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
	}
	defer player.Close()

	session := breakout.NewSession(breakout.SessionConfig{
		SpeedMultiplier: settings.SpeedMultiplier(),
		Seed:            seed,
		Audio:           player,
		Scores:          settingsStore,
		Logger:          logger,
	})

	logger.Info("starting game", "seed", seed, "speed", settings.SpeedMultiplier(), "difficulty", settings.Difficulty)

	err = tui.Run(tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     seed,
		},
		Session:  session,
		Settings: settingsStore,
		Mixer:    player,
		Runs:     runs,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
