// breakout is a terminal brick breaker with multi-ball power-ups.
//
// Usage:
//
//	breakout play            - Play in this terminal
//	breakout scores          - Show the best recorded runs
//	breakout settings        - Show or change persisted settings
//	breakout serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set runs database path (default: ~/.aetherbreakout/runs.db)
//	--config <path>     - Use a custom settings file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/aetherbreakout/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Aether Breakout - break bricks in your terminal",
	Long: `Aether Breakout is a brick breaker for the terminal. Catch falling
power-ups to split your ball, widen the paddle or smash through bricks.

Available commands:
  play      - Play in this terminal
  scores    - View the best recorded runs
  settings  - Show or change ball speed, difficulty and volume
  serve     - Start SSH server for remote play

Examples:
  breakout play
  breakout play --difficulty hard
  breakout scores -i
  breakout settings --speed 1.5
  breakout serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.aetherbreakout/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. toFile sends output to the log file
// in the user dir, since a full screen game owns the terminal.
func newLogger(prefix string, toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := os.Stderr
	closeFn := func() {}
	if toFile {
		dir := config.UserDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create %s: %w", dir, err)
		}
		path := filepath.Join(dir, "breakout.log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //#nosec G302 G304 -- log file in the user dir
		if err != nil {
			return nil, nil, fmt.Errorf("open log %s: %w", path, err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, closeFn, nil
}
