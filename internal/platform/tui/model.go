package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aetherbreakout/internal/breakout"
	"github.com/vovakirdan/aetherbreakout/internal/config"
	"github.com/vovakirdan/aetherbreakout/internal/core"
	"github.com/vovakirdan/aetherbreakout/internal/storage"
)

// NudgeStep is how far one left/right key press moves the paddle target,
// in board units.
const NudgeStep = 6.0

// Mixer is the audio device the host drives once per tick.
type Mixer interface {
	Update()
	EndPlaylist()
	SetSfxMuted(muted bool)
	SetMusicMuted(muted bool)
}

// RunRecorder stores finished runs.
type RunRecorder interface {
	RecordRun(score, level int) (storage.Run, error)
}

// Options configures a Model. Only Session is required.
type Options struct {
	Runtime  core.RuntimeConfig
	Session  *breakout.Session
	Settings SettingsStore // Main menu settings rows; nil hides them
	Mixer    Mixer
	Runs     RunRecorder
	Logger   *log.Logger
}

// Model is the Bubble Tea model hosting one game session.
type Model struct {
	session  *breakout.Session
	settings SettingsStore
	mixer    Mixer
	runs     RunRecorder
	log      *log.Logger

	screen *core.Screen
	layout Layout
	config core.RuntimeConfig
	keys   *KeyMapper
	help   help.Model
	menu   mainMenu
	input  core.InputFrame

	target   float64 // Desired paddle center in board units
	paused   bool
	runSaved bool // Whether the finished run has been recorded
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		session:  opts.Session,
		settings: opts.Settings,
		mixer:    opts.Mixer,
		runs:     opts.Runs,
		log:      logger,
		screen:   core.NewScreen(cfg.ScreenW, fieldHeight(cfg.ScreenH)),
		layout:   NewLayout(cfg.ScreenW, fieldHeight(cfg.ScreenH)),
		config:   cfg,
		keys:     NewKeyMapper(),
		help:     h,
		menu:     newMainMenu(opts.Settings != nil),
		input:    core.NewInputFrame(),
		target:   breakout.BoardWidth / 2,
	}
}

// fieldHeight is the screen height left after the help line.
func fieldHeight(h int) int {
	return core.Max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.input.Point(msg.X)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, fieldHeight(msg.Height))
		m.layout = NewLayout(msg.Width, fieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Menu keys act at once; game keys are
// collected into the input frame and applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.session.State() {
	case breakout.StateMainMenu:
		res, err := m.menu.handle(m.keys.MapKeyToMenuAction(msg), m.settings)
		if err != nil {
			m.log.Warn("saving settings", "err", err)
		}
		switch res {
		case menuStart:
			m.startGame()
		case menuExit:
			return m.quit()
		case menuChanged:
			m.applySettings()
		}
		return m, nil

	case breakout.StateGameOver:
		action, isQuit := m.keys.MapKey(msg)
		switch {
		case isQuit:
			return m.quit()
		case action == core.ActionConfirm:
			m.session.GoToMainMenu()
			m.startGame()
		case action == core.ActionBack:
			m.session.GoToMainMenu()
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.input) {
		return m.quit()
	}
	return m, nil
}

// handleTick applies collected input and advances the simulation by one
// fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.input.HasPointer {
		m.target = m.layout.ColumnToBoard(m.input.PointerCol)
	}

	if m.session.State() == breakout.StateInGame {
		if m.input.Has(core.ActionLeft) {
			m.target -= NudgeStep
		}
		if m.input.Has(core.ActionRight) {
			m.target += NudgeStep
		}
		m.target = core.ClampF(m.target, 0, breakout.BoardWidth)

		if m.input.Has(core.ActionPause) {
			m.paused = !m.paused
		}

		switch {
		case m.input.Has(core.ActionBack):
			m.paused = false
			m.session.GoToMainMenu()
		case !m.paused:
			m.session.MovePaddle(m.target)
			m.session.Update(m.config.TickSeconds())
		}
	}

	if m.session.State() == breakout.StateGameOver && !m.runSaved {
		m.recordRun()
	}

	if m.mixer != nil {
		m.mixer.Update()
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) startGame() {
	m.session.StartNewGame()
	m.target = breakout.BoardWidth / 2
	m.paused = false
	m.runSaved = false
}

// quit leaves the game, persisting the high score of a run in progress.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.session.State() != breakout.StateMainMenu {
		m.session.GoToMainMenu()
	}
	m.quitting = true
	return m, tea.Quit
}

// recordRun runs once per finished game.
func (m *Model) recordRun() {
	m.runSaved = true
	if m.mixer != nil {
		// The game over fade must not roll into the next track
		m.mixer.EndPlaylist()
	}
	if m.runs == nil {
		return
	}
	run, err := m.runs.RecordRun(m.session.Score(), m.session.Level())
	if err != nil {
		m.log.Warn("recording run", "err", err)
		return
	}
	m.log.Info("run recorded", "run", run.RunID, "score", run.Score, "level", run.Level)
}

// applySettings pushes changed settings to the session and the mixer.
func (m *Model) applySettings() {
	s := m.settings.Settings()
	m.session.SetSpeedMultiplier(s.SpeedMultiplier())
	if m.mixer != nil {
		m.mixer.SetMusicMuted(s.Audio.MusicMuted)
		m.mixer.SetSfxMuted(s.Audio.SfxMuted)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := config.UserDir()
	if dir == "" {
		return
	}
	dir = filepath.Join(dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("saving screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("breakout_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("saving screenshot", "err", err)
	}
}

// draw renders the current state into the screen buffer.
func (m *Model) draw() {
	m.screen.Clear()
	if m.layout.TooSmall {
		m.screen.DrawTextCentered(m.screen.Height()/2, "Terminal too small")
		return
	}

	f := m.session.Frame()
	DrawFrame(m.screen, m.layout, f)

	switch f.State {
	case breakout.StateMainMenu:
		m.menu.draw(m.screen, m.layout, f.HighScore, m.settings)
	case breakout.StateGameOver:
		drawCenteredBlock(m.screen, m.layout,
			[]string{"GAME OVER", "", fmt.Sprintf("SCORE %d   LEVEL %d", f.Score, f.Level), "", "enter: play again   esc: menu"},
			[]core.Color{core.ColorBrightRed, core.ColorDefault, core.ColorBrightWhite, core.ColorDefault, core.ColorGray})
	default:
		if m.paused {
			drawCenteredBlock(m.screen, m.layout, []string{"PAUSED"}, []core.Color{core.ColorBrightYellow})
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// Session returns the hosted session.
func (m Model) Session() *breakout.Session {
	return m.session
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Pointer X drives the paddle
	)

	_, err := p.Run()
	return err
}
