package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/aetherbreakout/internal/config"
	"github.com/vovakirdan/aetherbreakout/internal/core"
)

// SettingsStore is the persisted settings the main menu edits.
type SettingsStore interface {
	Settings() config.Settings
	SetBallSpeedMultiplier(m float64) (float64, error)
	SetAudio(a config.AudioSettings) error
}

// SpeedStep is how much one left/right press changes the ball speed.
const SpeedStep = 0.1

type menuItem int

const (
	menuPlay menuItem = iota
	menuSpeed
	menuMusic
	menuSfx
	menuQuit
)

// menuResult tells the host what a menu key press asked for.
type menuResult int

const (
	menuNone menuResult = iota
	menuStart
	menuExit
	menuChanged // A setting changed
)

// mainMenu is the title screen. Settings rows are only offered when a
// store is attached.
type mainMenu struct {
	items  []menuItem
	cursor int
}

func newMainMenu(withSettings bool) mainMenu {
	items := []menuItem{menuPlay}
	if withSettings {
		items = append(items, menuSpeed, menuMusic, menuSfx)
	}
	items = append(items, menuQuit)
	return mainMenu{items: items}
}

func (mm mainMenu) current() menuItem {
	return mm.items[mm.cursor]
}

// handle applies a menu action. Setting changes are written to store.
func (mm *mainMenu) handle(a MenuAction, store SettingsStore) (menuResult, error) {
	switch a {
	case MenuActionQuit:
		return menuExit, nil
	case MenuActionUp:
		if mm.cursor > 0 {
			mm.cursor--
		}
	case MenuActionDown:
		if mm.cursor < len(mm.items)-1 {
			mm.cursor++
		}
	case MenuActionLeft, MenuActionRight:
		if mm.current() != menuSpeed || store == nil {
			return menuNone, nil
		}
		step := SpeedStep
		if a == MenuActionLeft {
			step = -step
		}
		speed := store.Settings().BallSpeedMultiplier + step
		// Keep the slider on whole steps
		speed = math.Round(speed/SpeedStep) * SpeedStep
		_, err := store.SetBallSpeedMultiplier(speed)
		return menuChanged, err
	case MenuActionSelect:
		switch mm.current() {
		case menuPlay:
			return menuStart, nil
		case menuQuit:
			return menuExit, nil
		case menuMusic, menuSfx:
			a := store.Settings().Audio
			if mm.current() == menuMusic {
				a.MusicMuted = !a.MusicMuted
			} else {
				a.SfxMuted = !a.SfxMuted
			}
			return menuChanged, store.SetAudio(a)
		}
	}
	return menuNone, nil
}

func (mm mainMenu) label(it menuItem, s config.Settings) string {
	onOff := func(muted bool) string {
		if muted {
			return "OFF"
		}
		return "ON"
	}
	switch it {
	case menuPlay:
		return "PLAY"
	case menuSpeed:
		return fmt.Sprintf("BALL SPEED  < %.1fx >", s.BallSpeedMultiplier)
	case menuMusic:
		return "MUSIC  " + onOff(s.Audio.MusicMuted)
	case menuSfx:
		return "SOUND  " + onOff(s.Audio.SfxMuted)
	case menuQuit:
		return "QUIT"
	}
	return ""
}

// draw renders the title and the menu rows in the playfield.
func (mm mainMenu) draw(s *core.Screen, l Layout, highScore int, store SettingsStore) {
	var settings config.Settings
	if store != nil {
		settings = store.Settings()
	}

	lines := []string{"A E T H E R   B R E A K O U T", "", fmt.Sprintf("HIGH SCORE %d", highScore), ""}
	colors := []core.Color{core.ColorBrightCyan, core.ColorDefault, core.ColorBrightYellow, core.ColorDefault}
	for i, it := range mm.items {
		text := "  " + mm.label(it, settings) + "  "
		c := core.ColorGray
		if i == mm.cursor {
			text = "> " + mm.label(it, settings) + " <"
			c = core.ColorBrightWhite
		}
		lines = append(lines, text)
		colors = append(colors, c)
	}
	drawCenteredBlock(s, l, lines, colors)
}
