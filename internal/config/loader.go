package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the settings file name inside the user directory.
const SettingsFile = "settings.yaml"

// Load loads settings.
// Search order: customPath -> ~/.aetherbreakout/settings.yaml -> embedded default.
// A custom path that does not exist yet yields the defaults, so a first run
// can create it with Save.
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if errors.Is(err, fs.ErrNotExist) {
			return embeddedSettings(), nil
		}
		if err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseSettings(data)
		if err != nil {
			return Settings{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserSettingsPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSettings(data); err == nil {
				return cfg, nil
			}
		}
	}

	return embeddedSettings(), nil
}

// Save writes settings to path, creating its directory.
func Save(path string, s Settings) error {
	if path == "" {
		return errors.New("config: no settings path")
	}
	s.Normalize()
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// parseSettings decodes YAML over the defaults so missing keys keep their
// default values.
func parseSettings(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

func embeddedSettings() Settings {
	cfg, err := parseSettings(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// UserDir returns ~/.aetherbreakout, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aetherbreakout")
}

// UserSettingsPath returns the path to the user settings file, or empty if
// home is unavailable.
func UserSettingsPath() string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, SettingsFile)
}
