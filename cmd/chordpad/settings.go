package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"gopkg.in/yaml.v3"
)

const settingsFileName = ".chordpad.yaml"

// Settings are the user's defaults, read from a YAML file
type Settings struct {
	DefaultKey string `yaml:"default_key"`
	Octave     int    `yaml:"octave"`
	Inversion  int    `yaml:"inversion"`
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return settingsFileName
	}
	return filepath.Join(home, settingsFileName)
}

// LoadSettings reads settings from path. A missing file yields zero settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if s.DefaultKey != "" {
		if _, err := theory.PitchIndex(s.DefaultKey); err != nil {
			return s, fmt.Errorf("settings default_key: %w", err)
		}
	}
	if s.Inversion < 0 || s.Inversion > theory.MaxInversion {
		return s, fmt.Errorf("settings inversion must be between 0 and %d", theory.MaxInversion)
	}
	return s, nil
}
