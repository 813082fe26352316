// Package settings stores user gesture preferences in a YAML or TOML file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("settings: unknown file format")

// Settings are the persisted gesture preferences.
type Settings struct {
	NaturalScrolling      bool   `json:"natural_scrolling" yaml:"natural_scrolling" toml:"natural_scrolling"`
	WheelNaturalScrolling bool   `json:"wheel_natural_scrolling" yaml:"wheel_natural_scrolling" toml:"wheel_natural_scrolling"`
	SwitcherStyle         string `json:"switcher_style" yaml:"switcher_style" toml:"switcher_style"`
	LoopingMethod         string `json:"switcher_looping_method" yaml:"switcher_looping_method" toml:"switcher_looping_method"`
	Orientation           string `json:"orientation" yaml:"orientation" toml:"orientation"`
	Inverted              bool   `json:"inverted" yaml:"inverted" toml:"inverted"`
	TextDirection         string `json:"text_direction" yaml:"text_direction" toml:"text_direction"`
	AllowLongSwipes       bool   `json:"allow_long_swipes" yaml:"allow_long_swipes" toml:"allow_long_swipes"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		SwitcherStyle: string(gesture.StyleDefault),
		LoopingMethod: string(gesture.LoopNone),
		Orientation:   "horizontal",
		TextDirection: "ltr",
	}
}

// Preferences converts the stored values into tracker preferences.
func (s Settings) Preferences() gesture.Preferences {
	return gesture.Preferences{
		NaturalScrolling:      s.NaturalScrolling,
		WheelNaturalScrolling: s.WheelNaturalScrolling,
		SwitcherStyle:         gesture.ParseSwitcherStyle(s.SwitcherStyle),
		LoopingMethod:         gesture.ParseLoopingMethod(s.LoopingMethod),
		Orientation:           gesture.ParseOrientation(s.Orientation),
		Inverted:              s.Inverted,
		TextDirection:         gesture.ParseTextDirection(s.TextDirection),
		AllowLongSwipes:       s.AllowLongSwipes,
	}
}

// Load reads settings from path. Missing files return defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	switch format(path) {
	case "yaml":
		err = yaml.Unmarshal(data, &s)
	case "toml":
		err = toml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	switch format(path) {
	case "yaml":
		data, err = yaml.Marshal(s)
	case "toml":
		data, err = toml.Marshal(s)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// format picks the codec from the file extension.
func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
