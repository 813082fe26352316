// Package config loads environment configuration for deskswipe.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/frudas24/deskswipe/internal/gesture"
)

const (
	defaultListenAddr      = "127.0.0.1:8787"
	defaultDataDir         = "./data"
	defaultSettingsFile    = "settings.yaml"
	defaultPages           = 4
	defaultDragDistance    = 600
	defaultDragThreshold   = gesture.DefaultDragThreshold
	defaultWheelQuietMs    = 400
	defaultWheelDistance   = gesture.DefaultScrollDistance
	defaultWheelMultiplier = gesture.DefaultScrollMultiplier
)

// ErrPasswordRequired is returned with an otherwise complete Config when no
// UI password is set and password mode is on.
var ErrPasswordRequired = errors.New("UI_PASSWORD is required unless PASSWORD_MODE=off")

// PasswordMode values.
const (
	PasswordRequired = "required"
	PasswordOff      = "off"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr      string
	UIPassword      string
	PasswordMode    string
	DataDir         string
	SettingsPath    string
	StaticDir       string
	InputEnabled    bool
	Pages           int
	DragDistance    float64
	DragThreshold   float64
	WheelQuietMs    int
	WheelDistance   float64
	WheelMultiplier float64
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      defaultListenAddr,
		PasswordMode:    PasswordRequired,
		DataDir:         defaultDataDir,
		InputEnabled:    true,
		Pages:           defaultPages,
		DragDistance:    defaultDragDistance,
		DragThreshold:   defaultDragThreshold,
		WheelQuietMs:    defaultWheelQuietMs,
		WheelDistance:   defaultWheelDistance,
		WheelMultiplier: defaultWheelMultiplier,
	}

	if err := loadEnvFile(filepath.Join(envString("DATA_DIR", cfg.DataDir), ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.SettingsPath = envString("SETTINGS_PATH", filepath.Join(cfg.DataDir, defaultSettingsFile))
	cfg.StaticDir = envString("STATIC_DIR", "")
	cfg.PasswordMode = normalizePasswordMode(envString("PASSWORD_MODE", cfg.PasswordMode))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.InputEnabled = envBool("INPUT_ENABLED", cfg.InputEnabled)

	pages, err := envInt("PAGES", cfg.Pages)
	if err != nil {
		return Config{}, err
	}
	if pages <= 0 {
		return Config{}, fmt.Errorf("PAGES must be > 0")
	}
	cfg.Pages = pages

	dragDistance, err := envFloat("DRAG_DISTANCE", cfg.DragDistance)
	if err != nil {
		return Config{}, err
	}
	if dragDistance <= 0 {
		return Config{}, fmt.Errorf("DRAG_DISTANCE must be > 0")
	}
	cfg.DragDistance = dragDistance

	dragThreshold, err := envFloat("DRAG_THRESHOLD", cfg.DragThreshold)
	if err != nil {
		return Config{}, err
	}
	if dragThreshold < 0 {
		return Config{}, fmt.Errorf("DRAG_THRESHOLD must be >= 0")
	}
	cfg.DragThreshold = dragThreshold

	quiet, err := envInt("WHEEL_QUIET_MS", cfg.WheelQuietMs)
	if err != nil {
		return Config{}, err
	}
	if quiet <= 0 {
		return Config{}, fmt.Errorf("WHEEL_QUIET_MS must be > 0")
	}
	cfg.WheelQuietMs = quiet

	wheelDistance, err := envFloat("WHEEL_DISTANCE", cfg.WheelDistance)
	if err != nil {
		return Config{}, err
	}
	if wheelDistance <= 0 {
		return Config{}, fmt.Errorf("WHEEL_DISTANCE must be > 0")
	}
	cfg.WheelDistance = wheelDistance

	multiplier, err := envFloat("WHEEL_MULTIPLIER", cfg.WheelMultiplier)
	if err != nil {
		return Config{}, err
	}
	if multiplier <= 0 {
		return Config{}, fmt.Errorf("WHEEL_MULTIPLIER must be > 0")
	}
	cfg.WheelMultiplier = multiplier

	if cfg.PasswordMode == PasswordRequired && cfg.UIPassword == "" {
		return cfg, ErrPasswordRequired
	}

	return cfg, nil
}

// ScrollOptions returns the wheel adapter tuning.
func (c Config) ScrollOptions() gesture.ScrollOptions {
	return gesture.ScrollOptions{
		Multiplier:  c.WheelMultiplier,
		Distance:    c.WheelDistance,
		QuietPeriod: time.Duration(c.WheelQuietMs) * time.Millisecond,
	}
}

// normalizePasswordMode ensures a supported password mode value.
func normalizePasswordMode(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "none", "disabled":
		return PasswordOff
	default:
		return PasswordRequired
	}
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
