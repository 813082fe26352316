// Package app wires the HTTP API, control websocket and gesture loop together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/frudas24/deskswipe/internal/config"
	"github.com/frudas24/deskswipe/internal/control"
	"github.com/frudas24/deskswipe/internal/gesture"
	"github.com/frudas24/deskswipe/internal/loop"
	"github.com/frudas24/deskswipe/internal/pager"
	"github.com/frudas24/deskswipe/internal/session"
	"github.com/frudas24/deskswipe/internal/settings"
)

// State is a point-in-time view of the gesture pipeline.
type State struct {
	Page      int
	Pages     int
	Position  float64
	Progress  float64
	Gesture   string
	Animating bool
}

// App coordinates the HTTP API, the control websocket and the gesture loop.
type App struct {
	mu       sync.Mutex
	cfg      config.Config
	logger   *slog.Logger
	session  *session.Session
	loop     *loop.Loop
	tracker  *gesture.Tracker
	pager    *pager.Pager
	control  *control.Server
	settings settings.Settings
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, logger *slog.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	prefs := s.Preferences()

	l := loop.New(0)
	l.SetLogger(logger)

	tracker := gesture.NewTracker(l, gesture.Options{
		Preferences: prefs,
		Scroll:      cfg.ScrollOptions(),
		Logger:      logger,
	})
	tracker.SetEnabled(sess.InputEnabled())

	pg := pager.New(cfg.Pages, cfg.DragDistance)
	pg.SetLogger(logger)
	pg.SetLooping(prefs.Looping())
	pg.SetRewind(prefs.Rewinds())
	pg.Attach(tracker)

	ctrl := control.NewServer(sess, l, tracker, pg, logger)
	ctrl.SetDragThreshold(cfg.DragThreshold)

	return &App{
		cfg:      cfg,
		logger:   logger,
		session:  sess,
		loop:     l,
		tracker:  tracker,
		pager:    pg,
		control:  ctrl,
		settings: s,
	}, nil
}

// Run drives the gesture loop and the settings watcher until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.SettingsPath), 0o755); err != nil {
		return fmt.Errorf("settings dir: %w", err)
	}
	go func() {
		err := settings.Watch(ctx, a.cfg.SettingsPath, a.logger, a.ApplySettings)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn("settings watch stopped", "err", err)
		}
	}()
	defer a.tracker.Destroy()

	err := a.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ApplySettings replaces the live preferences.
func (a *App) ApplySettings(s settings.Settings) {
	a.mu.Lock()
	a.settings = s
	a.mu.Unlock()

	prefs := s.Preferences()
	a.loop.Post(func() {
		a.tracker.SetPreferences(prefs)
		a.pager.SetLooping(prefs.Looping())
		a.pager.SetRewind(prefs.Rewinds())
	})
}

// SaveSettings persists s and applies it.
func (a *App) SaveSettings(s settings.Settings) error {
	if err := settings.Save(a.cfg.SettingsPath, s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	a.ApplySettings(s)
	return nil
}

// Settings returns the active settings.
func (a *App) Settings() settings.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// State reads the pipeline state on the loop.
func (a *App) State(ctx context.Context) (State, error) {
	var st State
	err := a.loop.Do(ctx, func() {
		snap := a.pager.Snapshot()
		st = State{
			Page:      snap.Page,
			Pages:     snap.Pages,
			Position:  snap.Position,
			Progress:  a.tracker.Progress(),
			Gesture:   a.tracker.State().String(),
			Animating: snap.Animating,
		}
	})
	return st, err
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}
