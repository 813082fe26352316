// Package tui is a terminal page switcher driven by mouse wheel and drag.
package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frudas24/deskswipe/internal/gesture"
	"github.com/frudas24/deskswipe/internal/pager"
)

const (
	// FrameInterval paces redraws while a gesture or settle is running.
	FrameInterval = 16 * time.Millisecond
	// CellWidth is the pixel width assumed for one terminal column.
	CellWidth = 8
	// CellHeight is the pixel height assumed for one terminal row.
	CellHeight = 16
)

// frameMsg is an animation tick.
type frameMsg time.Time

// Options configures a Model.
type Options struct {
	Pages         int
	Preferences   gesture.Preferences
	Scroll        gesture.ScrollOptions
	DragThreshold float64
	Scheduler     gesture.Scheduler
	Logger        *slog.Logger
	Now           func() time.Time
}

// Model is the bubbletea model for the page switcher.
type Model struct {
	tracker *gesture.Tracker
	pager   *pager.Pager
	pan     *gesture.PanRecognizer
	logger  *slog.Logger
	now     func() time.Time

	width        int
	height       int
	inputEnabled bool
	ticking      bool
	quitting     bool
	styles       styles
}

// NewModel wires a tracker, pager and pan recognizer for terminal input.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pages <= 0 {
		opts.Pages = 1
	}

	tracker := gesture.NewTracker(opts.Scheduler, gesture.Options{
		Preferences: opts.Preferences,
		Scroll:      opts.Scroll,
		Logger:      opts.Logger,
	})
	pg := pager.New(opts.Pages, 80*CellWidth)
	pg.SetLogger(opts.Logger)
	pg.SetNowFunc(opts.Now)
	pg.SetLooping(opts.Preferences.Looping())
	pg.SetRewind(opts.Preferences.Rewinds())
	pg.Attach(tracker)

	pan := gesture.NewPanRecognizer(tracker)
	pan.SetNowFunc(opts.Now)
	if opts.DragThreshold > 0 {
		pan.SetThreshold(opts.DragThreshold)
	}

	return &Model{
		tracker:      tracker,
		pager:        pg,
		pan:          pan,
		logger:       opts.Logger,
		now:          opts.Now,
		width:        80,
		height:       24,
		inputEnabled: true,
		styles:       defaultStyles(),
	}
}

// Pager returns the page state.
func (m *Model) Pager() *pager.Pager {
	return m.pager
}

// Tracker returns the gesture tracker.
func (m *Model) Tracker() *gesture.Tracker {
	return m.tracker
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.pager.SetDistance(float64(max(m.width, 1) * CellWidth))
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.frame()
	case timerMsg:
		msg.t.fire()
		return m, m.frame()
	case frameMsg:
		m.ticking = false
		return m, m.frame()
	}
	return m, nil
}

// handleKey processes keyboard shortcuts.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.tracker.Destroy()
		return tea.Quit
	case "left", "h":
		m.pager.Step(-1)
		return m.frame()
	case "right", "l":
		m.pager.Step(1)
		return m.frame()
	case "c":
		m.tracker.Cancel()
	case "e":
		m.inputEnabled = !m.inputEnabled
		m.tracker.SetEnabled(m.inputEnabled)
		if !m.inputEnabled {
			m.pan.HandleMove(false, 0, 0, 0, m.now())
		}
		return m.frame()
	}
	return nil
}

// handleMouse routes wheel input to the tracker and left-button drags to the
// pan recognizer.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	at := m.now()
	x := float64(msg.X * CellWidth)
	y := float64(msg.Y * CellHeight)

	switch msg.Action {
	case tea.MouseActionPress:
		if dx, dy, ok := wheelDelta(msg); ok {
			m.tracker.HandleScroll(gesture.ScrollEvent{
				Type:      gesture.EventScroll,
				Source:    gesture.ScrollSourceWheel,
				Device:    gesture.DeviceMouse,
				Direction: gesture.ScrollSmooth,
				Time:      at,
				DX:        dx,
				DY:        dy,
				X:         x,
				Y:         y,
			})
			return
		}
		if msg.Button == tea.MouseButtonLeft {
			m.pan.HandleDown(m.inputEnabled, 0, x, y, at)
		}
	case tea.MouseActionMotion:
		m.pan.HandleMove(m.inputEnabled, 0, x, y, at)
	case tea.MouseActionRelease:
		m.pan.HandleUp(m.inputEnabled, 0, x, y, at)
	}
}

// wheelDelta maps wheel buttons onto smooth scroll deltas. Shift turns
// vertical wheel motion horizontal.
func wheelDelta(msg tea.MouseMsg) (float64, float64, bool) {
	var dx, dy float64
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		dy = -1
	case tea.MouseButtonWheelDown:
		dy = 1
	case tea.MouseButtonWheelLeft:
		dx = -1
	case tea.MouseButtonWheelRight:
		dx = 1
	default:
		return 0, 0, false
	}
	if msg.Shift {
		dx, dy = dx+dy, 0
	}
	return dx, dy, true
}

// frame schedules the next redraw while something is moving.
func (m *Model) frame() tea.Cmd {
	if m.ticking {
		return nil
	}
	if !m.pager.Animating() && m.tracker.State() == gesture.StateIdle {
		return nil
	}
	m.ticking = true
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
