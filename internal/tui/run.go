package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal page switcher and blocks until it quits or ctx is
// done.
func Run(ctx context.Context, opts Options) error {
	sched := NewScheduler()
	opts.Scheduler = sched
	m := NewModel(opts)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	sched.SetSender(p.Send)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
