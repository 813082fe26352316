package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// pageColors cycles across pages.
var pageColors = []lipgloss.Color{"62", "99", "33", "169", "208", "35"}

type styles struct {
	pages  []lipgloss.Style
	empty  lipgloss.Style
	header lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
}

// defaultStyles returns the page palette.
func defaultStyles() styles {
	s := styles{
		empty:  lipgloss.NewStyle().Background(lipgloss.Color("236")),
		header: lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
	for _, c := range pageColors {
		s.pages = append(s.pages, lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("230")).
			Bold(true))
	}
	return s
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width := max(m.width, 10)
	stripHeight := max(m.height-3, 3)

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.strip(width, stripHeight))
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render("wheel or drag to swipe · ←/→ step · c cancel · e input on/off · q quit"))
	return b.String()
}

// header summarizes page and gesture state.
func (m *Model) header() string {
	snap := m.pager.Snapshot()
	line := fmt.Sprintf("page %d/%d  position %.2f  %s", snap.Page+1, snap.Pages, snap.Position, m.tracker.State())
	out := m.styles.header.Render(line)
	if !m.inputEnabled {
		out += "  " + m.styles.warn.Render("input off")
	}
	return out
}

// strip renders the visible window onto a row of full-width pages offset by
// the current position.
func (m *Model) strip(width, height int) string {
	pos := m.pager.Position()
	pages := m.pager.Pages()
	looping := m.tracker.Preferences().Looping()
	offset := pos * float64(width)

	cols := make([]int, width)
	for c := range cols {
		p := int(math.Floor((offset + float64(c)) / float64(width)))
		switch {
		case looping:
			p = int(gesture.Wrap(float64(p), pages))
		case p < 0 || p >= pages:
			p = -1
		}
		cols[c] = p
	}

	label := []rune(strings.Repeat(" ", width))
	for c, p := range cols {
		if p < 0 || (c > 0 && cols[c-1] == p) {
			continue
		}
		start := c
		end := c
		for end < width && cols[end] == p {
			end++
		}
		text := []rune(fmt.Sprintf("page %d", p+1))
		at := start + (end-start-len(text))/2
		for i, r := range text {
			if j := at + i; j >= start && j < end {
				label[j] = r
			}
		}
	}

	blank := []rune(strings.Repeat(" ", width))
	rows := make([]string, height)
	for r := range rows {
		line := blank
		if r == height/2 {
			line = label
		}
		rows[r] = m.paint(cols, line)
	}
	return strings.Join(rows, "\n")
}

// paint styles runs of columns that belong to the same page.
func (m *Model) paint(cols []int, line []rune) string {
	var b strings.Builder
	for start := 0; start < len(cols); {
		end := start
		for end < len(cols) && cols[end] == cols[start] {
			end++
		}
		style := m.styles.empty
		if p := cols[start]; p >= 0 {
			style = m.styles.pages[p%len(m.styles.pages)]
		}
		b.WriteString(style.Render(string(line[start:end])))
		start = end
	}
	return b.String()
}
