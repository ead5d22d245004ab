package log

import (
	"charm.land/lipgloss/v2"
)

type styles struct {
	levels [LevelOff]lipgloss.Style
}

func newStyles() *styles {
	s := &styles{}
	s.levels[LevelTrace] = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	s.levels[LevelDebug] = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AFD7"))
	s.levels[LevelInfo] = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F"))
	s.levels[LevelWarn] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	s.levels[LevelError] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	s.levels[LevelCritical] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#D70000")).
		Bold(true)
	return s
}

func (s *styles) render(l Level) string {
	if l < LevelTrace || l >= LevelOff {
		return l.String()
	}
	return s.levels[l].Render(l.String())
}
