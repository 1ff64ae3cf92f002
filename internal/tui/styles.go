// Package tui provides the terminal user interface for tandem.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tandemclub/tandem/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg        lipgloss.Color
	colorHighlight lipgloss.Color
	colorSelection lipgloss.Color
	colorFg        lipgloss.Color
	colorFgMuted   lipgloss.Color
	colorAccent    lipgloss.Color
	colorMarked    lipgloss.Color
	colorToday     lipgloss.Color
	colorWarning   lipgloss.Color

	// Title style
	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Grid cell styles
	CellMarkedStyle   lipgloss.Style
	CellUnmarkedStyle lipgloss.Style
	CellCursorStyle   lipgloss.Style
	CellAnchorStyle   lipgloss.Style // anchor cell of an active gesture

	// Footer styles
	SummaryStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	DirtyStyle   lipgloss.Style
	HelpStyle    lipgloss.Style

	// Modal styles
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalTextStyle   lipgloss.Style
	ModalMutedStyle  lipgloss.Style
	ModalInputStyle  lipgloss.Style
	ModalChoiceStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{
		colorBg:        theme.Color(t.Bg),
		colorHighlight: theme.Color(t.BgHighlight),
		colorSelection: theme.Color(t.BgSelection),
		colorFg:        theme.Color(t.Fg),
		colorFgMuted:   theme.Color(t.FgMuted),
		colorAccent:    theme.Color(t.Accent),
		colorMarked:    theme.Color(t.Marked),
		colorToday:     theme.Color(t.Today),
		colorWarning:   theme.Color(t.Warning),
	}

	s.TitleStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Bold(true).
		Padding(0, 1)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Bold(true).
		Align(lipgloss.Center)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorToday).
		Underline(true)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Align(lipgloss.Right).
		PaddingRight(1)

	s.CellMarkedStyle = lipgloss.NewStyle().
		Background(s.colorMarked).
		Foreground(s.colorBg)

	s.CellUnmarkedStyle = lipgloss.NewStyle().
		Background(s.colorHighlight).
		Foreground(s.colorFgMuted)

	s.CellCursorStyle = lipgloss.NewStyle().
		Background(s.colorSelection).
		Foreground(s.colorFg).
		Bold(true)

	s.CellAnchorStyle = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(s.colorBg).
		Bold(true)

	s.SummaryStyle = lipgloss.NewStyle().Foreground(s.colorFg)
	s.StatusStyle = lipgloss.NewStyle().Foreground(s.colorAccent)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.colorWarning).Bold(true)
	s.DirtyStyle = lipgloss.NewStyle().Foreground(s.colorWarning)
	s.HelpStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Color(t.ModalBorder)).
		Background(theme.Color(t.BaseBg)).
		Padding(1, 2)

	s.ModalStyle = modal
	s.ModalTitleStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.TextPrimary)).
		Bold(true)
	s.ModalTextStyle = lipgloss.NewStyle().Foreground(theme.Color(t.TextPrimary))
	s.ModalMutedStyle = lipgloss.NewStyle().Foreground(theme.Color(t.TextMuted))
	s.ModalInputStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Highlight))
	s.ModalChoiceStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Highlight)).
		Bold(true)

	return s
}
