package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tandemclub/tandem/internal/summary"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeInit:
		return m.renderCentered(m.renderInitModal())
	case ModeConfirmSubmit:
		return m.renderCentered(m.renderConfirmModal())
	case ModeHelp:
		return m.renderCentered(m.renderHelpModal())
	}

	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render(m.renderTitle()))
	b.WriteString("\n\n")
	b.WriteString(m.renderDayHeaders())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderCentered(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderTitle() string {
	if m.loading {
		return m.title + "  (loading...)"
	}
	return fmt.Sprintf("%s · week of %s", m.title, m.weekAnchor.Format("Jan 2, 2006"))
}

// headerLabels returns the day header labels, honoring an override but
// never trusting its length.
func (m Model) headerLabels() []string {
	labels := m.geom.DayLabels(m.weekAnchor)
	for i, override := range m.dayLabels {
		if i >= len(labels) {
			break
		}
		labels[i] = override
	}
	return labels
}

// slotLabels returns the time column labels with the same clamping.
func (m Model) slotLabels() []string {
	labels := m.geom.TimeLabels()
	for i, override := range m.timeLabels {
		if i >= len(labels) {
			break
		}
		labels[i] = override
	}
	return labels
}

func (m Model) todayColumn() int {
	today := m.geom.WeekAnchor(m.now())
	if !today.Equal(m.weekAnchor) {
		return -1
	}
	day := int(m.now().Sub(m.weekAnchor).Hours() / 24)
	if day < 0 || day >= m.geom.NumDays {
		return -1
	}
	return day
}

func (m Model) renderDayHeaders() string {
	labels := m.headerLabels()
	today := m.todayColumn()

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timeColWidth))
	for d := 0; d < m.geom.NumDays; d++ {
		style := m.styles.DayHeaderStyle
		if d == today {
			style = m.styles.DayHeaderTodayStyle
		}
		label := ""
		if d < len(labels) {
			label = labels[d]
		}
		b.WriteString(style.Width(m.colWidth).MaxWidth(m.colWidth).Render(label))
		b.WriteString(" ")
	}
	return b.String()
}

func (m Model) renderGrid() string {
	labels := m.slotLabels()
	rows := m.visibleRows()

	var b strings.Builder
	for r := 0; r < rows; r++ {
		slot := m.topSlot() + r
		if slot >= m.window.End {
			break
		}

		label := ""
		if slot < len(labels) {
			label = labels[slot]
		}
		b.WriteString(m.styles.TimeColumnStyle.Width(timeColWidth).Render(label))

		for d := 0; d < m.geom.NumDays; d++ {
			b.WriteString(m.renderCell(d, slot))
			b.WriteString(" ")
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderCell(day, slot int) string {
	marked := m.matrix.At(day, slot)

	style := m.styles.CellUnmarkedStyle
	text := strings.Repeat(" ", m.colWidth)
	if marked {
		style = m.styles.CellMarkedStyle
	}

	cursor := day == m.cursor.Day && slot == m.cursor.Slot
	if m.session != nil {
		a := m.session.Anchor()
		if day == a.Day && slot == a.Slot {
			style = m.styles.CellAnchorStyle
		}
	} else if cursor {
		style = m.styles.CellCursorStyle
	}
	if cursor {
		pad := strings.Repeat(" ", (m.colWidth-1)/2)
		text = pad + "·"
		text += strings.Repeat(" ", m.colWidth-len(pad)-1)
	}

	return style.Render(text)
}

func (m Model) renderFooter() string {
	ws := summary.Summarize(m.matrix, m.geom, m.weekAnchor)
	line := fmt.Sprintf("%d slots marked, %.1f hours", m.matrix.MarkedCount(), ws.TotalHours)
	parts := []string{m.styles.SummaryStyle.Render(line)}

	if m.dirty() {
		parts = append(parts, m.styles.DirtyStyle.Render("● unsaved"))
	}
	if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if m.statusErr {
			style = m.styles.ErrorStyle
		}
		parts = append(parts, style.Render(m.statusMsg))
	}

	help := "drag/space: mark • s: save • S: submit • f: full day • y: copy • ?: help • q: quit"
	status := ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
	return status + "\n" + m.styles.HelpStyle.Render(ansi.Truncate(help, m.width, "…"))
}

func (m Model) renderInitModal() string {
	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render("Welcome to tandem"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalTextStyle.Render("Enter your club member id to get started."))
	b.WriteString("\n\n")
	b.WriteString(m.memberInput.View())
	b.WriteString("\n")
	if m.initError != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorStyle.Render(m.initError))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.ModalMutedStyle.Render("enter: continue • ctrl+c: quit"))
	return m.styles.ModalStyle.Render(b.String())
}

func (m Model) renderConfirmModal() string {
	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render("Resubmit availability?"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalTextStyle.Render("This week's grid is identical to your last submission."))
	b.WriteString("\n")
	if m.lastSub != nil {
		when := m.lastSub.SubmittedAt.Format("Jan 2 at 3:04 PM")
		b.WriteString(m.styles.ModalMutedStyle.Render("Last submitted " + when + "."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.ModalChoiceStyle.Render("y") + m.styles.ModalTextStyle.Render(": submit anyway   "))
	b.WriteString(m.styles.ModalChoiceStyle.Render("n") + m.styles.ModalTextStyle.Render(": cancel"))
	return m.styles.ModalStyle.Render(b.String())
}

func (m Model) renderHelpModal() string {
	rows := [][2]string{
		{"click / drag", "toggle or paint a range of slots"},
		{"h j k l / arrows", "move the cursor"},
		{"space", "toggle the slot under the cursor"},
		{"g / G", "jump to the top / bottom of the window"},
		{"f", "toggle the full-day view"},
		{"s", "save locally"},
		{"S", "submit to the interview pool"},
		{"y", "copy the week summary"},
		{"r", "reload from disk"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(m.styles.ModalChoiceStyle.Width(18).Render(row[0]))
		b.WriteString(m.styles.ModalTextStyle.Render(row[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.ModalMutedStyle.Render("any key: close"))
	return m.styles.ModalStyle.Render(b.String())
}
