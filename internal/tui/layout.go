package tui

import "github.com/tandemclub/tandem/internal/avail"

const (
	defaultColWidth = 9
	minColWidth     = 4
	timeColWidth    = 9

	// Rows above the first grid row: title, spacer, day headers.
	headerRows = 3
	// Rows below the grid: spacer, summary, status/help.
	footerRows = 3
)

// calculateColWidth fits the day columns to the terminal width. Each
// column is followed by a single separator space.
func calculateColWidth(termWidth, numDays int) int {
	if numDays <= 0 {
		return defaultColWidth
	}
	w := (termWidth - timeColWidth - numDays) / numDays
	if w > defaultColWidth {
		w = defaultColWidth
	}
	if w < minColWidth {
		w = minColWidth
	}
	return w
}

// visibleRows reports how many slot rows fit in the current terminal,
// capped at the window length.
func (m Model) visibleRows() int {
	rows := m.height - headerRows - footerRows
	if rows < 1 {
		rows = 1
	}
	if n := m.window.Len(); rows > n {
		rows = n
	}
	return rows
}

// clampScroll keeps the scroll offset inside the window and keeps the
// cursor's slot on screen.
func (m Model) clampScroll() int {
	offset := m.scrollOffset
	maxOffset := m.window.Len() - m.visibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}

	row := m.cursor.Slot - m.window.Start
	if row >= 0 && row < m.window.Len() {
		if row < offset {
			offset = row
		}
		if last := offset + m.visibleRows() - 1; row > last {
			offset = row - m.visibleRows() + 1
		}
	}
	return offset
}

// topSlot is the first slot rendered at the current scroll position.
func (m Model) topSlot() int {
	return m.window.Start + m.scrollOffset
}

// cellAt maps terminal coordinates to a grid cell. Coordinates on the
// chrome (title, headers, time column, separators, footer) report no
// cell.
func (m Model) cellAt(x, y int) (avail.Cell, bool) {
	row := y - headerRows
	if row < 0 || row >= m.visibleRows() {
		return avail.Cell{}, false
	}
	slot := m.topSlot() + row
	if !m.window.Contains(slot) || slot >= m.geom.SlotsPerDay {
		return avail.Cell{}, false
	}

	gx := x - timeColWidth
	if gx < 0 {
		return avail.Cell{}, false
	}
	day := gx / (m.colWidth + 1)
	if day >= m.geom.NumDays {
		return avail.Cell{}, false
	}
	if gx%(m.colWidth+1) >= m.colWidth {
		// Separator column between days.
		return avail.Cell{}, false
	}
	return avail.Cell{Day: day, Slot: slot}, true
}
