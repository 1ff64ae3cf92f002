// Package tui provides the terminal user interface for tandem.
package tui

import (
	"testing"

	"github.com/tandemclub/tandem/internal/avail"
)

func TestCalculateColWidth(t *testing.T) {
	tests := []struct {
		name      string
		termWidth int
		numDays   int
		want      int
	}{
		{name: "wide_terminal_caps_at_default", termWidth: 200, numDays: 7, want: defaultColWidth},
		{name: "narrow_terminal_floors_at_min", termWidth: 30, numDays: 7, want: minColWidth},
		{name: "exact_fit", termWidth: timeColWidth + 7*(6+1), numDays: 7, want: 6},
		{name: "zero_days", termWidth: 100, numDays: 0, want: defaultColWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateColWidth(tt.termWidth, tt.numDays); got != tt.want {
				t.Errorf("calculateColWidth(%d, %d) = %d, want %d", tt.termWidth, tt.numDays, got, tt.want)
			}
		})
	}
}

func TestCellAtMapsGridCoordinates(t *testing.T) {
	m := newTestModel(t)
	start := m.window.Start

	tests := []struct {
		name   string
		x, y   int
		want   avail.Cell
		onGrid bool
	}{
		{name: "first_cell", x: timeColWidth, y: headerRows, want: avail.Cell{Day: 0, Slot: start}, onGrid: true},
		{name: "last_column_of_cell", x: timeColWidth + m.colWidth - 1, y: headerRows, want: avail.Cell{Day: 0, Slot: start}, onGrid: true},
		{name: "separator_misses", x: timeColWidth + m.colWidth, y: headerRows},
		{name: "second_day", x: timeColWidth + m.colWidth + 1, y: headerRows, want: avail.Cell{Day: 1, Slot: start}, onGrid: true},
		{name: "second_row", x: timeColWidth, y: headerRows + 1, want: avail.Cell{Day: 0, Slot: start + 1}, onGrid: true},
		{name: "time_column_misses", x: timeColWidth - 1, y: headerRows},
		{name: "title_row_misses", x: timeColWidth, y: 0},
		{name: "past_last_day_misses", x: timeColWidth + 7*(m.colWidth+1), y: headerRows},
		{name: "below_grid_misses", x: timeColWidth, y: headerRows + m.visibleRows()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, onGrid := m.cellAt(tt.x, tt.y)
			if onGrid != tt.onGrid {
				t.Fatalf("cellAt(%d, %d) onGrid = %v, want %v", tt.x, tt.y, onGrid, tt.onGrid)
			}
			if onGrid && got != tt.want {
				t.Errorf("cellAt(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCellAtHonorsScrollOffset(t *testing.T) {
	m := newTestModel(t)
	m.scrollOffset = 2

	got, onGrid := m.cellAt(timeColWidth, headerRows)
	if !onGrid {
		t.Fatal("expected a cell")
	}
	if want := m.window.Start + 2; got.Slot != want {
		t.Errorf("slot = %d, want %d", got.Slot, want)
	}
}

func TestClampScrollKeepsCursorVisible(t *testing.T) {
	m := newTestModel(t)
	m.height = headerRows + footerRows + 4 // four visible rows

	m.cursor.Slot = m.window.Start + 10
	m.scrollOffset = m.clampScroll()

	row := m.cursor.Slot - m.window.Start
	if row < m.scrollOffset || row >= m.scrollOffset+m.visibleRows() {
		t.Fatalf("cursor row %d outside visible range [%d, %d)", row, m.scrollOffset, m.scrollOffset+m.visibleRows())
	}
}
