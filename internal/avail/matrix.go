// Package avail implements the weekly availability grid: the day-by-slot
// boolean matrix, pure grid geometry, and the drag-selection session.
package avail

import (
	"errors"
	"fmt"
)

// Matrix errors.
var (
	ErrInvalidShape = errors.New("matrix shape must have at least one day and one slot")
	ErrRaggedRows   = errors.New("matrix rows must all have the same length")
)

const (
	// DaysPerWeek is the number of rows in a weekly grid.
	DaysPerWeek = 7
	// SlotsHalfHourly is the slot count for a 30-minute grid.
	SlotsHalfHourly = 48
	// SlotsHourly is the slot count for a 60-minute grid.
	SlotsHourly = 24
)

// Cell identifies one position in the grid.
type Cell struct {
	Day  int
	Slot int
}

// Matrix is a fixed-shape day-by-slot grid of availability marks.
// Every cell is always populated; the zero mark means unavailable.
// Cells are stored in a flat slice indexed day*slots+slot.
type Matrix struct {
	days  int
	slots int
	cells []bool
}

// NewMatrix creates an all-unavailable matrix of the given shape.
// Panics on a non-positive dimension: shapes come from validated
// configuration, not user input.
func NewMatrix(days, slots int) *Matrix {
	if days <= 0 || slots <= 0 {
		panic(fmt.Sprintf("avail: invalid matrix shape %dx%d", days, slots))
	}
	return &Matrix{
		days:  days,
		slots: slots,
		cells: make([]bool, days*slots),
	}
}

// Days returns the number of day rows.
func (m *Matrix) Days() int { return m.days }

// Slots returns the number of slot columns.
func (m *Matrix) Slots() int { return m.slots }

// index calculates the flat array index for a day and slot.
func (m *Matrix) index(day, slot int) int {
	if day < 0 || day >= m.days || slot < 0 || slot >= m.slots {
		panic(fmt.Sprintf("avail: cell (%d,%d) out of %dx%d grid", day, slot, m.days, m.slots))
	}
	return day*m.slots + slot
}

// At reports whether the cell is marked available.
func (m *Matrix) At(day, slot int) bool {
	return m.cells[m.index(day, slot)]
}

// Set marks or unmarks a single cell.
func (m *Matrix) Set(day, slot int, marked bool) {
	m.cells[m.index(day, slot)] = marked
}

// Toggle flips a single cell and returns its new value.
func (m *Matrix) Toggle(day, slot int) bool {
	i := m.index(day, slot)
	m.cells[i] = !m.cells[i]
	return m.cells[i]
}

// Contains reports whether the cell lies inside the grid.
func (m *Matrix) Contains(c Cell) bool {
	return c.Day >= 0 && c.Day < m.days && c.Slot >= 0 && c.Slot < m.slots
}

// Clone returns an independent copy of the matrix. Saves operate on a
// clone so an in-flight write cannot observe later edits.
func (m *Matrix) Clone() *Matrix {
	cells := make([]bool, len(m.cells))
	copy(cells, m.cells)
	return &Matrix{days: m.days, slots: m.slots, cells: cells}
}

// Equal reports whether two matrices have the same shape and marks.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || m.days != other.days || m.slots != other.slots {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// MarkedCount returns the number of available cells.
func (m *Matrix) MarkedCount() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Encode converts the matrix to the persisted wire shape: an
// array-of-arrays of 0/1 integers, one outer entry per day.
func (m *Matrix) Encode() [][]int {
	out := make([][]int, m.days)
	for d := 0; d < m.days; d++ {
		row := make([]int, m.slots)
		for s := 0; s < m.slots; s++ {
			if m.cells[d*m.slots+s] {
				row[s] = 1
			}
		}
		out[d] = row
	}
	return out
}

// Bools converts the matrix to a nested boolean slice, the shape used
// by the remote signup payload.
func (m *Matrix) Bools() [][]bool {
	out := make([][]bool, m.days)
	for d := 0; d < m.days; d++ {
		row := make([]bool, m.slots)
		copy(row, m.cells[d*m.slots:(d+1)*m.slots])
		out[d] = row
	}
	return out
}

// Decode builds a matrix from the persisted 0/1 shape. Any non-zero
// entry counts as marked. Returns ErrInvalidShape for an empty grid and
// ErrRaggedRows when rows differ in length.
func Decode(rows [][]int) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidShape
	}
	slots := len(rows[0])
	m := NewMatrix(len(rows), slots)
	for d, row := range rows {
		if len(row) != slots {
			return nil, ErrRaggedRows
		}
		for s, v := range row {
			if v != 0 {
				m.cells[d*slots+s] = true
			}
		}
	}
	return m, nil
}

// String returns a compact row-per-line picture using '#' for marked
// and '-' for unmarked cells. Useful in tests and debug logs.
func (m *Matrix) String() string {
	buf := make([]byte, 0, m.days*(m.slots+1))
	for d := 0; d < m.days; d++ {
		for s := 0; s < m.slots; s++ {
			if m.cells[d*m.slots+s] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '-')
			}
		}
		if d < m.days-1 {
			buf = append(buf, '|')
		}
	}
	return string(buf)
}
