package avail

import (
	"fmt"
	"time"

	"github.com/tandemclub/tandem/internal/dateutil"
)

// Fallback display window when no cell is marked: 09:00-17:00.
const (
	fallbackStartHour = 9
	fallbackEndHour   = 17
)

// Geometry translates between grid coordinates and calendar moments.
// It is pure and stateless; all inputs are caller-validated, so an
// out-of-range index is a programming error and panics via Matrix.
type Geometry struct {
	NumDays      int          // rows in the grid, normally 7
	SlotsPerDay  int          // 24 hourly or 48 half-hourly
	DayStartHour int          // hour of day at slot 0, e.g. 0 or 7
	WeekStart    time.Weekday // Sunday or Monday
}

// NewGeometry builds a Geometry for a standard week grid.
func NewGeometry(slotsPerDay, dayStartHour int, weekStart time.Weekday) Geometry {
	return Geometry{
		NumDays:      DaysPerWeek,
		SlotsPerDay:  slotsPerDay,
		DayStartHour: dayStartHour,
		WeekStart:    weekStart,
	}
}

// SlotDuration returns the width of one slot.
func (g Geometry) SlotDuration() time.Duration {
	return 24 * time.Hour / time.Duration(g.SlotsPerDay)
}

// WeekAnchor returns the start of the target week: the upcoming
// occurrence of the configured week-start day, counting today when it
// already is that day. The result is midnight in now's location.
func (g Geometry) WeekAnchor(now time.Time) time.Time {
	day := dateutil.TruncateToDay(now)
	offset := (int(g.WeekStart) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// CellTime returns the absolute calendar moment a cell begins, given
// the week anchor date of day index 0.
func (g Geometry) CellTime(anchor time.Time, day, slot int) time.Time {
	minutes := g.slotMinutes(slot)
	return anchor.AddDate(0, 0, day).Add(time.Duration(minutes) * time.Minute)
}

// slotMinutes returns minutes from midnight for a slot index, wrapping
// past midnight when DayStartHour is non-zero.
func (g Geometry) slotMinutes(slot int) int {
	width := int(g.SlotDuration().Minutes())
	return (g.DayStartHour*60 + slot*width) % (24 * 60)
}

// DayLabels produces the day headers for a week ("Sun 6/1", ...)
// anchored to the given week start.
func (g Geometry) DayLabels(anchor time.Time) []string {
	labels := make([]string, g.NumDays)
	for d := 0; d < g.NumDays; d++ {
		t := anchor.AddDate(0, 0, d)
		labels[d] = fmt.Sprintf("%s %d/%d", t.Weekday().String()[:3], int(t.Month()), t.Day())
	}
	return labels
}

// TimeLabels produces one label per slot. Half-hourly grids use
// "h:mm AM"; hourly grids use "HH:00". The sequence is monotonic in
// slot order and wraps cleanly past midnight when DayStartHour != 0.
func (g Geometry) TimeLabels() []string {
	labels := make([]string, g.SlotsPerDay)
	for s := 0; s < g.SlotsPerDay; s++ {
		labels[s] = g.SlotLabel(s)
	}
	return labels
}

// SlotLabel returns the time-of-day label for one slot.
func (g Geometry) SlotLabel(slot int) string {
	mins := g.slotMinutes(slot)
	hour, minute := mins/60, mins%60
	if g.SlotsPerDay <= SlotsHourly {
		return fmt.Sprintf("%02d:00", hour)
	}
	ampm := "AM"
	h := hour
	switch {
	case h == 0:
		h = 12
	case h == 12:
		ampm = "PM"
	case h > 12:
		h -= 12
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, ampm)
}

// SlotForLabel returns the slot index whose label matches, or -1 when
// no generated label matches. Round-trips with SlotLabel for every
// slot in the grid.
func (g Geometry) SlotForLabel(label string) int {
	for s := 0; s < g.SlotsPerDay; s++ {
		if g.SlotLabel(s) == label {
			return s
		}
	}
	return -1
}

// hourSlot returns the slot index at which the given hour of day
// begins, accounting for the day-start offset.
func (g Geometry) hourSlot(hour int) int {
	width := int(g.SlotDuration().Minutes())
	mins := ((hour - g.DayStartHour + 24) % 24) * 60
	return mins / width
}

// MinMaxMarked scans the whole matrix and returns the lowest and
// highest slot index holding a mark, inclusive. When nothing is
// marked it falls back to the 09:00 and 17:00 slot indices. The
// result is never inverted and always within bounds.
func (g Geometry) MinMaxMarked(m *Matrix) (minSlot, maxSlot int) {
	minSlot, maxSlot = -1, -1
	for s := 0; s < m.Slots(); s++ {
		for d := 0; d < m.Days(); d++ {
			if m.At(d, s) {
				if minSlot < 0 {
					minSlot = s
				}
				maxSlot = s
				break
			}
		}
	}
	if minSlot < 0 {
		minSlot = g.hourSlot(fallbackStartHour)
		maxSlot = g.hourSlot(fallbackEndHour)
		if maxSlot < minSlot {
			minSlot, maxSlot = maxSlot, minSlot
		}
	}
	return minSlot, maxSlot
}

// Window is a half-open [Start, End) display range over the slot axis.
// It narrows which slots are rendered and editable without touching
// the cells stored outside it.
type Window struct {
	Start int
	End   int
}

// DefaultWindow derives the display window from the matrix marks,
// falling back to the canonical 09:00-17:00 range when empty.
func (g Geometry) DefaultWindow(m *Matrix) Window {
	lo, hi := g.MinMaxMarked(m)
	return Window{Start: lo, End: hi + 1}
}

// FullWindow covers every slot in the grid.
func (g Geometry) FullWindow() Window {
	return Window{Start: 0, End: g.SlotsPerDay}
}

// Clamp bounds the window to a grid with the given slot count and
// guarantees at least one visible slot.
func (w Window) Clamp(slots int) Window {
	if w.Start < 0 {
		w.Start = 0
	}
	if w.End > slots {
		w.End = slots
	}
	if w.End <= w.Start {
		w.End = w.Start + 1
		if w.End > slots {
			w.Start, w.End = slots-1, slots
		}
	}
	return w
}

// Contains reports whether the slot is inside the window.
func (w Window) Contains(slot int) bool {
	return slot >= w.Start && slot < w.End
}

// Len returns the number of visible slots.
func (w Window) Len() int {
	return w.End - w.Start
}
