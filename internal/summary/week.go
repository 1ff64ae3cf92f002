// Package summary provides shared week availability summary utilities.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/tandemclub/tandem/internal/avail"
)

// Range is one contiguous run of marked slots on a single day.
type Range struct {
	Day       int
	StartSlot int
	EndSlot   int // exclusive
}

// Label formats the range using the grid geometry, e.g.
// "9:00 AM - 11:30 AM".
func (r Range) Label(g avail.Geometry) string {
	start := g.SlotLabel(r.StartSlot)
	var end string
	if r.EndSlot < g.SlotsPerDay {
		end = g.SlotLabel(r.EndSlot)
	} else {
		// The run touches the end of the grid; the closing boundary is
		// one slot width past the last label.
		anchor := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
		t := g.CellTime(anchor, 0, r.EndSlot-1).Add(g.SlotDuration())
		end = clockLabel(g, t)
	}
	return start + " - " + end
}

func clockLabel(g avail.Geometry, t time.Time) string {
	if g.SlotsPerDay <= avail.SlotsHourly {
		return fmt.Sprintf("%02d:00", t.Hour())
	}
	h, ampm := t.Hour(), "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		ampm = "PM"
	case h > 12:
		h -= 12
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute(), ampm)
}

// WeekSummary holds aggregated availability data for one week grid.
type WeekSummary struct {
	Anchor     time.Time
	Ranges     []Range
	TotalHours float64
}

// Summarize derives the per-day marked ranges and total marked hours
// from a matrix.
func Summarize(m *avail.Matrix, g avail.Geometry, anchor time.Time) *WeekSummary {
	s := &WeekSummary{Anchor: anchor}
	slotHours := g.SlotDuration().Hours()

	for d := 0; d < m.Days(); d++ {
		start := -1
		for sl := 0; sl <= m.Slots(); sl++ {
			marked := sl < m.Slots() && m.At(d, sl)
			switch {
			case marked && start < 0:
				start = sl
			case !marked && start >= 0:
				s.Ranges = append(s.Ranges, Range{Day: d, StartSlot: start, EndSlot: sl})
				start = -1
			}
		}
	}

	s.TotalHours = float64(m.MarkedCount()) * slotHours
	return s
}

// Text renders the summary as plain lines, one per day with marks,
// suitable for the clipboard or stdout.
func (s *WeekSummary) Text(g avail.Geometry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Availability for week of %s\n", s.Anchor.Format("Jan 2, 2006"))

	dayLabels := g.DayLabels(s.Anchor)
	byDay := make(map[int][]Range)
	for _, r := range s.Ranges {
		byDay[r.Day] = append(byDay[r.Day], r)
	}

	for d := 0; d < len(dayLabels); d++ {
		ranges := byDay[d]
		if len(ranges) == 0 {
			continue
		}
		parts := make([]string, len(ranges))
		for i, r := range ranges {
			parts[i] = r.Label(g)
		}
		fmt.Fprintf(&sb, "%s: %s\n", dayLabels[d], strings.Join(parts, ", "))
	}

	if len(s.Ranges) == 0 {
		sb.WriteString("No availability marked\n")
	} else {
		fmt.Fprintf(&sb, "Total: %.1f hours\n", s.TotalHours)
	}
	return sb.String()
}
