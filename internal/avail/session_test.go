package avail

import "testing"

func TestClickTogglesExactlyOneCell(t *testing.T) {
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
	m.Set(4, 7, true)

	// Press and release on the same cell with no movement.
	s := NewSession(m, Cell{Day: 4, Slot: 7}, FillRectangular)
	s.Release()

	if m.At(4, 7) {
		t.Error("click did not toggle the marked cell off")
	}
	if m.MarkedCount() != 0 {
		t.Errorf("click changed %d other cells", m.MarkedCount())
	}

	// Clicking again toggles it back on.
	s = NewSession(m, Cell{Day: 4, Slot: 7}, FillRectangular)
	s.Release()
	if !m.At(4, 7) {
		t.Error("second click did not toggle the cell back on")
	}
}

func TestPressAloneDoesNotMutate(t *testing.T) {
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
	s := NewSession(m, Cell{Day: 1, Slot: 10}, FillRectangular)
	if m.MarkedCount() != 0 {
		t.Error("press mutated the matrix before any enter or release")
	}
	if !s.Paint() {
		t.Error("paint value should be the negation of the unmarked anchor")
	}
}

func TestRectangleFill(t *testing.T) {
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)

	s := NewSession(m, Cell{Day: 1, Slot: 10}, FillRectangular)
	s.Enter(Cell{Day: 1, Slot: 14})
	s.Release()

	for sl := 10; sl <= 14; sl++ {
		if !m.At(1, sl) {
			t.Errorf("cell (1,%d) not painted", sl)
		}
	}
	if m.MarkedCount() != 5 {
		t.Errorf("painted %d cells, want 5", m.MarkedCount())
	}
}

func TestRectangleFillSpansBothAxes(t *testing.T) {
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)

	// Drag up-left so both ranges are reversed relative to the anchor.
	s := NewSession(m, Cell{Day: 5, Slot: 20}, FillRectangular)
	s.Enter(Cell{Day: 3, Slot: 17})
	s.Release()

	for d := 0; d < m.Days(); d++ {
		for sl := 0; sl < m.Slots(); sl++ {
			inRect := d >= 3 && d <= 5 && sl >= 17 && sl <= 20
			if m.At(d, sl) != inRect {
				t.Fatalf("cell (%d,%d) = %v, want %v", d, sl, m.At(d, sl), inRect)
			}
		}
	}
}

func TestRectangleFillUnpaints(t *testing.T) {
	m := matrixFromString(t, "########", 8)

	s := NewSession(m, Cell{Day: 0, Slot: 2}, FillRectangular)
	s.Enter(Cell{Day: 0, Slot: 5})
	s.Release()

	if got, want := m.String(), "##----##"; got != want {
		t.Errorf("matrix = %s, want %s", got, want)
	}
}

func TestIdempotentReentry(t *testing.T) {
	// A trace that revisits cells must equal the same trace with the
	// duplicate visits removed.
	trace := []Cell{
		{1, 11}, {1, 12}, {1, 13}, {1, 12}, {1, 13}, {1, 14}, {1, 14}, {1, 13}, {1, 14},
	}
	dedup := []Cell{{1, 11}, {1, 12}, {1, 13}, {1, 14}}

	run := func(cells []Cell) *Matrix {
		m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
		s := NewSession(m, Cell{Day: 1, Slot: 10}, FillRectangular)
		for _, c := range cells {
			s.Enter(c)
		}
		s.Release()
		return m
	}

	if got, want := run(trace), run(dedup); !got.Equal(want) {
		t.Errorf("revisits changed the result:\n got: %s\nwant: %s", got, want)
	}
}

func TestFastDragSkippingCellsSelfCorrects(t *testing.T) {
	// Fast pointer movement can skip intermediate enter events; the
	// rectangle spans the full range regardless.
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
	s := NewSession(m, Cell{Day: 2, Slot: 8}, FillRectangular)
	s.Enter(Cell{Day: 2, Slot: 20}) // jumped 11 cells in one event
	s.Release()

	for sl := 8; sl <= 20; sl++ {
		if !m.At(2, sl) {
			t.Errorf("skipped cell (2,%d) not painted", sl)
		}
	}
}

func TestReleaseAfterLeavingGridCommits(t *testing.T) {
	// The pointer wanders outside the grid bounds and releases there.
	// The paints applied inside the grid must survive.
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
	s := NewSession(m, Cell{Day: 0, Slot: 5}, FillRectangular)
	s.Enter(Cell{Day: 0, Slot: 7})
	s.Enter(Cell{Day: -2, Slot: 7})  // off the top: ignored
	s.Enter(Cell{Day: 0, Slot: 100}) // off the right: ignored
	s.Release()

	if m.MarkedCount() != 3 {
		t.Errorf("marked %d cells, want 3", m.MarkedCount())
	}
	for sl := 5; sl <= 7; sl++ {
		if !m.At(0, sl) {
			t.Errorf("cell (0,%d) lost on off-grid release", sl)
		}
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
	s := NewSession(m, Cell{Day: 0, Slot: 0}, FillRectangular)
	s.Release()
	s.Release()
	s.Enter(Cell{Day: 0, Slot: 3}) // after release: ignored

	if m.MarkedCount() != 1 || !m.At(0, 0) {
		t.Errorf("matrix after double release = %s", m)
	}
}

func TestDirectionRowStaysInAnchorRow(t *testing.T) {
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
	s := NewSession(m, Cell{Day: 3, Slot: 10}, FillDirectionRow)
	s.Enter(Cell{Day: 5, Slot: 13}) // pointer drifts to another row
	s.Release()

	for sl := 10; sl <= 13; sl++ {
		if !m.At(3, sl) {
			t.Errorf("cell (3,%d) not painted", sl)
		}
	}
	if m.MarkedCount() != 4 {
		t.Errorf("painting escaped the anchor row: %s", m)
	}
}

func TestDirectionRowReversalTrace(t *testing.T) {
	// The exact pivot trace: start at (2,20) on an empty grid
	// (paint=true), drag right to (2,25), then drag back to (2,18).
	// Cells 20..25 stay marked: backing up over cells painted this
	// gesture does not unpaint them. Crossing the anchor re-derives
	// the paint value from the entered cell, so 18..19 are painted
	// with the re-derived value (true).
	m := NewMatrix(DaysPerWeek, SlotsHalfHourly)
	s := NewSession(m, Cell{Day: 2, Slot: 20}, FillDirectionRow)
	for sl := 21; sl <= 25; sl++ {
		s.Enter(Cell{Day: 2, Slot: sl})
	}
	for sl := 24; sl >= 18; sl-- {
		s.Enter(Cell{Day: 2, Slot: sl})
	}
	s.Release()

	for sl := 20; sl <= 25; sl++ {
		if !m.At(2, sl) {
			t.Errorf("cell (2,%d) was unpainted by backing up", sl)
		}
	}
	for sl := 18; sl <= 19; sl++ {
		if !m.At(2, sl) {
			t.Errorf("cell (2,%d) not painted after the reversal", sl)
		}
	}
	if m.MarkedCount() != 25-18+1 {
		t.Errorf("unexpected cells painted: %s", m)
	}
}

func TestDirectionRowReversalReDerivesPaint(t *testing.T) {
	// Anchor on a marked cell: the gesture unpaints moving right.
	// Crossing the anchor into unmarked territory re-derives the paint
	// value from the anchor-adjacent cell on the new side, flipping it
	// to marking.
	m := matrixFromString(t, "-----###----", 12)
	s := NewSession(m, Cell{Day: 0, Slot: 5}, FillDirectionRow)
	s.Enter(Cell{Day: 0, Slot: 7}) // unpaints 5..7
	if s.Paint() {
		t.Fatal("paint should be false over a marked anchor")
	}
	s.Enter(Cell{Day: 0, Slot: 3}) // crosses the anchor: re-derive
	s.Release()

	if !s.Paint() {
		t.Error("crossing the anchor did not re-derive the paint value")
	}
	if got := s.Pivot(); got != (Cell{Day: 0, Slot: 4}) {
		t.Errorf("pivot = %+v, want the anchor-adjacent cell (0,4)", got)
	}
	// 3..5 repainted true, 6..7 remain unpainted from the first leg.
	if got, want := m.String(), "---###------"; got != want {
		t.Errorf("matrix = %s, want %s", got, want)
	}
}

func TestDirectionRowReversalIgnoresDragGranularity(t *testing.T) {
	// The same physical gesture ends identically whether the crossing
	// delivers every intermediate cell or skips straight to the far
	// side: out to slot 9, back across the anchor to slot 1.
	run := func(slots []int) *Matrix {
		m := matrixFromString(t, "--########--", 12)
		s := NewSession(m, Cell{Day: 0, Slot: 5}, FillDirectionRow)
		for _, sl := range slots {
			s.Enter(Cell{Day: 0, Slot: sl})
		}
		s.Release()
		return m
	}

	full := run([]int{6, 7, 8, 9, 8, 7, 6, 5, 4, 3, 2, 1})
	skipped := run([]int{9, 1})

	if !full.Equal(skipped) {
		t.Fatalf("gesture outcome depends on enter granularity:\nfull:    %s\nskipped: %s", full, skipped)
	}
	if got, want := skipped.String(), "------------"; got != want {
		t.Errorf("matrix = %s, want %s", got, want)
	}
}

func TestSessionPolicyParsing(t *testing.T) {
	cases := []struct {
		in      string
		want    FillPolicy
		wantErr bool
	}{
		{"", FillRectangular, false},
		{"rectangular", FillRectangular, false},
		{"direction-aware-row", FillDirectionRow, false},
		{"diagonal", FillRectangular, true},
	}
	for _, tc := range cases {
		got, err := ParseFillPolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFillPolicy(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseFillPolicy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
