package avail

import "fmt"

// FillPolicy selects how a drag gesture paints traversed cells.
type FillPolicy int

const (
	// FillRectangular paints the axis-aligned rectangle spanned by the
	// anchor and the entered cell. Idempotent and order-independent, so
	// skipped enter events during a fast drag self-correct.
	FillRectangular FillPolicy = iota
	// FillDirectionRow constrains the gesture to the anchor's row and
	// re-derives the paint value when travel direction reverses across
	// the anchor.
	FillDirectionRow
)

// String returns the policy name used in configuration files.
func (p FillPolicy) String() string {
	switch p {
	case FillDirectionRow:
		return "direction-aware-row"
	default:
		return "rectangular"
	}
}

// ParseFillPolicy maps a configuration string to a FillPolicy.
func ParseFillPolicy(s string) (FillPolicy, error) {
	switch s {
	case "", "rectangular":
		return FillRectangular, nil
	case "direction-aware-row":
		return FillDirectionRow, nil
	default:
		return FillRectangular, fmt.Errorf("unknown fill policy %q", s)
	}
}

// Session is one continuous press-to-release gesture over a matrix.
// It is created on pointer press, fed entered cells while the pointer
// is held, and released exactly once; the owner discards it afterwards.
// A nil session means the grid is idle.
type Session struct {
	matrix      *Matrix
	policy      FillPolicy
	anchor      Cell
	paint       bool
	lastVisited Cell
	pivot       Cell // cell at the most recent direction reversal
	travelSide  int  // sign of the anchor side last traveled, 0 until the pointer leaves the anchor slot
	released    bool
}

// NewSession starts a gesture at the pressed cell. The paint value is
// the negation of the cell's current mark. No cell is mutated yet:
// painting happens as cells are entered, or on release for a pure
// click. The cell must be inside the matrix.
func NewSession(m *Matrix, at Cell, policy FillPolicy) *Session {
	if !m.Contains(at) {
		panic(fmt.Sprintf("avail: session anchor %+v outside %dx%d grid", at, m.Days(), m.Slots()))
	}
	return &Session{
		matrix:      m,
		policy:      policy,
		anchor:      at,
		paint:       !m.At(at.Day, at.Slot),
		lastVisited: at,
		pivot:       at,
	}
}

// Anchor returns the cell where the gesture started.
func (s *Session) Anchor() Cell { return s.anchor }

// Paint returns the value currently being written across cells.
func (s *Session) Paint() bool { return s.paint }

// LastVisited returns the most recently entered cell.
func (s *Session) LastVisited() Cell { return s.lastVisited }

// Pivot returns the cell of the most recent direction reversal. Equal
// to the anchor until a reversal occurs.
func (s *Session) Pivot() Cell { return s.pivot }

// Enter processes the pointer moving over a cell. Cells outside the
// matrix are ignored so a drag can wander off the grid and come back.
// Re-entering a cell already holding the paint value is a no-op.
func (s *Session) Enter(c Cell) {
	if s.released || !s.matrix.Contains(c) {
		return
	}
	if s.policy == FillDirectionRow {
		// Constrained to the anchor's row: only the slot axis matters.
		c.Day = s.anchor.Day
	}
	if c == s.lastVisited {
		return
	}
	switch s.policy {
	case FillDirectionRow:
		s.enterRow(c)
	default:
		s.enterRect(c)
	}
	s.lastVisited = c
}

// enterRect paints the inclusive rectangle spanned by the anchor and
// the entered cell.
func (s *Session) enterRect(c Cell) {
	d0, d1 := ordered(s.anchor.Day, c.Day)
	s0, s1 := ordered(s.anchor.Slot, c.Slot)
	for d := d0; d <= d1; d++ {
		for sl := s0; sl <= s1; sl++ {
			s.matrix.Set(d, sl, s.paint)
		}
	}
}

// enterRow paints the anchor's row between the anchor slot and the
// entered slot. Travel is measured relative to the anchor: while the
// pointer stays on one side, backing up over cells already holding
// the paint value changes nothing. Crossing to the other side of the
// anchor is the reversal; the paint value is then re-derived from the
// cell adjacent to the anchor on the new side, and the pivot records
// that cell. Comparing against the last non-zero side, and reading
// the fixed adjacent cell rather than wherever the pointer landed,
// keeps the outcome identical whether the crossing delivered every
// intermediate cell or skipped them.
func (s *Session) enterRow(c Cell) {
	side := sign(c.Slot - s.anchor.Slot)
	if side != 0 {
		if s.travelSide != 0 && side != s.travelSide {
			adj := Cell{Day: c.Day, Slot: s.anchor.Slot + side}
			s.paint = !s.matrix.At(adj.Day, adj.Slot)
			s.pivot = adj
		}
		s.travelSide = side
	}
	lo, hi := ordered(s.anchor.Slot, c.Slot)
	for sl := lo; sl <= hi; sl++ {
		s.matrix.Set(c.Day, sl, s.paint)
	}
}

// Release ends the gesture, wherever the pointer is. A pure click
// (the pointer never left the anchor) toggles the anchor cell to its
// negation; a drag has already painted everything it covered. The
// session must not be used afterwards.
func (s *Session) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.lastVisited == s.anchor {
		s.matrix.Toggle(s.anchor.Day, s.anchor.Slot)
	}
}

func ordered(a, b int) (lo, hi int) {
	if a <= b {
		return a, b
	}
	return b, a
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
