package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/summary"
	"github.com/tandemclub/tandem/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = calculateColWidth(msg.Width, m.geom.NumDays)
		m.scrollOffset = m.clampScroll()
		return m, nil

	case commands.GridLoadedMsg:
		m.matrix = msg.Matrix
		m.lastSub = msg.LastSubmission
		m.loading = false
		// The grid now mirrors the persisted state; unsaved edits a
		// reload discarded must not leave the dirty indicator lit.
		m.persistedSeq = m.editSeq
		m.window = m.geom.DefaultWindow(m.matrix)
		if !m.window.Contains(m.cursor.Slot) {
			m.cursor.Slot = m.window.Start
		}
		m.scrollOffset = m.clampScroll()
		return m, nil

	case commands.SavedMsg:
		// A save that captured an older edit state does not make the
		// current state persisted.
		if msg.Seq >= m.persistedSeq {
			m.persistedSeq = msg.Seq
		}
		if m.persistedSeq == m.editSeq {
			return m.withStatus("Saved", false)
		}
		return m, nil

	case commands.SaveErrMsg:
		LogError("save", msg.Err)
		return m.withStatus(fmt.Sprintf("Save failed: %v", msg.Err), true)

	case commands.SubmittedMsg:
		m.lastSub = msg.Submission
		return m.withStatus("Submitted to the interview pool", false)

	case commands.SubmitErrMsg:
		LogError("submit", msg.Err)
		return m.withStatus(fmt.Sprintf("Submit failed: %v", msg.Err), true)

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		LogError("load", msg.Err)
		return m.withStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.StatusMsgCmd:
		return m.withStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if m.now().After(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

// withStatus sets a temporary status line and schedules its clear.
func (m Model) withStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusTime = m.now().Add(4 * time.Second)
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m Model) loadCmd() tea.Cmd {
	return commands.LoadGrid(m.repo, m.config.Profile.MemberID, m.geom.NumDays, m.geom.SlotsPerDay)
}

func (m Model) dirty() bool {
	return m.editSeq > m.persistedSeq
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKey(msg, m.mode)

	switch m.mode {
	case ModeInit:
		return m.handleInitKey(msg)
	case ModeConfirmSubmit:
		return m.handleConfirmKey(msg)
	case ModeHelp:
		m.mode = ModeNormal
		return m, nil
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleInitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		updated, err := m.completeInit()
		if err != nil {
			updated.initError = err.Error()
			return updated, nil
		}
		return updated, updated.loadCmd()
	}

	var cmd tea.Cmd
	m.memberInput, cmd = m.memberInput.Update(msg)
	m.initError = ""
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		return m.submitCmd()
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m = m.moveCursor(0, -1)
		return m, nil
	case "down", "j":
		m = m.moveCursor(0, 1)
		return m, nil
	case "left", "h":
		m = m.moveCursor(-1, 0)
		return m, nil
	case "right", "l":
		m = m.moveCursor(1, 0)
		return m, nil
	case "g":
		m.cursor.Slot = m.window.Start
		m.scrollOffset = m.clampScroll()
		return m, nil
	case "G":
		m.cursor.Slot = m.window.End - 1
		m.scrollOffset = m.clampScroll()
		return m, nil

	case " ":
		if m.loading {
			return m, nil
		}
		m.matrix.Toggle(m.cursor.Day, m.cursor.Slot)
		m.editSeq++
		return m, nil

	case "s":
		if m.loading {
			return m, nil
		}
		seq := m.editSeq
		return m, commands.SaveGrid(m.repo, m.config.Profile.MemberID, m.matrix.Clone(), seq)

	case "S":
		if m.loading {
			return m, nil
		}
		if m.lastSub != nil && m.matrix.Equal(m.lastSub.Matrix) {
			m.mode = ModeConfirmSubmit
			return m, nil
		}
		return m.submitCmd()

	case "f":
		return m.toggleWindow(), nil

	case "y":
		ws := summary.Summarize(m.matrix, m.geom, m.weekAnchor)
		if err := clipboard.WriteAll(ws.Text(m.geom)); err != nil {
			return m.withStatus(fmt.Sprintf("Copy failed: %v", err), true)
		}
		return m.withStatus("Summary copied to clipboard", false)

	case "r":
		m.loading = true
		return m, m.loadCmd()

	case "?":
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

// submitCmd snapshots the grid, saves it, and sends it to the pool.
func (m Model) submitCmd() (Model, tea.Cmd) {
	snapshot := m.matrix.Clone()
	seq := m.editSeq
	save := commands.SaveGrid(m.repo, m.config.Profile.MemberID, snapshot, seq)
	submit := commands.Submit(m.client, m.repo, m.config.Profile.MemberID, snapshot)
	return m, tea.Batch(save, submit)
}

// toggleWindow switches between the derived time window and the whole
// day. Cells outside the derived window keep their values either way.
func (m Model) toggleWindow() Model {
	m.fullView = !m.fullView
	if m.fullView {
		m.window = m.geom.FullWindow()
	} else {
		m.window = m.geom.DefaultWindow(m.matrix)
	}
	if !m.window.Contains(m.cursor.Slot) {
		m.cursor.Slot = m.window.Start
	}
	m.scrollOffset = m.clampScroll()
	return m
}

func (m Model) moveCursor(dx, dy int) Model {
	day := m.cursor.Day + dx
	slot := m.cursor.Slot + dy
	if day < 0 {
		day = 0
	}
	if day >= m.geom.NumDays {
		day = m.geom.NumDays - 1
	}
	if slot < m.window.Start {
		slot = m.window.Start
	}
	if slot >= m.window.End {
		slot = m.window.End - 1
	}
	m.cursor = avail.Cell{Day: day, Slot: slot}
	m.scrollOffset = m.clampScroll()
	return m
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || m.loading {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollOffset--
		m.scrollOffset = m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollOffset++
		m.scrollOffset = m.clampScroll()
		return m, nil
	}

	cell, onGrid := m.cellAt(msg.X, msg.Y)
	LogMouse(msg, cell, onGrid)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onGrid {
			return m, nil
		}
		m.session = avail.NewSession(m.matrix, cell, m.policy)
		m.cursor = cell
		LogSession(m.session, "start")
		return m, nil

	case tea.MouseActionMotion:
		if m.session == nil {
			return m, nil
		}
		if onGrid {
			m.session.Enter(cell)
			m.cursor = m.session.LastVisited()
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.session == nil {
			return m, nil
		}
		// Release commits the gesture wherever the pointer is; a
		// release off the grid or outside the terminal still ends it.
		m.session.Release()
		LogSession(m.session, "release")
		m.session = nil
		m.editSeq++
		return m, nil
	}

	return m, nil
}
