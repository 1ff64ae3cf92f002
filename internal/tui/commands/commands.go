// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/pool"
)

// GridLoadedMsg is sent when the stored grid and submission snapshot
// are loaded.
type GridLoadedMsg struct {
	Matrix         *avail.Matrix
	LastSubmission *avail.Submission
}

// SavedMsg is sent when a local save completes. Seq identifies which
// edit state the save captured; the model ignores completions behind
// its latest applied edit.
type SavedMsg struct {
	Seq uint64
}

// SaveErrMsg is sent when a local save fails.
type SaveErrMsg struct {
	Seq uint64
	Err error
}

// SubmittedMsg is sent when a pool submission succeeds.
type SubmittedMsg struct {
	Submission *avail.Submission
}

// SubmitErrMsg is sent when a pool submission fails. The local grid is
// untouched; the owner surfaces the error and keeps the unsaved state.
type SubmitErrMsg struct {
	Err error
}

// ErrMsg is sent when a load fails.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadGrid loads the member's stored availability and last submission.
func LoadGrid(repo avail.Repository, memberID string, days, slots int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		m, err := repo.LoadAvailability(ctx, memberID, days, slots)
		if err != nil {
			return ErrMsg{Err: err}
		}

		sub, err := repo.LastSubmission(ctx, memberID)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return GridLoadedMsg{Matrix: m, LastSubmission: sub}
	}
}

// SaveGrid persists a snapshot of the grid. The caller passes a clone
// so edits made while the save is in flight cannot leak into it.
func SaveGrid(repo avail.Repository, memberID string, snapshot *avail.Matrix, seq uint64) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SaveAvailability(context.Background(), memberID, snapshot); err != nil {
			return SaveErrMsg{Seq: seq, Err: err}
		}
		return SavedMsg{Seq: seq}
	}
}

// Submit sends a snapshot to the interview pool and records the
// submission locally on success.
func Submit(client *pool.Client, repo avail.Repository, memberID string, snapshot *avail.Matrix) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if err := client.Signup(ctx, memberID, snapshot); err != nil {
			return SubmitErrMsg{Err: err}
		}

		sub := &avail.Submission{
			MemberID:    memberID,
			Matrix:      snapshot,
			SubmittedAt: time.Now(),
		}
		if err := repo.RecordSubmission(ctx, sub); err != nil {
			// The pool accepted the signup; a failed local snapshot
			// only weakens the resubmit warning.
			return SubmittedMsg{Submission: sub}
		}
		return SubmittedMsg{Submission: sub}
	}
}
