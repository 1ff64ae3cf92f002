package avail

import (
	"context"
	"time"
)

// Submission is a snapshot of a matrix sent to the interview pool,
// kept locally so a resubmit of identical availability can warn first.
type Submission struct {
	MemberID    string
	Matrix      *Matrix
	SubmittedAt time.Time
}

// Repository defines local storage for availability grids.
type Repository interface {
	// SaveAvailability stores the member's current grid, replacing any
	// previous one. Last write wins.
	SaveAvailability(ctx context.Context, memberID string, m *Matrix) error

	// LoadAvailability returns the member's stored grid. A member with
	// no stored grid, or a grid that cannot be decoded, yields an
	// all-unavailable matrix of the given shape.
	LoadAvailability(ctx context.Context, memberID string, days, slots int) (*Matrix, error)

	// RecordSubmission stores the snapshot of a successful pool
	// submission.
	RecordSubmission(ctx context.Context, sub *Submission) error

	// LastSubmission returns the most recent submission snapshot, or
	// nil when the member has never submitted.
	LastSubmission(ctx context.Context, memberID string) (*Submission, error)

	// Close releases any resources held by the repository.
	Close() error
}
