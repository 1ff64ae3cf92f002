// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tandemclub/tandem/internal/avail"
)

// SQLite implements avail.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: sqlDB}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SaveAvailability stores the member's grid as a JSON matrix of 0/1
// integers, replacing any previous row. Last write wins.
func (s *SQLite) SaveAvailability(ctx context.Context, memberID string, m *avail.Matrix) error {
	payload, err := json.Marshal(m.Encode())
	if err != nil {
		return fmt.Errorf("encoding availability: %w", err)
	}

	query := `
		INSERT INTO availability (member_id, payload, days, slots, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(member_id) DO UPDATE SET
			payload = excluded.payload,
			days = excluded.days,
			slots = excluded.slots,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		memberID,
		string(payload),
		m.Days(),
		m.Slots(),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting availability: %w", err)
	}

	return nil
}

// LoadAvailability returns the member's stored grid. A missing row or
// a payload that no longer decodes yields an all-unavailable matrix of
// the requested shape rather than an error.
func (s *SQLite) LoadAvailability(ctx context.Context, memberID string, days, slots int) (*avail.Matrix, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM availability WHERE member_id = ?`, memberID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return avail.NewMatrix(days, slots), nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying availability: %w", err)
	}

	m := decodePayload(payload)
	if m == nil || m.Days() != days || m.Slots() != slots {
		// Corrupt or stale-shape payload: treat as absent.
		return avail.NewMatrix(days, slots), nil
	}
	return m, nil
}

// RecordSubmission stores the snapshot of a successful pool submission.
func (s *SQLite) RecordSubmission(ctx context.Context, sub *avail.Submission) error {
	payload, err := json.Marshal(sub.Matrix.Encode())
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	query := `
		INSERT INTO submissions (member_id, payload, days, slots, submitted_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		sub.MemberID,
		string(payload),
		sub.Matrix.Days(),
		sub.Matrix.Slots(),
		sub.SubmittedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}

	return nil
}

// LastSubmission returns the most recent submission snapshot, or nil
// when the member has never submitted.
func (s *SQLite) LastSubmission(ctx context.Context, memberID string) (*avail.Submission, error) {
	query := `
		SELECT payload, submitted_at
		FROM submissions
		WHERE member_id = ?
		ORDER BY id DESC
		LIMIT 1
	`

	var (
		payload     string
		submittedAt string
	)
	err := s.db.QueryRowContext(ctx, query, memberID).Scan(&payload, &submittedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}

	m := decodePayload(payload)
	if m == nil {
		return nil, nil
	}

	at, err := time.Parse(time.RFC3339, submittedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing submitted_at: %w", err)
	}

	return &avail.Submission{
		MemberID:    memberID,
		Matrix:      m,
		SubmittedAt: at,
	}, nil
}

// decodePayload parses a stored JSON 0/1 matrix. Returns nil on any
// decoding failure.
func decodePayload(payload string) *avail.Matrix {
	var rows [][]int
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil
	}
	m, err := avail.Decode(rows)
	if err != nil {
		return nil
	}
	return m
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
