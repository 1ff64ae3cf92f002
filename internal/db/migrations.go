package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS availability (
			member_id  TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			days       INTEGER NOT NULL,
			slots      INTEGER NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS submissions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			member_id    TEXT NOT NULL,
			payload      TEXT NOT NULL,
			days         INTEGER NOT NULL,
			slots        INTEGER NOT NULL,
			submitted_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_submissions_member ON submissions(member_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
