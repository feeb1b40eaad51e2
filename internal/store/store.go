// Package store persists saved jobs in SQLite so a host application can
// carry them across analysis sessions. The session itself keeps saved jobs
// in memory; syncing against this store is the host's choice.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SavedJob is a persisted saved-job row.
type SavedJob struct {
	ID       string
	Title    string
	Company  string
	Platform string
	Link     string
	Salary   string
	Tags     []string
}

// Store wraps the saved-jobs database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open saved-jobs db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS saved_jobs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	platform TEXT NOT NULL,
	link TEXT NOT NULL,
	salary TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`)
	if err != nil {
		return fmt.Errorf("failed to migrate saved-jobs db: %w", err)
	}
	return nil
}

// Save upserts a saved job.
func (s *Store) Save(ctx context.Context, job SavedJob) error {
	tags, err := json.Marshal(job.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO saved_jobs (id, title, company, platform, link, salary, tags)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	company = excluded.company,
	platform = excluded.platform,
	link = excluded.link,
	salary = excluded.salary,
	tags = excluded.tags;
`, job.ID, job.Title, job.Company, job.Platform, job.Link, job.Salary, string(tags))
	if err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

// Delete removes a saved job by id. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	return nil
}

// List returns all saved jobs, oldest first.
func (s *Store) List(ctx context.Context) ([]SavedJob, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, company, platform, link, salary, tags
FROM saved_jobs
ORDER BY saved_at, id;
`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []SavedJob
	for rows.Next() {
		var job SavedJob
		var tags string
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.Platform, &job.Link, &job.Salary, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan saved job: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &job.Tags); err != nil {
			job.Tags = []string{}
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
