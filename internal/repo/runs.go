// Package repo provides access to the run-history table.
package repo

import (
	"database/sql"
	"fmt"

	"clipcomp/internal/models"

	"github.com/Masterminds/squirrel"
)

const runsTable = "runs"

// RunStore records and queries publish history.
type RunStore struct {
	DB *sql.DB
}

// NewRunStore returns a run-history store over the given database.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{DB: db}
}

// RecordRun inserts one publish-history row.
func (rs *RunStore) RecordRun(r *models.RunRecord) error {
	query := squirrel.
		Insert(runsTable).
		Columns("run_id", "compilation_number", "video_id", "clip_count", "duration", "published_at").
		Values(r.RunID, r.CompilationNumber, r.VideoID, r.ClipCount, r.Duration, r.PublishedAt).
		RunWith(rs.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to record run %q: %w", r.RunID, err)
	}
	return nil
}

// LastRun returns the most recently published run, or nil when no history
// exists yet.
func (rs *RunStore) LastRun() (*models.RunRecord, error) {
	query := squirrel.
		Select("id", "run_id", "compilation_number", "video_id", "clip_count", "duration", "published_at").
		From(runsTable).
		OrderBy("id DESC").
		Limit(1).
		RunWith(rs.DB)

	r := new(models.RunRecord)
	err := query.QueryRow().Scan(
		&r.ID, &r.RunID, &r.CompilationNumber, &r.VideoID,
		&r.ClipCount, &r.Duration, &r.PublishedAt,
	)
	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to query last run: %w", err)
	}
	return r, nil
}
