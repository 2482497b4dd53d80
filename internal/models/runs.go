package models

import "time"

// RunRecord is one row of publish history.
//
// Matches the order of the DB table, do not alter.
type RunRecord struct {
	ID                int64     `json:"id" db:"id"`
	RunID             string    `json:"run_id" db:"run_id"`
	CompilationNumber int       `json:"compilation_number" db:"compilation_number"`
	VideoID           string    `json:"video_id" db:"video_id"`
	ClipCount         int       `json:"clip_count" db:"clip_count"`
	Duration          float64   `json:"duration" db:"duration"`
	PublishedAt       time.Time `json:"published_at" db:"published_at"`
}
