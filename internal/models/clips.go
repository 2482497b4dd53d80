package models

import "time"

// Clip contains fields relating to a single Twitch clip, as returned by the
// Helix clips endpoint. Read-only after fetch.
type Clip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatorName string    `json:"creator_name"`
	URL         string    `json:"url"`
	DownloadURL string    `json:"download_url"`
	ViewCount   int       `json:"view_count"`
	Duration    float64   `json:"duration"` // seconds
	GameID      string    `json:"game_id"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

// DownloadedClip pairs a clip with its local media file.
type DownloadedClip struct {
	Clip *Clip
	Path string
}

// ClipQuery holds the filters for a top-clips fetch.
type ClipQuery struct {
	GameID      string
	Language    string
	PeriodHours int
	Limit       int
}
