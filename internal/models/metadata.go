package models

// UploadMetadata is the full metadata set for a published compilation.
// Derived deterministically from the settings and clip list, never persisted.
type UploadMetadata struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
	ChannelID     string
}

// RenderedVideo is the assembler's output: a file on disk plus its probed
// duration in seconds.
type RenderedVideo struct {
	Path     string
	Duration float64
}
