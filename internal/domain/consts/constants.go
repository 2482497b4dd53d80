// Package consts holds various global, unchanging values.
package consts

import "time"

// Twitch API endpoints.
const (
	TwitchTokenURL = "https://id.twitch.tv/oauth2/token"
	TwitchClipsURL = "https://api.twitch.tv/helix/clips"
)

// TwitchTokenExpiryBuffer is subtracted from the reported token lifetime so a
// token is never used right at its expiry edge.
const TwitchTokenExpiryBuffer = 60 * time.Second

// MaxClipsPerQuery is the Helix clips endpoint page cap.
const MaxClipsPerQuery = 100

// Thumbnail URLs embed a "-preview-WxH.jpg" suffix; cutting there and
// appending ".mp4" yields the clip media URL.
const ThumbnailPreviewMarker = "-preview-"

// Encoder settings for the final render.
const (
	VideoCodec   = "libx264"
	AudioCodec   = "aac"
	EncodePreset = "medium"
	EncodeCRF    = "23"
)

// YouTube upload defaults.
const (
	DefaultCategoryID    = "20" // Gaming
	DefaultPrivacyStatus = "private"
)

// Duration selection behavior: once at least OvershootFloorFraction of the
// target has accumulated, a clip pushing the total more than OvershootGrace
// past the target is not added.
const (
	OvershootGrace         = 30 * time.Second
	OvershootFloorFraction = 0.8
)

// Scratch and output file naming.
const (
	ScratchDirPrefix   = "run_"
	CompilationPattern = "compilation_%d.mp4"
	BumperFilename     = "bumper.mp4"
	LogFilename        = "clipcomp.log"
)
