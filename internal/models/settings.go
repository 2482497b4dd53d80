package models

import "time"

// Settings is the full, validated program configuration. Loaded once per run
// and treated as immutable afterwards.
type Settings struct {
	Twitch  TwitchSettings
	YouTube YouTubeSettings
	Video   VideoSettings
	General GeneralSettings
}

// TwitchSettings holds clip-source credentials and query filters.
type TwitchSettings struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"-"`
	GameID       string `json:"game_id"`
	GameName     string `json:"game_name"`
	ClipLanguage string `json:"clip_language"`
	PeriodHours  int    `json:"clip_period_hours"`
}

// YouTubeSettings holds publish-target credentials and metadata templates.
type YouTubeSettings struct {
	ClientSecretFile string   `json:"client_secret_file"`
	TokenFile        string   `json:"token_file"`
	ChannelID        string   `json:"channel_id"`
	PrivacyStatus    string   `json:"privacy_status"`
	CategoryID       string   `json:"category_id"`
	TitleTemplate    string   `json:"title_template"`
	DescriptionIntro string   `json:"description_intro"`
	Tags             []string `json:"tags"`
}

// VideoSettings holds output parameters for the rendered compilation.
type VideoSettings struct {
	Resolution         string        `json:"resolution"`
	Width              int           `json:"-"`
	Height             int           `json:"-"`
	TargetDuration     time.Duration `json:"target_duration"`
	BumperEnabled      bool          `json:"bumper_enabled"`
	BumperTextTemplate string        `json:"bumper_text_template"`
	BumperSeconds      float64       `json:"bumper_duration_seconds"`
	TransitionsEnabled bool          `json:"transitions_enabled"`
	TransitionSeconds  float64       `json:"transition_duration_seconds"`
	OutputDir          string        `json:"output_dir"`
	ScratchDir         string        `json:"scratch_dir"`
}

// GeneralSettings holds program-wide settings.
type GeneralSettings struct {
	LogLevel    int    `json:"log_level"`
	CounterFile string `json:"counter_file"`
	DBFile      string `json:"database_file"`
}

// TransitionOverlap returns the crossfade duration to subtract per join, or 0
// when transitions are disabled.
func (v *VideoSettings) TransitionOverlap() float64 {
	if !v.TransitionsEnabled {
		return 0
	}
	return v.TransitionSeconds
}
