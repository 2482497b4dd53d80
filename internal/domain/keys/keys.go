// Package keys holds Viper key constants, shared between flags and the config file.
package keys

// Terminal keys
const (
	ConfigFile string = "config-file"
	DebugLevel string = "debug-level"
)

// Twitch section
const (
	TwitchClientID     string = "twitch.client_id"
	TwitchClientSecret string = "twitch.client_secret"
	TwitchGameID       string = "twitch.game_id"
	TwitchGameName     string = "twitch.game_name"
	TwitchClipLanguage string = "twitch.clip_language"
	TwitchClipPeriod   string = "twitch.clip_period"
)

// YouTube section
const (
	YouTubeClientSecretFile string = "youtube.client_secret_file"
	YouTubeTokenFile        string = "youtube.token_file"
	YouTubeChannelID        string = "youtube.channel_id"
	YouTubePrivacyStatus    string = "youtube.privacy_status"
	YouTubeCategoryID       string = "youtube.category_id"
	YouTubeTitleTemplate    string = "youtube.title_template"
	YouTubeDescIntro        string = "youtube.description_intro"
	YouTubeTags             string = "youtube.tags"
)

// Video section
const (
	VideoResolution         string = "video.resolution"
	VideoTargetMinutes      string = "video.target_duration_minutes"
	VideoBumperEnabled      string = "video.bumper_enabled"
	VideoBumperTemplate     string = "video.bumper_text_template"
	VideoBumperSeconds      string = "video.bumper_duration_seconds"
	VideoTransitionsEnabled string = "video.transitions_enabled"
	VideoTransitionSeconds  string = "video.transition_duration_seconds"
	VideoOutputDir          string = "video.output_dir"
	VideoScratchDir         string = "video.scratch_dir"
)

// General section
const (
	GeneralLogLevel    string = "general.log_level"
	GeneralCounterFile string = "general.counter_file"
	GeneralDBFile      string = "general.database_file"
)
