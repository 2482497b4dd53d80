package cfg

import (
	"fmt"
	"strings"
	"time"

	"clipcomp/internal/domain/consts"
	"clipcomp/internal/domain/keys"
	"clipcomp/internal/models"
	"clipcomp/internal/parsing"
	"clipcomp/internal/validation"

	"github.com/spf13/viper"
)

// LoadSettings builds and validates the full program configuration from the
// loaded Viper state. Any missing required key or malformed value is returned
// as an error before a single network call is made.
func LoadSettings() (*models.Settings, error) {
	s := &models.Settings{
		Twitch: models.TwitchSettings{
			ClientID:     viper.GetString(keys.TwitchClientID),
			ClientSecret: viper.GetString(keys.TwitchClientSecret),
			GameID:       viper.GetString(keys.TwitchGameID),
			GameName:     viper.GetString(keys.TwitchGameName),
			ClipLanguage: viper.GetString(keys.TwitchClipLanguage),
		},
		YouTube: models.YouTubeSettings{
			ClientSecretFile: viper.GetString(keys.YouTubeClientSecretFile),
			TokenFile:        viper.GetString(keys.YouTubeTokenFile),
			ChannelID:        viper.GetString(keys.YouTubeChannelID),
			PrivacyStatus:    viper.GetString(keys.YouTubePrivacyStatus),
			CategoryID:       viper.GetString(keys.YouTubeCategoryID),
			TitleTemplate:    viper.GetString(keys.YouTubeTitleTemplate),
			DescriptionIntro: viper.GetString(keys.YouTubeDescIntro),
		},
		Video: models.VideoSettings{
			Resolution:         viper.GetString(keys.VideoResolution),
			BumperEnabled:      viper.GetBool(keys.VideoBumperEnabled),
			BumperTextTemplate: viper.GetString(keys.VideoBumperTemplate),
			BumperSeconds:      viper.GetFloat64(keys.VideoBumperSeconds),
			TransitionsEnabled: viper.GetBool(keys.VideoTransitionsEnabled),
			TransitionSeconds:  viper.GetFloat64(keys.VideoTransitionSeconds),
			OutputDir:          viper.GetString(keys.VideoOutputDir),
			ScratchDir:         viper.GetString(keys.VideoScratchDir),
		},
		General: models.GeneralSettings{
			LogLevel:    viper.GetInt(keys.GeneralLogLevel),
			CounterFile: viper.GetString(keys.GeneralCounterFile),
			DBFile:      viper.GetString(keys.GeneralDBFile),
		},
	}

	if viper.IsSet(keys.DebugLevel) && viper.GetInt(keys.DebugLevel) > 0 {
		s.General.LogLevel = viper.GetInt(keys.DebugLevel)
	}

	applyDefaults(s)

	if err := parseValues(s); err != nil {
		return nil, err
	}
	if err := validateSettings(s); err != nil {
		return nil, err
	}
	return s, nil
}

func applyDefaults(s *models.Settings) {
	if s.YouTube.PrivacyStatus == "" {
		s.YouTube.PrivacyStatus = consts.DefaultPrivacyStatus
	}
	if s.YouTube.CategoryID == "" {
		s.YouTube.CategoryID = consts.DefaultCategoryID
	}
	if s.YouTube.TitleTemplate == "" {
		s.YouTube.TitleTemplate = "{GAME_NAME_PREFIX}Top Clips #{X}"
	}
	if s.Video.Resolution == "" {
		s.Video.Resolution = "1080p"
	}
	if s.Video.BumperSeconds <= 0 {
		s.Video.BumperSeconds = 3.0
	}
	if s.Video.TransitionSeconds <= 0 {
		s.Video.TransitionSeconds = 0.5
	}
	if s.Video.OutputDir == "" {
		s.Video.OutputDir = "output"
	}
	if s.Video.ScratchDir == "" {
		s.Video.ScratchDir = "scratch"
	}
	if s.General.CounterFile == "" {
		s.General.CounterFile = "counter.txt"
	}
}

func parseValues(s *models.Settings) error {
	period := viper.GetString(keys.TwitchClipPeriod)
	if period == "" {
		period = "last_24_hours"
	}
	hours, err := parsing.ParsePeriod(period)
	if err != nil {
		return err
	}
	s.Twitch.PeriodHours = hours

	w, h, err := parsing.ParseResolution(s.Video.Resolution)
	if err != nil {
		return err
	}
	s.Video.Width, s.Video.Height = w, h

	minutes := viper.GetInt(keys.VideoTargetMinutes)
	if minutes <= 0 {
		return fmt.Errorf("%s must be a positive number of minutes, got %d", keys.VideoTargetMinutes, minutes)
	}
	s.Video.TargetDuration = time.Duration(minutes) * time.Minute

	if tags := viper.GetString(keys.YouTubeTags); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				s.YouTube.Tags = append(s.YouTube.Tags, t)
			}
		}
	}
	return nil
}

// validateSettings checks required fields and touches the filesystem paths the
// run will need.
func validateSettings(s *models.Settings) error {
	// GameID stays optional: with no game filter the query covers all of
	// Twitch.
	required := []struct {
		key, val string
	}{
		{keys.TwitchClientID, s.Twitch.ClientID},
		{keys.TwitchClientSecret, s.Twitch.ClientSecret},
		{keys.YouTubeClientSecretFile, s.YouTube.ClientSecretFile},
		{keys.YouTubeTokenFile, s.YouTube.TokenFile},
		{keys.YouTubeChannelID, s.YouTube.ChannelID},
	}
	for _, r := range required {
		if r.val == "" {
			return fmt.Errorf("required configuration key %q is not set", r.key)
		}
	}

	switch s.YouTube.PrivacyStatus {
	case "private", "unlisted", "public":
	default:
		return fmt.Errorf("invalid privacy status %q (want private, unlisted or public)", s.YouTube.PrivacyStatus)
	}

	if _, err := validation.ValidateFile(s.YouTube.ClientSecretFile, false); err != nil {
		return fmt.Errorf("client secret file: %w", err)
	}
	if _, err := validation.ValidateDirectory(s.Video.OutputDir, true); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if _, err := validation.ValidateDirectory(s.Video.ScratchDir, true); err != nil {
		return fmt.Errorf("scratch directory: %w", err)
	}
	return nil
}
