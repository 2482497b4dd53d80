// Package metadata derives upload metadata from the settings and clip list.
// Everything here is pure: no network, no filesystem, deterministic output.
package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"clipcomp/internal/models"
)

// Generate builds the full upload metadata for a compilation. Credit lines
// follow the clip order in the final compilation.
func Generate(s *models.Settings, clips []*models.Clip, compilationNumber int) *models.UploadMetadata {
	vals := PlaceholderValues(s.Twitch.GameName, compilationNumber)

	var desc strings.Builder
	intro := Substitute(s.YouTube.DescriptionIntro, vals)
	if intro != "" {
		desc.WriteString(intro)
		desc.WriteString("\n\n")
	}
	desc.WriteString("Clips featured in this compilation:\n")
	for i, clip := range clips {
		fmt.Fprintf(&desc, "%d. %s - %s\n", i+1, clip.CreatorName, clip.URL)
	}

	tags := make([]string, len(s.YouTube.Tags))
	copy(tags, s.YouTube.Tags)

	return &models.UploadMetadata{
		Title:         Substitute(s.YouTube.TitleTemplate, vals),
		Description:   desc.String(),
		Tags:          tags,
		CategoryID:    s.YouTube.CategoryID,
		PrivacyStatus: s.YouTube.PrivacyStatus,
		ChannelID:     s.YouTube.ChannelID,
	}
}

// BumperText builds the bumper overlay text from its template.
func BumperText(s *models.Settings, compilationNumber int) string {
	return Substitute(s.Video.BumperTextTemplate, PlaceholderValues(s.Twitch.GameName, compilationNumber))
}

// PlaceholderValues returns the template substitution map shared by the
// title, description and bumper templates.
func PlaceholderValues(gameName string, compilationNumber int) map[string]string {
	prefix := ""
	if gameName != "" {
		prefix = gameName + " | "
	}
	return map[string]string{
		"X":                strconv.Itoa(compilationNumber),
		"GAME_NAME":        gameName,
		"GAME_NAME_PREFIX": prefix,
	}
}

// Substitute replaces every {KEY} placeholder in template with its value.
// Unknown placeholders are left untouched.
func Substitute(template string, vals map[string]string) string {
	out := template
	for key, val := range vals {
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	return out
}
