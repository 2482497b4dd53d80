package metadata

import (
	"strings"
	"testing"

	"clipcomp/internal/models"
)

func testSettings() *models.Settings {
	return &models.Settings{
		Twitch: models.TwitchSettings{
			GameName: "Rocket League",
		},
		YouTube: models.YouTubeSettings{
			TitleTemplate:    "{GAME_NAME_PREFIX}Top Clips #{X}",
			DescriptionIntro: "The best {GAME_NAME} moments, day {X}.",
			Tags:             []string{"rocket league", "clips", "compilation"},
			CategoryID:       "20",
			PrivacyStatus:    "private",
			ChannelID:        "UCtest",
		},
		Video: models.VideoSettings{
			BumperTextTemplate: "{GAME_NAME} Compilation #{X}",
		},
	}
}

func testClips() []*models.Clip {
	return []*models.Clip{
		{CreatorName: "alpha", URL: "https://clips.twitch.tv/a"},
		{CreatorName: "beta", URL: "https://clips.twitch.tv/b"},
		{CreatorName: "gamma", URL: "https://clips.twitch.tv/c"},
	}
}

// TestGenerate tests metadata assembly and placeholder substitution.
func TestGenerate(t *testing.T) {
	t.Parallel()

	s := testSettings()
	meta := Generate(s, testClips(), 17)

	if want := "Rocket League | Top Clips #17"; meta.Title != want {
		t.Errorf("Title = %q, want %q", meta.Title, want)
	}
	if !strings.HasPrefix(meta.Description, "The best Rocket League moments, day 17.") {
		t.Errorf("Description intro not substituted: %q", meta.Description)
	}
	if meta.CategoryID != "20" || meta.PrivacyStatus != "private" {
		t.Errorf("CategoryID/PrivacyStatus = %q/%q", meta.CategoryID, meta.PrivacyStatus)
	}
	if len(meta.Tags) != 3 {
		t.Errorf("Tags = %v, want 3 entries", meta.Tags)
	}
}

// TestGenerateCreditLines tests credit ordering and formatting.
func TestGenerateCreditLines(t *testing.T) {
	t.Parallel()

	meta := Generate(testSettings(), testClips(), 1)

	wantLines := []string{
		"1. alpha - https://clips.twitch.tv/a",
		"2. beta - https://clips.twitch.tv/b",
		"3. gamma - https://clips.twitch.tv/c",
	}
	idx := -1
	for _, line := range wantLines {
		next := strings.Index(meta.Description, line)
		if next < 0 {
			t.Fatalf("Description missing credit line %q:\n%s", line, meta.Description)
		}
		if next < idx {
			t.Errorf("credit line %q out of order", line)
		}
		idx = next
	}
}

// TestGenerateDeterministic tests that identical inputs give identical output.
func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	s := testSettings()
	clips := testClips()

	a := Generate(s, clips, 5)
	b := Generate(s, clips, 5)
	if a.Title != b.Title || a.Description != b.Description {
		t.Error("Generate() output differs between identical calls")
	}
}

// TestGenerateDoesNotShareTags tests that callers cannot mutate settings tags.
func TestGenerateDoesNotShareTags(t *testing.T) {
	t.Parallel()

	s := testSettings()
	meta := Generate(s, testClips(), 1)
	meta.Tags[0] = "mutated"
	if s.YouTube.Tags[0] == "mutated" {
		t.Error("Generate() returned a tag slice aliasing the settings")
	}
}

// TestPlaceholderValues tests the shared substitution map.
func TestPlaceholderValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		gameName   string
		number     int
		wantPrefix string
	}{
		{"named game gets prefix", "Dota 2", 3, "Dota 2 | "},
		{"empty game gets empty prefix", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := PlaceholderValues(tt.gameName, tt.number)
			if vals["GAME_NAME_PREFIX"] != tt.wantPrefix {
				t.Errorf("GAME_NAME_PREFIX = %q, want %q", vals["GAME_NAME_PREFIX"], tt.wantPrefix)
			}
			if vals["GAME_NAME"] != tt.gameName {
				t.Errorf("GAME_NAME = %q, want %q", vals["GAME_NAME"], tt.gameName)
			}
		})
	}
}

// TestBumperText tests bumper template substitution.
func TestBumperText(t *testing.T) {
	t.Parallel()

	got := BumperText(testSettings(), 9)
	if want := "Rocket League Compilation #9"; got != want {
		t.Errorf("BumperText() = %q, want %q", got, want)
	}
}

// TestSubstitute tests placeholder handling edge cases.
func TestSubstitute(t *testing.T) {
	t.Parallel()

	vals := map[string]string{"X": "4", "GAME_NAME": "Chess"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"all placeholders", "{GAME_NAME} #{X}", "Chess #4"},
		{"unknown placeholder untouched", "{WHO} #{X}", "{WHO} #4"},
		{"no placeholders", "plain text", "plain text"},
		{"empty template", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.template, vals); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}
