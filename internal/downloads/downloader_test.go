package downloads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"clipcomp/internal/models"
)

// TestDownloadAll tests the happy path and ordering guarantee.
func TestDownloadAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "media-for-%s", r.URL.Path)
	}))
	defer srv.Close()

	clips := make([]*models.Clip, 5)
	for i := range clips {
		clips[i] = &models.Clip{
			ID:          fmt.Sprintf("clip%d", i),
			Title:       fmt.Sprintf("Clip %d", i),
			CreatorName: "streamer",
			DownloadURL: fmt.Sprintf("%s/clip%d.mp4", srv.URL, i),
		}
	}

	dir := t.TempDir()
	d := New()

	got, err := d.DownloadAll(context.Background(), dir, clips)
	if err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("DownloadAll() returned %d clips, want 5", len(got))
	}

	for i, dl := range got {
		if dl.Clip != clips[i] {
			t.Errorf("position %d: results out of order", i)
		}
		data, err := os.ReadFile(dl.Path)
		if err != nil {
			t.Fatalf("reading %s: %v", dl.Path, err)
		}
		if want := fmt.Sprintf("media-for-/clip%d.mp4", i); string(data) != want {
			t.Errorf("file contents = %q, want %q", data, want)
		}
	}
}

// TestDownloadAllPartialFailure tests that individual failures are dropped.
func TestDownloadAllPartialFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "clip2") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	clips := make([]*models.Clip, 5)
	for i := range clips {
		clips[i] = &models.Clip{
			ID:          fmt.Sprintf("clip%d", i),
			DownloadURL: fmt.Sprintf("%s/clip%d.mp4", srv.URL, i),
		}
	}

	got, err := New().DownloadAll(context.Background(), t.TempDir(), clips)
	if err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("DownloadAll() returned %d clips, want 4", len(got))
	}
	for _, dl := range got {
		if dl.Clip.ID == "clip2" {
			t.Error("failed clip included in results")
		}
	}
}

// TestDownloadAllTotalFailure tests the zero-success error.
func TestDownloadAllTotalFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	clips := []*models.Clip{
		{ID: "a", DownloadURL: srv.URL + "/a.mp4"},
		{ID: "b", DownloadURL: srv.URL + "/b.mp4"},
	}

	dir := t.TempDir()
	_, err := New().DownloadAll(context.Background(), dir, clips)
	if !errors.Is(err, ErrAllDownloadsFailed) {
		t.Fatalf("DownloadAll() error = %v, want ErrAllDownloadsFailed", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dir has %d leftover files, want 0", len(entries))
	}
}

// TestDownloadAllEmpty tests that an empty clip list errors immediately.
func TestDownloadAllEmpty(t *testing.T) {
	t.Parallel()

	_, err := New().DownloadAll(context.Background(), t.TempDir(), nil)
	if !errors.Is(err, ErrAllDownloadsFailed) {
		t.Errorf("DownloadAll() error = %v, want ErrAllDownloadsFailed", err)
	}
}

// TestSanitizeFilename tests filesystem-safe name generation.
func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces become underscores", "Top Clip Today", "Top_Clip_Today"},
		{"invalid characters stripped", `wh?at:a/cl*ip"<>|`, "whataclip"},
		{"empty becomes unknown", "", "unknown"},
		{"only invalid becomes unknown", `\/:*?"<>|`, "unknown"},
		{"long names truncated", strings.Repeat("a", 100), strings.Repeat("a", 80)},
		{"multi-byte names truncated on rune boundaries", strings.Repeat("é", 100), strings.Repeat("é", 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestClipFilename tests full filename assembly.
func TestClipFilename(t *testing.T) {
	t.Parallel()

	clip := &models.Clip{
		ID:          "AwkwardClip-123",
		CreatorName: "Some Streamer",
		Title:       "He did WHAT?",
	}
	got := ClipFilename(clip)
	want := "AwkwardClip-123_Some_Streamer_He_did_WHAT.mp4"
	if got != want {
		t.Errorf("ClipFilename() = %q, want %q", got, want)
	}
}

// TestClipFilenameLong tests truncation of oversized multi-byte names.
func TestClipFilenameLong(t *testing.T) {
	t.Parallel()

	clip := &models.Clip{
		ID:          strings.Repeat("ü", 90),
		CreatorName: strings.Repeat("ö", 90),
		Title:       strings.Repeat("ä", 90),
	}
	got := ClipFilename(clip)

	if !utf8.ValidString(got) {
		t.Errorf("ClipFilename() produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, ".mp4") {
		t.Errorf("ClipFilename() = %q, want .mp4 suffix", got)
	}
	if strings.Count(got, ".mp4") != 1 {
		t.Errorf("ClipFilename() = %q, want exactly one extension", got)
	}
	if runes := utf8.RuneCountInString(strings.TrimSuffix(got, ".mp4")); runes != 200 {
		t.Errorf("base name is %d runes, want 200", runes)
	}
}
