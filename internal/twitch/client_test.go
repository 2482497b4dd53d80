package twitch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"clipcomp/internal/models"
)

// TestDeriveDownloadURL tests media URL derivation from thumbnail URLs.
func TestDeriveDownloadURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "standard thumbnail",
			in:   "https://clips-media-assets2.twitch.tv/AT-cm%7C123-preview-480x272.jpg",
			want: "https://clips-media-assets2.twitch.tv/AT-cm%7C123.mp4",
		},
		{
			name: "no preview marker",
			in:   "https://clips-media-assets2.twitch.tv/AT-cm%7C123-thumb.jpg",
			want: "",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveDownloadURL(tt.in); got != tt.want {
				t.Errorf("DeriveDownloadURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestAuthenticate tests the client-credentials token exchange.
func TestAuthenticate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token request method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing token form: %v", err)
			return
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", got)
		}
		if got := r.PostForm.Get("client_id"); got != "test-id" {
			t.Errorf("client_id = %q, want test-id", got)
		}
		fmt.Fprint(w, `{"access_token":"tok-abc","expires_in":5000}`)
	}))
	defer srv.Close()

	c := New("test-id", "test-secret")
	c.TokenURL = srv.URL

	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if c.token != "tok-abc" {
		t.Errorf("cached token = %q, want tok-abc", c.token)
	}

	// A second call must reuse the cached token, not hit the server again.
	srv.Close()
	if err := c.Authenticate(context.Background()); err != nil {
		t.Errorf("cached Authenticate() error = %v", err)
	}
}

// TestAuthenticateRejected tests the failure path for bad credentials.
func TestAuthenticateRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":403,"message":"invalid client secret"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("test-id", "bad-secret")
	c.TokenURL = srv.URL

	err := c.Authenticate(context.Background())
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Authenticate() error = %v, want ErrAuthFailed", err)
	}
}

const clipJSON = `{"id":%q,"url":"https://clips.twitch.tv/%s","broadcaster_name":"streamer%d",` +
	`"game_id":"32399","language":%q,"title":"Clip %d","view_count":%d,` +
	`"created_at":"2026-08-29T18:04:05Z",` +
	`"thumbnail_url":"https://media.tv/%s-preview-480x272.jpg","duration":%g}`

// TestTopClips tests clip fetching, URL derivation and the language filter.
func TestTopClips(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("Authorization = %q, want Bearer tok-abc", got)
		}
		if got := r.Header.Get("Client-Id"); got != "test-id" {
			t.Errorf("Client-Id = %q, want test-id", got)
		}
		q := r.URL.Query()
		if got := q.Get("game_id"); got != "32399" {
			t.Errorf("game_id = %q, want 32399", got)
		}
		if q.Get("started_at") == "" {
			t.Error("started_at parameter missing")
		}

		clips := []string{
			fmt.Sprintf(clipJSON, "c1", "c1", 1, "en", 1, 900, "c1", 30.0),
			fmt.Sprintf(clipJSON, "c2", "c2", 2, "de", 2, 800, "c2", 25.0),
			fmt.Sprintf(clipJSON, "c3", "c3", 3, "en", 3, 700, "c3", 20.0),
		}
		fmt.Fprintf(w, `{"data":[%s,%s,%s]}`, clips[0], clips[1], clips[2])
	}))
	defer srv.Close()

	c := New("test-id", "test-secret")
	c.ClipsURL = srv.URL
	c.token = "tok-abc"

	clips, err := c.TopClips(context.Background(), models.ClipQuery{
		GameID:      "32399",
		Language:    "en",
		PeriodHours: 24,
		Limit:       100,
	})
	if err != nil {
		t.Fatalf("TopClips() error = %v", err)
	}

	if len(clips) != 2 {
		t.Fatalf("TopClips() returned %d clips, want 2 (language filter)", len(clips))
	}
	if clips[0].ID != "c1" || clips[1].ID != "c3" {
		t.Errorf("clip order = %s, %s, want c1, c3", clips[0].ID, clips[1].ID)
	}
	if want := "https://media.tv/c1.mp4"; clips[0].DownloadURL != want {
		t.Errorf("DownloadURL = %q, want %q", clips[0].DownloadURL, want)
	}
	if clips[0].CreatorName != "streamer1" {
		t.Errorf("CreatorName = %q, want streamer1", clips[0].CreatorName)
	}
	if clips[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}

// TestTopClipsEmpty tests that an empty result maps to ErrNoClips.
func TestTopClipsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := New("test-id", "test-secret")
	c.ClipsURL = srv.URL
	c.token = "tok-abc"

	_, err := c.TopClips(context.Background(), models.ClipQuery{GameID: "32399"})
	if !errors.Is(err, ErrNoClips) {
		t.Errorf("TopClips() error = %v, want ErrNoClips", err)
	}
}

// TestTopClipsWithoutToken tests the guard against unauthenticated queries.
func TestTopClipsWithoutToken(t *testing.T) {
	t.Parallel()

	c := New("test-id", "test-secret")
	_, err := c.TopClips(context.Background(), models.ClipQuery{})
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("TopClips() error = %v, want ErrAuthFailed", err)
	}
}
