// Package twitch implements the clip-source client: app access token exchange
// and top-clip queries against the Helix API.
package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clipcomp/internal/domain/consts"
	"clipcomp/internal/models"
	"clipcomp/internal/parsing"
	"clipcomp/internal/utils/logging"
)

var (
	// ErrAuthFailed indicates the client-credentials token exchange failed.
	ErrAuthFailed = errors.New("twitch authentication failed")
	// ErrNoClips indicates the query matched no usable clips.
	ErrNoClips = errors.New("no clips found matching the criteria")
)

// Client talks to the Twitch Helix API. The app access token is cached in
// memory for the lifetime of the run, never persisted.
type Client struct {
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	// Overridable for tests.
	TokenURL string
	ClipsURL string

	token       string
	tokenExpiry time.Time
}

// New returns a Twitch client for the given application credentials.
func New(clientID, clientSecret string) *Client {
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		TokenURL:     consts.TwitchTokenURL,
		ClipsURL:     consts.TwitchClipsURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate performs the client-credentials flow, or reuses the cached
// token when it has not expired yet.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-consts.TwitchTokenExpiryBuffer)) {
		logging.D(1, "Using cached Twitch access token")
		return nil
	}

	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("%w: client ID or secret missing", ErrAuthFailed)
	}

	form := url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrAuthFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("%w: decoding token response: %v", ErrAuthFailed, err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("%w: empty access token in response", ErrAuthFailed)
	}

	c.token = tok.AccessToken
	if tok.ExpiresIn > 0 {
		c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	} else {
		// App tokens typically last around 60 days when no expiry is reported.
		c.tokenExpiry = time.Now().Add(60 * 24 * time.Hour)
	}

	logging.I("Obtained Twitch app access token (expires in %ds)", tok.ExpiresIn)
	return nil
}

type clipsResponse struct {
	Data []struct {
		ID              string  `json:"id"`
		URL             string  `json:"url"`
		BroadcasterName string  `json:"broadcaster_name"`
		GameID          string  `json:"game_id"`
		Language        string  `json:"language"`
		Title           string  `json:"title"`
		ViewCount       int     `json:"view_count"`
		CreatedAt       string  `json:"created_at"`
		ThumbnailURL    string  `json:"thumbnail_url"`
		Duration        float64 `json:"duration"`
	} `json:"data"`
}

// TopClips queries the Helix clips endpoint and returns clips in the
// platform's own popularity order. Clips without a derivable media URL, and
// clips failing the configured language filter, are excluded.
func (c *Client) TopClips(ctx context.Context, q models.ClipQuery) ([]*models.Clip, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: no access token, call Authenticate first", ErrAuthFailed)
	}

	limit := q.Limit
	if limit < 1 || limit > consts.MaxClipsPerQuery {
		limit = consts.MaxClipsPerQuery
	}

	startedAt := time.Now().UTC().Add(-time.Duration(q.PeriodHours) * time.Hour)

	params := url.Values{
		"first":      {strconv.Itoa(limit)},
		"started_at": {startedAt.Format(time.RFC3339)},
	}
	if q.GameID != "" {
		params.Set("game_id", q.GameID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.ClipsURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building clips request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Client-Id", c.ClientID)

	logging.D(1, "Fetching clips with params: %v", params)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clips request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("clips request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr clipsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("decoding clips response: %w", err)
	}

	clips := make([]*models.Clip, 0, len(cr.Data))
	for _, raw := range cr.Data {
		dlURL := DeriveDownloadURL(raw.ThumbnailURL)
		if dlURL == "" {
			logging.D(2, "Skipping clip %q: no derivable download URL", raw.ID)
			continue
		}

		// The Helix clips endpoint has no language parameter, filter here.
		if q.Language != "" && raw.Language != q.Language {
			logging.D(2, "Skipping clip %q: language %q, want %q", raw.ID, raw.Language, q.Language)
			continue
		}

		createdAt, err := parsing.ParseClipTime(raw.CreatedAt)
		if err != nil {
			logging.D(1, "Unparsable created_at %q for clip %q: %v", raw.CreatedAt, raw.ID, err)
		}

		clips = append(clips, &models.Clip{
			ID:          raw.ID,
			Title:       raw.Title,
			CreatorName: raw.BroadcasterName,
			URL:         raw.URL,
			DownloadURL: dlURL,
			ViewCount:   raw.ViewCount,
			Duration:    raw.Duration,
			GameID:      raw.GameID,
			Language:    raw.Language,
			CreatedAt:   createdAt,
		})
	}

	if len(clips) == 0 {
		return nil, ErrNoClips
	}

	logging.I("Fetched %d usable clip(s) from Twitch", len(clips))
	return clips, nil
}

// DeriveDownloadURL converts a clip thumbnail URL into the clip media URL.
// Returns "" when the thumbnail does not carry the preview marker.
func DeriveDownloadURL(thumbnailURL string) string {
	idx := strings.Index(thumbnailURL, consts.ThumbnailPreviewMarker)
	if idx < 0 {
		return ""
	}
	return thumbnailURL[:idx] + ".mp4"
}
