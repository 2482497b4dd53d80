// Package downloads fetches clip media files into the run's scratch directory.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"clipcomp/internal/models"
	"clipcomp/internal/utils/logging"
)

// ErrAllDownloadsFailed indicates not a single clip could be downloaded.
var ErrAllDownloadsFailed = errors.New("no clips were successfully downloaded")

var invalidFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// Downloader fetches clip media over HTTP with bounded concurrency.
type Downloader struct {
	HTTPClient  *http.Client
	Concurrency int
}

// New returns a downloader with default client settings.
func New() *Downloader {
	return &Downloader{
		HTTPClient:  &http.Client{Timeout: 60 * time.Second},
		Concurrency: 3,
	}
}

// DownloadAll fetches every clip into dir. Individual failures are logged and
// dropped; the returned list preserves the original clip order. If zero clips
// succeed, ErrAllDownloadsFailed is returned.
func (d *Downloader) DownloadAll(ctx context.Context, dir string, clips []*models.Clip) ([]*models.DownloadedClip, error) {
	if len(clips) == 0 {
		return nil, ErrAllDownloadsFailed
	}

	conc := d.Concurrency
	if conc < 1 {
		conc = 1
	}
	if conc > len(clips) {
		conc = len(clips)
	}

	logging.I("Downloading %d clip(s) to %s (concurrency %d)", len(clips), dir, conc)

	// Results are written by index so ordering follows the fetch order
	// regardless of completion order.
	paths := make([]string, len(clips))
	jobs := make(chan int, len(clips))

	var wg sync.WaitGroup
	for w := 0; w < conc; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				clip := clips[i]
				path, err := d.download(ctx, dir, clip)
				if err != nil {
					logging.E("Failed to download clip %q (%s): %v", clip.Title, clip.ID, err)
					continue
				}
				paths[i] = path
				logging.D(1, "Downloaded clip %q to %s", clip.Title, path)
			}
		}()
	}

	for i := range clips {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	downloaded := make([]*models.DownloadedClip, 0, len(clips))
	for i, path := range paths {
		if path == "" {
			continue
		}
		downloaded = append(downloaded, &models.DownloadedClip{Clip: clips[i], Path: path})
	}

	if len(downloaded) == 0 {
		return nil, ErrAllDownloadsFailed
	}

	logging.S("Downloaded %d of %d clip(s)", len(downloaded), len(clips))
	return downloaded, nil
}

// download fetches a single clip to disk, removing any partial file on error.
func (d *Downloader) download(ctx context.Context, dir string, clip *models.Clip) (string, error) {
	if clip.DownloadURL == "" {
		return "", fmt.Errorf("clip %q has no download URL", clip.ID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, clip.DownloadURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	path := filepath.Join(dir, ClipFilename(clip))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// ClipFilename builds a filesystem-safe name for a clip's media file.
func ClipFilename(clip *models.Clip) string {
	name := fmt.Sprintf("%s_%s_%s",
		SanitizeFilename(clip.ID),
		SanitizeFilename(clip.CreatorName),
		SanitizeFilename(clip.Title))
	return truncateRunes(name, 200) + ".mp4"
}

// SanitizeFilename strips characters that are invalid in filenames and
// replaces spaces with underscores.
func SanitizeFilename(s string) string {
	s = invalidFilenameChars.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "_")
	s = truncateRunes(s, 80)
	if s == "" {
		s = "unknown"
	}
	return s
}

// truncateRunes caps s at n runes so truncation never splits a multi-byte
// character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
