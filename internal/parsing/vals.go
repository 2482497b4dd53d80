// Package parsing converts loosely formatted user and API values into typed ones.
package parsing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// resolutions maps a resolution name to pixel dimensions.
var resolutions = map[string][2]int{
	"1080p": {1920, 1080},
	"720p":  {1280, 720},
	"480p":  {854, 480},
	"360p":  {640, 360},
}

// ParsePeriod converts a lookback period such as "last_24_hours" (or a bare
// hour count like "24") into hours.
func ParsePeriod(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty clip period")
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("clip period must be positive, got %d", n)
		}
		return n, nil
	}

	parts := strings.Split(s, "_")
	if len(parts) != 3 || parts[0] != "last" || parts[2] != "hours" {
		return 0, fmt.Errorf("invalid clip period format %q (want e.g. \"last_24_hours\")", s)
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid hour count in clip period %q", s)
	}
	return n, nil
}

// ParseResolution maps a resolution name to pixel dimensions.
func ParseResolution(s string) (width, height int, err error) {
	dims, ok := resolutions[strings.TrimSpace(strings.ToLower(s))]
	if !ok {
		return 0, 0, fmt.Errorf("unknown resolution %q (want one of 360p, 480p, 720p, 1080p)", s)
	}
	return dims[0], dims[1], nil
}

// ParseClipTime parses a clip timestamp in whatever format the API returns it.
func ParseClipTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	return dateparse.ParseAny(s)
}
