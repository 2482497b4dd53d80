// Package assemble renders the final compilation by shelling out to ffmpeg.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"clipcomp/internal/domain/consts"
	"clipcomp/internal/models"
	"clipcomp/internal/utils/logging"
)

// ErrAssembly indicates rendering failed. Always fatal for the run.
var ErrAssembly = errors.New("video assembly failed")

// Assembler builds bumpers and concatenates clip files into one rendered
// compilation via ffmpeg/ffprobe.
type Assembler struct {
	FFmpegPath  string
	FFprobePath string

	Width             int
	Height            int
	Transitions       bool
	TransitionSeconds float64
}

// New returns an assembler configured from the video settings.
func New(v *models.VideoSettings) *Assembler {
	return &Assembler{
		FFmpegPath:        "ffmpeg",
		FFprobePath:       "ffprobe",
		Width:             v.Width,
		Height:            v.Height,
		Transitions:       v.TransitionsEnabled,
		TransitionSeconds: v.TransitionSeconds,
	}
}

func (a *Assembler) opts() buildOpts {
	return buildOpts{
		width:             a.Width,
		height:            a.Height,
		transitions:       a.Transitions,
		transitionSeconds: a.TransitionSeconds,
	}
}

// Assemble scales and concatenates the given media files, in order, into
// outPath, then probes the result. Any rendering failure is fatal.
func (a *Assembler) Assemble(ctx context.Context, segments []string, outPath string) (*models.RenderedVideo, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no segments to assemble", ErrAssembly)
	}

	probed := make([]Segment, 0, len(segments))
	for _, path := range segments {
		dur, err := a.ProbeDuration(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: probing %q: %v", ErrAssembly, filepath.Base(path), err)
		}
		if dur <= 0 {
			return nil, fmt.Errorf("%w: segment %q has invalid duration %.2f", ErrAssembly, filepath.Base(path), dur)
		}
		probed = append(probed, Segment{Path: path, Duration: dur})
	}

	args, err := buildAssembleArgs(probed, a.opts(), outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}

	planned := expectedDuration(probed, a.opts())
	logging.I("Rendering compilation of %d segment(s), planned duration %.1fs", len(probed), planned)

	if err := a.runFFmpeg(ctx, args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}

	actual, err := a.ProbeDuration(ctx, outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: probing output: %v", ErrAssembly, err)
	}

	logging.S("Compilation rendered: %s (%.1fs)", outPath, actual)
	return &models.RenderedVideo{Path: outPath, Duration: actual}, nil
}

// BuildBumper renders a text-overlay intro segment into dir and returns its
// path.
func (a *Assembler) BuildBumper(ctx context.Context, dir, text string, seconds float64) (string, error) {
	if seconds <= 0 {
		return "", fmt.Errorf("%w: bumper duration must be positive", ErrAssembly)
	}

	outPath := filepath.Join(dir, consts.BumperFilename)

	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=%dx%d:d=%.3f:r=30", a.Width, a.Height, seconds),
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=44100:d=%.3f", seconds),
		"-vf", fmt.Sprintf("drawtext=text='%s':fontcolor=white:fontsize=70:x=(w-text_w)/2:y=(h-text_h)/2", escapeDrawtext(text)),
		"-t", fmt.Sprintf("%.3f", seconds),
		"-c:v", consts.VideoCodec,
		"-preset", consts.EncodePreset,
		"-crf", consts.EncodeCRF,
		"-c:a", consts.AudioCodec,
		"-shortest",
		"-y", outPath,
	}

	logging.I("Creating title bumper (%.1fs): %q", seconds, text)

	if err := a.runFFmpeg(ctx, args); err != nil {
		return "", fmt.Errorf("%w: bumper render: %v", ErrAssembly, err)
	}
	return outPath, nil
}

// drawtextEscaper escapes the characters the drawtext filter treats specially.
var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`%`, `\%`,
)

func escapeDrawtext(s string) string {
	return drawtextEscaper.Replace(s)
}
