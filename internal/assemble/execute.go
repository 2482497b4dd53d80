package assemble

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"clipcomp/internal/utils/logging"
)

// runFFmpeg executes ffmpeg with the built argument list, keeping the stderr
// tail for error reporting.
func (a *Assembler) runFFmpeg(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, a.FFmpegPath, args...)

	logging.D(1, "Executing command: %v with args: %v", cmd.Path, cmd.Args)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", a.FFmpegPath, err, stderrTail(&stderr))
	}
	return nil
}

// ProbeDuration returns a media file's duration in seconds via ffprobe.
func (a *Assembler) ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	logging.D(2, "Executing command: %v with args: %v", cmd.Path, cmd.Args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("%s: %w: %s", a.FFprobePath, err, stderrTail(&stderr))
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable duration %q from ffprobe: %w", stdout.String(), err)
	}
	return dur, nil
}

// stderrTail returns the last few lines of a command's stderr output.
func stderrTail(buf *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, " | ")
}
