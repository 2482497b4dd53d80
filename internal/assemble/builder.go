package assemble

import (
	"fmt"
	"strings"

	"clipcomp/internal/domain/consts"
)

// Segment is one input to the final concatenation: a media file plus its
// probed duration in seconds.
type Segment struct {
	Path     string
	Duration float64
}

// buildOpts carries the render parameters into argument construction.
type buildOpts struct {
	width             int
	height            int
	transitions       bool
	transitionSeconds float64
}

// buildAssembleArgs constructs the full ffmpeg argument list that scales every
// segment to the output resolution and concatenates them, with chained
// crossfades when transitions are enabled. Kept free of exec so the
// filtergraph math is testable without running ffmpeg.
func buildAssembleArgs(segments []Segment, opts buildOpts, outPath string) ([]string, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("no segments to assemble")
	}

	args := make([]string, 0, 2*len(segments)+16)
	for _, seg := range segments {
		args = append(args, "-i", seg.Path)
	}

	var graph strings.Builder
	for i := range segments {
		// Scale into the target frame, pad to center, normalize SAR, frame
		// rate and pixel format so mixed-source concat renders cleanly.
		fmt.Fprintf(&graph,
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=black,setsar=1,fps=30,format=yuv420p[v%d];",
			i, opts.width, opts.height, opts.width, opts.height, i)
		fmt.Fprintf(&graph,
			"[%d:a]aformat=sample_rates=44100:channel_layouts=stereo[a%d];",
			i, i)
	}

	var vOut, aOut string
	switch {
	case len(segments) == 1:
		vOut, aOut = "[v0]", "[a0]"
		// Trim the trailing semicolon left by the per-input chains.
		g := strings.TrimSuffix(graph.String(), ";")
		graph.Reset()
		graph.WriteString(g)

	case opts.transitions:
		// Chained xfade: each join starts transitionSeconds before the end of
		// the video built so far.
		t := opts.transitionSeconds
		offset := segments[0].Duration - t
		prevV, prevA := "[v0]", "[a0]"
		for i := 1; i < len(segments); i++ {
			curV := fmt.Sprintf("[vx%d]", i)
			curA := fmt.Sprintf("[ax%d]", i)
			fmt.Fprintf(&graph, "%s[v%d]xfade=transition=fade:duration=%.3f:offset=%.3f%s;",
				prevV, i, t, offset, curV)
			fmt.Fprintf(&graph, "%s[a%d]acrossfade=d=%.3f%s;", prevA, i, t, curA)
			offset += segments[i].Duration - t
			prevV, prevA = curV, curA
		}
		vOut, aOut = prevV, prevA
		g := strings.TrimSuffix(graph.String(), ";")
		graph.Reset()
		graph.WriteString(g)

	default:
		for i := range segments {
			fmt.Fprintf(&graph, "[v%d][a%d]", i, i)
		}
		fmt.Fprintf(&graph, "concat=n=%d:v=1:a=1[vout][aout]", len(segments))
		vOut, aOut = "[vout]", "[aout]"
	}

	args = append(args,
		"-filter_complex", graph.String(),
		"-map", vOut,
		"-map", aOut,
		"-c:v", consts.VideoCodec,
		"-preset", consts.EncodePreset,
		"-crf", consts.EncodeCRF,
		"-c:a", consts.AudioCodec,
		"-movflags", "+faststart",
		"-y", outPath,
	)
	return args, nil
}

// expectedDuration returns the planned output duration: the segment sum minus
// one crossfade overlap per join when transitions are enabled.
func expectedDuration(segments []Segment, opts buildOpts) float64 {
	var total float64
	for _, seg := range segments {
		total += seg.Duration
	}
	if opts.transitions && len(segments) > 1 {
		total -= opts.transitionSeconds * float64(len(segments)-1)
	}
	return total
}
