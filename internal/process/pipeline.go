// Package process sequences a single compilation run: counter read, clip
// fetch, download, assembly, metadata, publish, counter increment, cleanup.
package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clipcomp/internal/domain/consts"
	"clipcomp/internal/metadata"
	"clipcomp/internal/models"
	"clipcomp/internal/twitch"
	"clipcomp/internal/utils/logging"

	"github.com/google/uuid"
)

// State identifies a step of the run state machine. Transitions are strictly
// forward; StateCleanedUp and StateFailed are the only terminal states.
type State string

const (
	StateInit               State = "Init"
	StateCounterRead        State = "CounterRead"
	StateClipsFetched       State = "ClipsFetched"
	StateClipsDownloaded    State = "ClipsDownloaded"
	StateVideoAssembled     State = "VideoAssembled"
	StateMetadataBuilt      State = "MetadataBuilt"
	StatePublished          State = "Published"
	StateCounterIncremented State = "CounterIncremented"
	StateCleanedUp          State = "CleanedUp"
	StateFailed             State = "Failed"
)

// ClipSource fetches ranked clips from the streaming platform.
type ClipSource interface {
	Authenticate(ctx context.Context) error
	TopClips(ctx context.Context, q models.ClipQuery) ([]*models.Clip, error)
}

// Downloader fetches clip media files into a scratch directory.
type Downloader interface {
	DownloadAll(ctx context.Context, dir string, clips []*models.Clip) ([]*models.DownloadedClip, error)
}

// Assembler renders bumpers and the final compilation.
type Assembler interface {
	BuildBumper(ctx context.Context, dir, text string, seconds float64) (string, error)
	Assemble(ctx context.Context, segments []string, outPath string) (*models.RenderedVideo, error)
}

// Publisher uploads the rendered compilation.
type Publisher interface {
	Authenticate(ctx context.Context) error
	Upload(ctx context.Context, video *models.RenderedVideo, meta *models.UploadMetadata) (string, error)
}

// Counter is the persisted compilation number.
type Counter interface {
	Read() (int, error)
	Increment() (int, error)
}

// RunRecorder persists publish history. Optional.
type RunRecorder interface {
	RecordRun(*models.RunRecord) error
}

// Pipeline owns one sequential run. Not safe for reuse; build a fresh one per
// invocation.
type Pipeline struct {
	Settings   *models.Settings
	Source     ClipSource
	Downloader Downloader
	Assembler  Assembler
	Publisher  Publisher
	Counter    Counter
	History    RunRecorder

	runID     string
	state     State
	scratch   string
	rendered  *models.RenderedVideo
	published bool
}

// New returns a pipeline for a single run.
func New(s *models.Settings, src ClipSource, dl Downloader, asm Assembler, pub Publisher, counter Counter, history RunRecorder) *Pipeline {
	return &Pipeline{
		Settings:   s,
		Source:     src,
		Downloader: dl,
		Assembler:  asm,
		Publisher:  pub,
		Counter:    counter,
		History:    history,
		runID:      uuid.NewString(),
		state:      StateInit,
	}
}

// State returns the current run state.
func (p *Pipeline) State() State { return p.state }

// RunID returns this run's unique identifier.
func (p *Pipeline) RunID() string { return p.runID }

func (p *Pipeline) advance(s State) {
	p.state = s
	logging.D(1, "Run %s entered state %s", p.runID, s)
}

// fail moves the run to its failed terminal state, running scratch cleanup
// but skipping the counter increment.
func (p *Pipeline) fail(err error) error {
	logging.E("Run %s failed in state %s: %v", p.runID, p.state, err)
	p.state = StateFailed
	p.cleanup()
	return err
}

// cleanup removes the scratch directory, and the rendered file unless it was
// published. Safe to call more than once.
func (p *Pipeline) cleanup() {
	if p.scratch != "" {
		if err := os.RemoveAll(p.scratch); err != nil {
			logging.E("Failed to remove scratch directory %q: %v", p.scratch, err)
		} else {
			logging.D(1, "Removed scratch directory %s", p.scratch)
		}
		p.scratch = ""
	}
	if p.rendered != nil && !p.published {
		if err := os.Remove(p.rendered.Path); err != nil && !os.IsNotExist(err) {
			logging.E("Failed to remove rendered file %q: %v", p.rendered.Path, err)
		}
		p.rendered = nil
	}
}

// Run executes the full pipeline once. On success the counter has advanced by
// exactly one and scratch files are gone; on any failure the counter is
// untouched and scratch files are gone.
func (p *Pipeline) Run(ctx context.Context) error {
	logging.I("Starting compilation run %s", p.runID)

	current, err := p.Counter.Read()
	if err != nil {
		return p.fail(fmt.Errorf("reading compilation counter: %w", err))
	}
	number := current + 1
	p.advance(StateCounterRead)
	logging.I("Building compilation #%d", number)

	if err := p.Source.Authenticate(ctx); err != nil {
		return p.fail(err)
	}

	clips, err := p.Source.TopClips(ctx, models.ClipQuery{
		GameID:      p.Settings.Twitch.GameID,
		Language:    p.Settings.Twitch.ClipLanguage,
		PeriodHours: p.Settings.Twitch.PeriodHours,
		Limit:       consts.MaxClipsPerQuery,
	})
	if err != nil {
		return p.fail(err)
	}

	// The bumper occupies part of the target runtime, so clips only fill the
	// remainder.
	target := p.Settings.Video.TargetDuration
	if p.Settings.Video.BumperEnabled {
		target -= time.Duration(p.Settings.Video.BumperSeconds * float64(time.Second))
	}

	selected := twitch.SelectByDuration(clips, target, p.Settings.Video.TransitionOverlap())
	if len(selected) == 0 {
		return p.fail(twitch.ErrNoClips)
	}
	p.advance(StateClipsFetched)

	p.scratch = filepath.Join(p.Settings.Video.ScratchDir, consts.ScratchDirPrefix+p.runID)
	if err := os.MkdirAll(p.scratch, 0755); err != nil {
		return p.fail(fmt.Errorf("creating scratch directory: %w", err))
	}

	downloaded, err := p.Downloader.DownloadAll(ctx, p.scratch, selected)
	if err != nil {
		return p.fail(err)
	}
	p.advance(StateClipsDownloaded)

	segments := make([]string, 0, len(downloaded)+1)
	if p.Settings.Video.BumperEnabled {
		text := metadata.BumperText(p.Settings, number)
		bumper, err := p.Assembler.BuildBumper(ctx, p.scratch, text, p.Settings.Video.BumperSeconds)
		if err != nil {
			return p.fail(err)
		}
		segments = append(segments, bumper)
	}

	clipsInOrder := make([]*models.Clip, 0, len(downloaded))
	for _, d := range downloaded {
		segments = append(segments, d.Path)
		clipsInOrder = append(clipsInOrder, d.Clip)
	}

	if err := os.MkdirAll(p.Settings.Video.OutputDir, 0755); err != nil {
		return p.fail(fmt.Errorf("creating output directory: %w", err))
	}
	outPath := filepath.Join(p.Settings.Video.OutputDir, fmt.Sprintf(consts.CompilationPattern, number))

	rendered, err := p.Assembler.Assemble(ctx, segments, outPath)
	if err != nil {
		// ffmpeg may have already created a partial output file.
		if rmErr := os.Remove(outPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.E("Failed to remove partial output %q: %v", outPath, rmErr)
		}
		return p.fail(err)
	}
	p.rendered = rendered
	p.advance(StateVideoAssembled)

	meta := metadata.Generate(p.Settings, clipsInOrder, number)
	p.advance(StateMetadataBuilt)

	if err := p.Publisher.Authenticate(ctx); err != nil {
		return p.fail(err)
	}

	videoID, err := p.Publisher.Upload(ctx, rendered, meta)
	if err != nil {
		return p.fail(err)
	}
	p.published = true
	p.advance(StatePublished)

	newNumber, err := p.Counter.Increment()
	if err != nil {
		// The video is live but uncounted; the operator must correct the
		// counter file before the next run.
		return p.fail(fmt.Errorf("published video %s but failed to persist counter: %w", videoID, err))
	}
	p.advance(StateCounterIncremented)

	if p.History != nil {
		rec := &models.RunRecord{
			RunID:             p.runID,
			CompilationNumber: newNumber,
			VideoID:           videoID,
			ClipCount:         len(clipsInOrder),
			Duration:          rendered.Duration,
			PublishedAt:       time.Now(),
		}
		if err := p.History.RecordRun(rec); err != nil {
			logging.E("Failed to record run history: %v", err)
		}
	}

	p.cleanup()
	p.advance(StateCleanedUp)

	logging.S("Run %s complete: compilation #%d published as %s", p.runID, newNumber, videoID)
	return nil
}
