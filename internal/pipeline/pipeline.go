// Package pipeline sequences the per-video steps: extract audio,
// transcribe, write the subtitle file, and optionally burn captions
// into a re-encoded copy of the video.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subburn/internal/logging"
	"subburn/internal/style"
	"subburn/internal/subtitle"
	"subburn/internal/transcribe"
	"subburn/internal/video"
)

// Stage is how far a video progressed through the pipeline.
type Stage string

const (
	StagePending         Stage = "pending"
	StageAudioExtracted  Stage = "audio extracted"
	StageTranscribed     Stage = "transcribed"
	StageSubtitleWritten Stage = "subtitle written"
	StageComposed        Stage = "composed"
	StageDone            Stage = "done"
)

// Extractor produces the normalized audio artifact for a video.
type Extractor interface {
	ExtractAudio(ctx context.Context, videoPath, outputPath string, opts video.ExtractAudioOptions) error
}

// Composer burns a subtitle file into a video.
type Composer interface {
	Burn(ctx context.Context, videoPath, subtitlePath string, st style.Config, outputPath string) error
}

// TranscribeFunc is the injected recognition capability: audio artifact
// in, ordered timed segments out. The configuration is fixed per run
// and owned by whoever builds the function.
type TranscribeFunc func(ctx context.Context, audioPath string) (*transcribe.Result, error)

// Options control artifact placement and whether composition happens.
type Options struct {
	OutputDir string
	OutputSRT bool // persist .srt next to composed output
	SRTOnly   bool // skip composition entirely
	Style     style.Config
	WorkDir   string // temp artifacts; defaults to os.TempDir()
}

// Result is the per-video outcome. Artifact paths are filled in as the
// corresponding stages complete; Err is non-nil when the video failed
// at Stage.
type Result struct {
	Video        string
	Stage        Stage
	AudioPath    string
	SubtitlePath string
	OutputPath   string
	Segments     int
	Err          error
}

// Failed reports whether the video's run ended in an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Pipeline runs the batch strictly sequentially; one video fully
// completes (or fails) before the next starts.
type Pipeline struct {
	extractor  Extractor
	transcribe TranscribeFunc
	composer   Composer
	opts       Options
	log        *logging.Logger
}

func New(
	extractor Extractor,
	transcribeFn TranscribeFunc,
	composer Composer,
	opts Options,
	log *logging.Logger,
) *Pipeline {
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Pipeline{
		extractor:  extractor,
		transcribe: transcribeFn,
		composer:   composer,
		opts:       opts,
		log:        log,
	}
}

// Run processes every video in order. A failure is recorded in that
// video's Result and the batch moves on; already-produced subtitle
// files are never discarded by a later failure.
func (p *Pipeline) Run(ctx context.Context, videos []string) []Result {
	results := make([]Result, 0, len(videos))
	for _, videoPath := range videos {
		results = append(results, p.processVideo(ctx, videoPath))
	}
	return results
}

func (p *Pipeline) processVideo(ctx context.Context, videoPath string) Result {
	res := Result{Video: videoPath, Stage: StagePending}
	base := BaseName(videoPath)

	if _, err := os.Stat(videoPath); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrInput, err)
		return res
	}

	// Pending -> AudioExtracted
	audioPath := filepath.Join(p.opts.WorkDir, base+".wav")
	p.log.Infof("Extracting audio from %s...", base)
	if err := p.extractor.ExtractAudio(ctx, videoPath, audioPath, video.DefaultExtractAudioOptions()); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrExtraction, err)
		return res
	}
	res.AudioPath = audioPath
	res.Stage = StageAudioExtracted

	// AudioExtracted -> Transcribed
	p.log.Infof("Generating subtitles for %s... This might take a while.", base)
	result, err := p.transcribe(ctx, audioPath)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrTranscription, err)
		return res
	}
	res.Segments = len(result.Segments)
	res.Stage = StageTranscribed

	// Transcribed -> SubtitleWritten
	srtPath := filepath.Join(p.subtitleDir(), base+".srt")
	if err := subtitle.WriteSRT(result.Segments, srtPath); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrSubtitleWrite, err)
		return res
	}
	res.SubtitlePath = srtPath
	res.Stage = StageSubtitleWritten

	if p.opts.SRTOnly {
		res.Stage = StageDone
		return res
	}

	// SubtitleWritten -> Composed
	outPath := filepath.Join(p.opts.OutputDir, base+".mp4")
	p.log.Infof("Adding subtitles to %s...", base)
	if err := p.composer.Burn(ctx, videoPath, srtPath, p.opts.Style, outPath); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrCompose, err)
		return res
	}
	res.OutputPath = outPath
	res.Stage = StageDone

	absOut, err := filepath.Abs(outPath)
	if err != nil {
		absOut = outPath
	}
	p.log.Infof("Saved subtitled video to %s.", absOut)
	return res
}

// subtitleDir is the explicit persisted-vs-ephemeral branch: subtitle
// files land in the output directory when the caller asked to keep them
// (or asked for subtitles only), otherwise in the temp work dir.
func (p *Pipeline) subtitleDir() string {
	if p.opts.OutputSRT || p.opts.SRTOnly {
		return p.opts.OutputDir
	}
	return p.opts.WorkDir
}

// BaseName is the stable key all derived artifact names hang off:
// the file name minus directory and extension.
func BaseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
