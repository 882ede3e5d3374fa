package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"subburn/internal/style"
	"subburn/internal/subtitle"
	"subburn/internal/transcribe"
	"subburn/internal/video"
)

type fakeExtractor struct {
	calls []string
	err   error
}

func (f *fakeExtractor) ExtractAudio(ctx context.Context, videoPath, outputPath string, opts video.ExtractAudioOptions) error {
	f.calls = append(f.calls, videoPath)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("wav"), 0644)
}

// failOn lets one video fail while the rest of the batch succeeds.
type selectiveExtractor struct {
	fakeExtractor
	failOn string
}

func (f *selectiveExtractor) ExtractAudio(ctx context.Context, videoPath, outputPath string, opts video.ExtractAudioOptions) error {
	f.calls = append(f.calls, videoPath)
	if BaseName(videoPath) == f.failOn {
		return errors.New("no audio stream")
	}
	return os.WriteFile(outputPath, []byte("wav"), 0644)
}

type fakeComposer struct {
	calls  []string
	styles []style.Config
	err    error
}

func (f *fakeComposer) Burn(ctx context.Context, videoPath, subtitlePath string, st style.Config, outputPath string) error {
	f.calls = append(f.calls, videoPath)
	f.styles = append(f.styles, st)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("mp4"), 0644)
}

func fixedSegments() []subtitle.Segment {
	return []subtitle.Segment{
		{StartTime: 0, EndTime: 2 * time.Second, Text: "Hello there."},
		{StartTime: 2 * time.Second, EndTime: 4 * time.Second, Text: "General remarks."},
	}
}

func okTranscribe(ctx context.Context, audioPath string) (*transcribe.Result, error) {
	return &transcribe.Result{Segments: fixedSegments()}, nil
}

func makeVideos(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("video"), 0644); err != nil {
			t.Fatalf("write video fixture: %v", err)
		}
		paths = append(paths, p)
	}
	return paths
}

func newTestPipeline(t *testing.T, ext Extractor, comp Composer, opts Options) *Pipeline {
	t.Helper()
	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	if opts.WorkDir == "" {
		opts.WorkDir = t.TempDir()
	}
	return New(ext, okTranscribe, comp, opts, nil)
}

func TestRunEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	videos := makeVideos(t, inputDir, "talk.mp4", "lecture.mkv")

	ext := &fakeExtractor{}
	comp := &fakeComposer{}
	st := style.New("blue", "Arial", 24, 3)
	outDir := t.TempDir()
	workDir := t.TempDir()

	p := newTestPipeline(t, ext, comp, Options{
		OutputDir: outDir,
		WorkDir:   workDir,
		Style:     st,
	})

	results := p.Run(context.Background(), videos)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	for i, res := range results {
		if res.Failed() {
			t.Fatalf("result %d failed: %v", i, res.Err)
		}
		if res.Stage != StageDone {
			t.Errorf("result %d: stage = %q, want done", i, res.Stage)
		}
		if res.Segments != 2 {
			t.Errorf("result %d: segments = %d, want 2", i, res.Segments)
		}
	}

	// artifact names derive from the video base name
	if results[0].AudioPath != filepath.Join(workDir, "talk.wav") {
		t.Errorf("audio path = %q", results[0].AudioPath)
	}
	if results[0].OutputPath != filepath.Join(outDir, "talk.mp4") {
		t.Errorf("output path = %q", results[0].OutputPath)
	}
	if results[1].OutputPath != filepath.Join(outDir, "lecture.mp4") {
		t.Errorf("output path = %q", results[1].OutputPath)
	}

	// subtitles were ephemeral: written to the work dir, not the output dir
	if results[0].SubtitlePath != filepath.Join(workDir, "talk.srt") {
		t.Errorf("subtitle path = %q", results[0].SubtitlePath)
	}

	// composer received the style untouched
	if len(comp.styles) != 2 || comp.styles[0] != st {
		t.Errorf("composer styles = %+v", comp.styles)
	}

	// written SRT parses back with the same content
	sub, err := subtitle.ParseSRT(results[0].SubtitlePath)
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(sub.Entries) != 2 || sub.Entries[0].Text != "Hello there." {
		t.Errorf("unexpected SRT contents: %+v", sub.Entries)
	}
}

func TestRunSRTOnlySkipsComposition(t *testing.T) {
	inputDir := t.TempDir()
	videos := makeVideos(t, inputDir, "a.mp4", "b.mp4")

	ext := &fakeExtractor{}
	comp := &fakeComposer{}
	outDir := t.TempDir()

	p := newTestPipeline(t, ext, comp, Options{
		OutputDir: outDir,
		SRTOnly:   true,
	})

	results := p.Run(context.Background(), videos)

	if len(comp.calls) != 0 {
		t.Errorf("composer called %d times in srt-only mode", len(comp.calls))
	}

	for i, res := range results {
		if res.Failed() {
			t.Fatalf("result %d failed: %v", i, res.Err)
		}
		if res.OutputPath != "" {
			t.Errorf("result %d: composed output produced in srt-only mode", i)
		}
		// exactly one subtitle file per video, persisted in the output dir
		want := filepath.Join(outDir, BaseName(videos[i])+".srt")
		if res.SubtitlePath != want {
			t.Errorf("result %d: subtitle path = %q, want %q", i, res.SubtitlePath, want)
		}
		if _, err := os.Stat(res.SubtitlePath); err != nil {
			t.Errorf("result %d: subtitle file missing: %v", i, err)
		}
	}
}

func TestRunOutputSRTPersistsSubtitles(t *testing.T) {
	inputDir := t.TempDir()
	videos := makeVideos(t, inputDir, "clip.mp4")

	comp := &fakeComposer{}
	outDir := t.TempDir()

	p := newTestPipeline(t, &fakeExtractor{}, comp, Options{
		OutputDir: outDir,
		OutputSRT: true,
	})

	results := p.Run(context.Background(), videos)

	if results[0].SubtitlePath != filepath.Join(outDir, "clip.srt") {
		t.Errorf("subtitle path = %q, want it in the output dir", results[0].SubtitlePath)
	}
	if len(comp.calls) != 1 {
		t.Errorf("composer calls = %d, want 1", len(comp.calls))
	}
}

func TestRunIsolatesPerVideoFailures(t *testing.T) {
	inputDir := t.TempDir()
	videos := makeVideos(t, inputDir, "silent.mp4", "normal.mp4")

	ext := &selectiveExtractor{failOn: "silent"}
	comp := &fakeComposer{}

	p := newTestPipeline(t, ext, comp, Options{})
	results := p.Run(context.Background(), videos)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if !results[0].Failed() {
		t.Fatal("expected first video to fail")
	}
	if !errors.Is(results[0].Err, ErrExtraction) {
		t.Errorf("first video error = %v, want ErrExtraction", results[0].Err)
	}
	if results[0].Stage != StagePending {
		t.Errorf("first video stage = %q, want pending", results[0].Stage)
	}

	// the second video is still fully processed
	if results[1].Failed() {
		t.Fatalf("second video failed: %v", results[1].Err)
	}
	if results[1].Stage != StageDone {
		t.Errorf("second video stage = %q, want done", results[1].Stage)
	}
	if len(ext.calls) != 2 {
		t.Errorf("extractor calls = %d, want 2", len(ext.calls))
	}
}

func TestRunComposeFailureKeepsSubtitle(t *testing.T) {
	inputDir := t.TempDir()
	videos := makeVideos(t, inputDir, "clip.mp4")

	comp := &fakeComposer{err: errors.New("unsupported codec")}

	p := newTestPipeline(t, &fakeExtractor{}, comp, Options{OutputSRT: true})
	results := p.Run(context.Background(), videos)

	res := results[0]
	if !errors.Is(res.Err, ErrCompose) {
		t.Errorf("error = %v, want ErrCompose", res.Err)
	}
	if res.Stage != StageSubtitleWritten {
		t.Errorf("stage = %q, want subtitle written", res.Stage)
	}

	// the subtitle produced before the failure is not discarded
	if res.SubtitlePath == "" {
		t.Fatal("subtitle path not recorded")
	}
	if _, err := os.Stat(res.SubtitlePath); err != nil {
		t.Errorf("subtitle file missing after compose failure: %v", err)
	}
}

func TestRunTranscriptionFailure(t *testing.T) {
	inputDir := t.TempDir()
	videos := makeVideos(t, inputDir, "clip.mp4")

	failing := func(ctx context.Context, audioPath string) (*transcribe.Result, error) {
		return nil, fmt.Errorf("engine exploded")
	}
	p := New(&fakeExtractor{}, failing, &fakeComposer{}, Options{
		OutputDir: t.TempDir(),
		WorkDir:   t.TempDir(),
	}, nil)

	results := p.Run(context.Background(), videos)
	res := results[0]
	if !errors.Is(res.Err, ErrTranscription) {
		t.Errorf("error = %v, want ErrTranscription", res.Err)
	}
	if res.Stage != StageAudioExtracted {
		t.Errorf("stage = %q, want audio extracted", res.Stage)
	}
}

func TestRunMissingInput(t *testing.T) {
	p := newTestPipeline(t, &fakeExtractor{}, &fakeComposer{}, Options{})
	results := p.Run(context.Background(), []string{"/no/such/video.mp4"})

	if !errors.Is(results[0].Err, ErrInput) {
		t.Errorf("error = %v, want ErrInput", results[0].Err)
	}
}

func TestRunDeterministicArtifactNaming(t *testing.T) {
	inputDir := t.TempDir()
	videos := makeVideos(t, inputDir, "talk.mp4")

	workDir := t.TempDir()
	p := newTestPipeline(t, &fakeExtractor{}, &fakeComposer{}, Options{
		WorkDir: workDir,
		SRTOnly: true,
	})

	first := p.Run(context.Background(), videos)
	second := p.Run(context.Background(), videos)

	// re-running overwrites rather than accumulates
	if first[0].AudioPath != second[0].AudioPath {
		t.Errorf("audio paths differ across runs: %q vs %q", first[0].AudioPath, second[0].AudioPath)
	}
	if first[0].SubtitlePath != second[0].SubtitlePath {
		t.Errorf("subtitle paths differ across runs: %q vs %q", first[0].SubtitlePath, second[0].SubtitlePath)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/videos/talk.mp4", "talk"},
		{"talk.mp4", "talk"},
		{"dir/nested/clip.webm", "clip"},
		{"noext", "noext"},
		{"weird.name.mkv", "weird.name"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := BaseName(tt.path); got != tt.want {
				t.Errorf("BaseName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
