package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"subburn/internal/audio"
	"subburn/internal/subtitle"
)

// WhisperTranscriber runs speech recognition locally via whisper.cpp.
// The model is loaded once and reused across the whole batch.
type WhisperTranscriber struct {
	model whisper.Model
	opts  Options
}

// NewWhisperTranscriber loads the ggml model at modelPath. The caller
// must Close when the batch is done.
func NewWhisperTranscriber(modelPath string, opts Options) (*WhisperTranscriber, error) {
	if modelPath == "" {
		return nil, errors.New("empty model path")
	}
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %q: %w", modelPath, err)
	}
	return &WhisperTranscriber{model: model, opts: opts}, nil
}

// Close releases the whisper model.
func (t *WhisperTranscriber) Close() error {
	if t.model == nil {
		return nil
	}
	return t.model.Close()
}

// Transcribe decodes the audio artifact to samples and runs recognition.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if t.model == nil {
		return nil, errors.New("nil model")
	}

	samples, err := audio.ReadWAVSamples(audioPath)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.New("no audio samples provided")
	}

	wctx, err := t.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("new whisper context: %w", err)
	}

	lang := t.opts.Language
	if lang == "" {
		lang = "auto"
	}
	if err := wctx.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	wctx.SetTranslate(t.opts.Task == TaskTranslate)

	threads := t.opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	wctx.SetThreads(uint(threads))

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper process: %w", err)
	}

	var segments []subtitle.Segment
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		seg, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("next segment: %w", err)
		}
		segments = append(segments, subtitle.Segment{
			StartTime: seg.Start,
			EndTime:   seg.End,
			Text:      seg.Text,
		})
	}

	detected := wctx.DetectedLanguage()
	if detected == "" {
		detected = wctx.Language()
	}

	var duration time.Duration
	if n := len(segments); n > 0 {
		duration = segments[n-1].EndTime
	}

	return &Result{
		Segments: segments,
		Language: detected,
		Duration: duration,
	}, nil
}
