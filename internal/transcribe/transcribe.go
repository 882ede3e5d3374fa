package transcribe

import (
	"context"
	"fmt"
	"os"
	"time"

	"subburn/internal/subtitle"
)

// Task selects between plain speech recognition and X->English translation.
type Task string

const (
	TaskTranscribe Task = "transcribe"
	TaskTranslate  Task = "translate"
)

// ParseTask validates a task string.
func ParseTask(s string) (Task, error) {
	switch Task(s) {
	case TaskTranscribe, TaskTranslate:
		return Task(s), nil
	default:
		return "", fmt.Errorf("unsupported task %q: use transcribe or translate", s)
	}
}

// Result holds the ordered segments the recognition engine produced.
type Result struct {
	Segments []subtitle.Segment
	Language string
	Duration time.Duration
}

// Transcriber turns an audio artifact into ordered timed segments.
// Segment ordering is trusted as given; no post-processing happens here.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
	Close() error
}

// Provider names a transcription backend.
type Provider string

const (
	ProviderWhisper Provider = "whisper"
	ProviderOpenAI  Provider = "openai"
)

// Options is the immutable per-run transcription configuration.
type Options struct {
	Task     Task
	Language string // "auto" lets the engine detect
	Model    string
	ModelDir string // where local models live; empty means the default
	Threads  int    // whisper only; <=0 means all CPUs
}

// Factory creates a transcriber for the given provider. The whisper
// provider loads its model once here and holds it until Close.
func Factory(ctx context.Context, provider Provider, opts Options) (Transcriber, error) {
	switch provider {
	case ProviderWhisper:
		modelDir := opts.ModelDir
		if modelDir == "" {
			modelDir = DefaultModelDir()
		}
		modelPath, err := ResolveModelIn(opts.Model, modelDir)
		if err != nil {
			return nil, err
		}
		return NewWhisperTranscriber(modelPath, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(os.Getenv("OPENAI_API_KEY"), opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
