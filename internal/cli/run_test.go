package cli

import (
	"errors"
	"strings"
	"testing"

	"subburn/internal/config"
	"subburn/internal/pipeline"
)

func TestApplyFlagsOverridesConfig(t *testing.T) {
	if err := rootCmd.ParseFlags([]string{
		"--model", "base.en",
		"--srt-only",
		"--language", "de",
		"--color", "yellow",
		"--font-size", "30",
	}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := config.Default()
	applyFlags(rootCmd, cfg)

	if cfg.Model != "base.en" {
		t.Errorf("model = %q, want base.en", cfg.Model)
	}
	if !cfg.SRTOnly {
		t.Error("srt_only flag not applied")
	}
	if cfg.Language != "de" {
		t.Errorf("language = %q, want de", cfg.Language)
	}
	if cfg.Style.Color != "yellow" {
		t.Errorf("color = %q, want yellow", cfg.Style.Color)
	}
	if cfg.Style.FontSize != 30 {
		t.Errorf("font_size = %d, want 30", cfg.Style.FontSize)
	}

	// flags the user didn't touch keep config values
	if cfg.Task != "transcribe" {
		t.Errorf("task = %q, want transcribe default", cfg.Task)
	}
	if cfg.Style.FontName != "Arial" {
		t.Errorf("font_name = %q, want Arial default", cfg.Style.FontName)
	}
}

func TestRenderSummary(t *testing.T) {
	results := []pipeline.Result{
		{
			Video:        "/in/talk.mp4",
			Stage:        pipeline.StageDone,
			Segments:     12,
			SubtitlePath: "/tmp/talk.srt",
			OutputPath:   "/out/talk.mp4",
		},
		{
			Video: "/in/silent.mp4",
			Stage: pipeline.StagePending,
			Err:   errors.New("no audio stream"),
		},
	}

	out := renderSummary(results)

	for _, want := range []string{"talk", "silent", "/out/talk.mp4", "no audio stream", "failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
