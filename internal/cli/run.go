package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subburn/internal/config"
	"subburn/internal/pipeline"
	"subburn/internal/style"
	"subburn/internal/transcribe"
	"subburn/internal/video"
)

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, videoPath := range args {
		if _, err := os.Stat(videoPath); err != nil {
			return fmt.Errorf("video file not found: %s", videoPath)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	provider := transcribe.Provider(cfg.Provider)

	language := cfg.Language
	if provider == transcribe.ProviderWhisper {
		effective, overridden := transcribe.EffectiveLanguage(cfg.Model, cfg.Language)
		if overridden {
			logger.Warnf("%s is an English-only model, forcing English detection.", cfg.Model)
		}
		language = effective
	}

	task, err := transcribe.ParseTask(cfg.Task)
	if err != nil {
		return err
	}

	logger.Debugw("Resolved configuration",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"task", cfg.Task,
		"language", language,
		"output_dir", cfg.OutputDir,
		"output_srt", cfg.OutputSRT,
		"srt_only", cfg.SRTOnly,
	)

	transcriber, err := transcribe.Factory(ctx, provider, transcribe.Options{
		Task:     task,
		Language: language,
		Model:    cfg.Model,
		ModelDir: cfg.ModelDir,
		Threads:  cfg.Threads,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}
	defer transcriber.Close()

	st := style.New(cfg.Style.Color, cfg.Style.FontName, cfg.Style.FontSize, cfg.Style.BorderStyle)

	processor := video.NewProcessor()
	p := pipeline.New(processor, transcriber.Transcribe, processor, pipeline.Options{
		OutputDir: cfg.OutputDir,
		OutputSRT: cfg.OutputSRT,
		SRTOnly:   cfg.SRTOnly,
		Style:     st,
	}, logger)

	results := p.Run(ctx, args)

	fmt.Println(renderSummary(results))

	failures := 0
	for _, res := range results {
		if res.Failed() {
			failures++
			logger.Errorw("Video failed",
				"video", res.Video,
				"stage", string(res.Stage),
				"error", res.Err,
			)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d videos failed", failures, len(results))
	}
	return nil
}

// resolveConfig layers defaults, the optional YAML file, then any flags
// the user actually set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	path := cfgFile
	if path == "" {
		if def := config.DefaultConfigPath(); def != "" {
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("model-dir") {
		cfg.ModelDir, _ = flags.GetString("model-dir")
	}
	if flags.Changed("provider") {
		cfg.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("threads") {
		cfg.Threads, _ = flags.GetInt("threads")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("output-srt") {
		cfg.OutputSRT, _ = flags.GetBool("output-srt")
	}
	if flags.Changed("srt-only") {
		cfg.SRTOnly, _ = flags.GetBool("srt-only")
	}
	if flags.Changed("task") {
		cfg.Task, _ = flags.GetString("task")
	}
	if flags.Changed("language") {
		cfg.Language, _ = flags.GetString("language")
	}
	if flags.Changed("color") {
		cfg.Style.Color, _ = flags.GetString("color")
	}
	if flags.Changed("border-style") {
		cfg.Style.BorderStyle, _ = flags.GetInt("border-style")
	}
	if flags.Changed("font-name") {
		cfg.Style.FontName, _ = flags.GetString("font-name")
	}
	if flags.Changed("font-size") {
		cfg.Style.FontSize, _ = flags.GetInt("font-size")
	}

	if cfg.ModelDir == "" {
		cfg.ModelDir = transcribe.DefaultModelDir()
	}
}
