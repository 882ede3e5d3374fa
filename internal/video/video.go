// Package video drives the external media engine: decoding a video's
// audio track to a normalized WAV and burning rendered captions back
// into the picture stream.
package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "subburn/internal/ffmpeg"
	"subburn/internal/style"
)

// ExtractAudioOptions holds the audio profile for extraction. The
// pipeline always uses the whisper profile (mono, 16 kHz, 16-bit PCM);
// the standalone extract command may override rate and channels.
type ExtractAudioOptions struct {
	SampleRate int
	Channels   int
}

// DefaultExtractAudioOptions is the profile the recognition engine expects.
func DefaultExtractAudioOptions() ExtractAudioOptions {
	return ExtractAudioOptions{
		SampleRate: 16000,
		Channels:   1,
	}
}

// Processor implements audio extraction and caption burn-in with ffmpeg.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// ExtractAudio decodes the video's audio stream and writes it as
// 16-bit PCM WAV to outputPath, overwriting any existing file.
func (p *Processor) ExtractAudio(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractAudioOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	kwargs := ffmpeg.KwArgs{
		"vn":     "", // No video
		"acodec": "pcm_s16le",
		"ar":     opts.SampleRate,
		"ac":     opts.Channels,
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}

	return nil
}

// Burn renders the subtitle file into the picture stream using the
// given style and re-muxes the result with the source's original audio.
// outputPath is overwritten if present.
func (p *Processor) Burn(
	ctx context.Context,
	videoPath, subtitlePath string,
	st style.Config,
	outputPath string,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	input := ffmpeg.Input(videoPath)

	captioned := input.Video().Filter("subtitles", ffmpeg.Args{subtitlePath}, ffmpeg.KwArgs{
		"force_style": st.ForceStyle(),
	})

	// filtered picture + untouched source audio back into one container
	err = ffmpeg.Concat([]*ffmpeg.Stream{captioned, input.Audio()}, ffmpeg.KwArgs{
		"v": 1,
		"a": 1,
	}).
		Output(outputPath).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg caption burn failed: %w", err)
	}

	return nil
}
