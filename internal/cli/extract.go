package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract a video's audio track as WAV",
	Long: `Extract the audio track from a video file and save it as 16-bit PCM WAV.

By default the output uses the recognition profile (mono, 16 kHz), the
same artifact the main pipeline feeds to the transcriber.

Examples:
  subburn extract video.mp4
  subburn extract video.mp4 -o audio.wav
  subburn extract video.mp4 --sample-rate 44100 --channels 2`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		StringP("output", "o", "", "Output file path")
	extractCmd.Flags().
		IntP("sample-rate", "r", 16000, "Sample rate in Hz")
	extractCmd.Flags().
		IntP("channels", "c", 1, "Number of audio channels (1=mono, 2=stereo)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	sampleRate, _ := cmd.Flags().GetInt("sample-rate")
	channels, _ := cmd.Flags().GetInt("channels")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"
	}

	logger.Infow("Extracting audio",
		"video", videoPath,
		"output", outputPath,
		"sample_rate", sampleRate,
		"channels", channels,
	)

	processor := video.NewProcessor()
	opts := video.ExtractAudioOptions{
		SampleRate: sampleRate,
		Channels:   channels,
	}

	if err := processor.ExtractAudio(context.Background(), videoPath, outputPath, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Audio extracted successfully: %s\n", absOutput)

	return nil
}
