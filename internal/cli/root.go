package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/logging"
	"subburn/internal/style"
)

var (
	verbose bool
	cfgFile string
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subburn [flags] video...",
	Short: "Generate subtitles for videos and burn them in",
	Long: `Subburn transcribes the audio of one or more video files with a local
Whisper model and burns the resulting captions into a re-encoded copy
of each video, keeping the original audio track.

Examples:
  subburn talk.mp4
  subburn talk.mp4 lecture.mkv --model base.en -o out/
  subburn talk.mp4 --srt-only --output-dir subs/
  subburn talk.mp4 --color yellow --font-size 28 --border-style 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoot,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "Config file (default ~/.config/subburn/config.yaml)")

	rootCmd.Flags().
		StringP("model", "m", "small", "Whisper model to use (see 'subburn models list')")
	rootCmd.Flags().
		String("model-dir", "", "Directory holding downloaded models")
	rootCmd.Flags().
		String("provider", "whisper", "Transcription provider (whisper, openai)")
	rootCmd.Flags().
		Int("threads", 0, "Recognition threads (0 = all CPUs)")
	rootCmd.Flags().
		StringP("output-dir", "o", ".", "Directory to save the outputs")
	rootCmd.Flags().
		Bool("output-srt", false, "Keep the .srt file alongside the composed video")
	rootCmd.Flags().
		Bool("srt-only", false, "Only generate .srt files, skip composition")
	rootCmd.Flags().
		String("task", "transcribe", "transcribe or translate (X->English)")
	rootCmd.Flags().
		StringP("language", "l", "auto", "Spoken language code, or auto to detect")
	rootCmd.Flags().
		String("color", "green", "Subtitle color: "+strings.Join(style.ColorNames(), ", "))
	rootCmd.Flags().
		Int("border-style", 3, "Subtitle border style (1 outline, 3 box)")
	rootCmd.Flags().
		String("font-name", "Arial", "Subtitle font")
	rootCmd.Flags().
		Int("font-size", 24, "Subtitle font size")
}
