package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"subburn/internal/transcribe"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage local Whisper models",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported models and whether they are downloaded",
	RunE:  runModelsList,
}

var modelsDownloadCmd = &cobra.Command{
	Use:   "download [model]",
	Short: "Download a Whisper model ahead of time",
	Long: `Download a ggml Whisper model into the model directory so the first
transcription run doesn't have to. The pipeline downloads missing
models automatically; this just front-loads the wait.`,
	Args: cobra.ExactArgs(1),
	RunE: runModelsDownload,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDownloadCmd)

	modelsCmd.PersistentFlags().
		String("model-dir", "", "Directory holding downloaded models")
}

func modelDirFlag(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("model-dir")
	if dir == "" {
		dir = transcribe.DefaultModelDir()
	}
	return dir
}

func runModelsList(cmd *cobra.Command, args []string) error {
	modelDir := modelDirFlag(cmd)

	fmt.Printf("Model directory: %s\n\n", modelDir)
	for _, name := range transcribe.AvailableModels() {
		status := ""
		path := filepath.Join(modelDir, transcribe.ModelFileName(name))
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			status = fmt.Sprintf("downloaded (%.0f MB)", float64(info.Size())/(1024*1024))
		}
		if transcribe.IsEnglishOnlyModel(name) {
			fmt.Printf("  %-10s english-only  %s\n", name, status)
		} else {
			fmt.Printf("  %-10s multilingual  %s\n", name, status)
		}
	}
	return nil
}

func runModelsDownload(cmd *cobra.Command, args []string) error {
	name := args[0]
	modelDir := modelDirFlag(cmd)

	if err := transcribe.DownloadModel(name, modelDir, os.Stdout); err != nil {
		return err
	}

	fmt.Printf("Model %s available in %s\n", name, modelDir)
	return nil
}
