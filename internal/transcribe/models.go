package transcribe

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const modelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// modelNames are the recognition profiles the local engine supports,
// smallest first. Names ending in .en are English-only profiles.
var modelNames = []string{
	"tiny.en", "tiny",
	"base.en", "base",
	"small.en", "small",
	"medium.en", "medium",
	"large-v2", "large-v3",
}

// AvailableModels lists the supported model identifiers.
func AvailableModels() []string {
	out := make([]string, len(modelNames))
	copy(out, modelNames)
	return out
}

// IsKnownModel reports whether name is in the supported set.
func IsKnownModel(name string) bool {
	for _, m := range modelNames {
		if m == name {
			return true
		}
	}
	return false
}

// IsEnglishOnlyModel reports whether the profile only recognizes English.
func IsEnglishOnlyModel(name string) bool {
	return strings.HasSuffix(name, ".en")
}

// EffectiveLanguage applies the English-only override: such profiles
// always recognize English no matter what language was requested. The
// second return value tells the caller to report the override.
func EffectiveLanguage(model, requested string) (lang string, overridden bool) {
	if IsEnglishOnlyModel(model) {
		return "en", requested != "en"
	}
	return requested, false
}

// ModelFileName is the ggml file name for a model identifier.
func ModelFileName(name string) string {
	return "ggml-" + name + ".bin"
}

// ModelURL is the HuggingFace download URL for a model identifier.
func ModelURL(name string) string {
	return modelBaseURL + "/" + ModelFileName(name)
}

// DefaultModelDir is where downloaded models live unless overridden.
func DefaultModelDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil || cacheDir == "" {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "subburn", "models")
}

// ResolveModelIn returns the local path for a model identifier,
// downloading the ggml file into modelDir on first use. A name
// containing a path separator is treated as an explicit model file path.
func ResolveModelIn(name, modelDir string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("model file not found: %s", name)
		}
		return name, nil
	}

	if !IsKnownModel(name) {
		return "", fmt.Errorf("unknown model %q: available models are %s",
			name, strings.Join(modelNames, ", "))
	}

	destPath := filepath.Join(modelDir, ModelFileName(name))
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		return destPath, nil
	}

	if err := DownloadModel(name, modelDir, os.Stderr); err != nil {
		return "", err
	}
	return destPath, nil
}

// DownloadModel fetches the ggml model into modelDir, writing progress
// to progressOut. The file lands via a temp name so a failed download
// never leaves a truncated model behind.
func DownloadModel(name, modelDir string, progressOut io.Writer) error {
	if !IsKnownModel(name) {
		return fmt.Errorf("unknown model %q", name)
	}

	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}

	destPath := filepath.Join(modelDir, ModelFileName(name))
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		return nil
	}

	resp, err := http.Get(ModelURL(name))
	if err != nil {
		return fmt.Errorf("downloading model %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model download failed: HTTP %d", resp.StatusCode)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	pw := &progressWriter{
		writer: f,
		total:  resp.ContentLength,
		label:  ModelFileName(name),
		out:    progressOut,
	}

	_, err = io.Copy(pw, resp.Body)
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing model file: %w", err)
	}
	if pw.out != nil {
		fmt.Fprintln(pw.out)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving model file: %w", err)
	}

	return nil
}

// progressWriter wraps an io.Writer and prints download progress.
type progressWriter struct {
	writer  io.Writer
	total   int64
	written int64
	label   string
	out     io.Writer
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	if pw.out == nil {
		return n, err
	}
	if pw.total > 0 {
		pct := float64(pw.written) / float64(pw.total) * 100
		fmt.Fprintf(pw.out, "\r  %s: %.1f MB / %.1f MB (%.0f%%)",
			pw.label,
			float64(pw.written)/(1024*1024),
			float64(pw.total)/(1024*1024),
			pct)
	} else {
		fmt.Fprintf(pw.out, "\r  %s: %.1f MB downloaded",
			pw.label,
			float64(pw.written)/(1024*1024))
	}
	return n, err
}
