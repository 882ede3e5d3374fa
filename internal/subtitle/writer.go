package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteSRT serializes segments to an SRT file at path. Blocks are
// numbered positionally from 1 regardless of any identifier on the
// input; identical input always yields byte-identical output.
func WriteSRT(segments []Segment, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(RenderSRT(segments)), 0644)
}

// RenderSRT builds the SRT document for segments.
func RenderSRT(segments []Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(seg.StartTime),
			formatSRTTime(seg.EndTime)))

		// a literal --> inside cue text would read as a timestamp line
		text := strings.ReplaceAll(strings.TrimSpace(seg.Text), "-->", "->")
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
