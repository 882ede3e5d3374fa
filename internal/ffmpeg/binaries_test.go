package ffmpeg

import (
	"strings"
	"testing"
)

func TestAssetForPlatform(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"linux", "amd64", "linux-64", false},
		{"linux", "arm64", "linux-arm-64", false},
		{"darwin", "amd64", "macos-64", false},
		{"windows", "amd64", "win-64", false},
		{"plan9", "amd64", "", true},
		{"linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetForPlatform(tt.goos, tt.goarch)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s/%s", tt.goos, tt.goarch)
				}
				return
			}
			if err != nil {
				t.Fatalf("assetForPlatform: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("asset %q does not contain %q", got, tt.want)
			}
			if !strings.HasPrefix(got, "ffmpeg-"+releaseVersion) {
				t.Errorf("asset %q missing version prefix", got)
			}
			if !strings.HasSuffix(got, ".zip") {
				t.Errorf("asset %q is not a zip", got)
			}
		})
	}
}
