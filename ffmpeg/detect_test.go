package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func fakeFFmpeg(t *testing.T, stdout string, exitCode int) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "ffmpeg")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\nexit %d\n", stdout, exitCode)
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake ffmpeg: %v", err)
	}
	return bin
}

func TestHasNVENC(t *testing.T) {
	withNvenc := ` V....D hevc_nvenc           NVIDIA NVENC hevc encoder (codec hevc)
 V....D libx265              libx265 H.265 / HEVC`
	withoutNvenc := ` V....D libx264              libx264 H.264
 V....D libx265              libx265 H.265 / HEVC`

	tests := []struct {
		name     string
		stdout   string
		exit     int
		expected bool
	}{
		{"nvenc listed", withNvenc, 0, true},
		{"nvenc absent", withoutNvenc, 0, false},
		{"tool failure reads as absent", withNvenc, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := fakeFFmpeg(t, tt.stdout, tt.exit)
			if got := HasNVENC(context.Background(), bin); got != tt.expected {
				t.Errorf("HasNVENC = %v, expected %v", got, tt.expected)
			}
		})
	}
}
