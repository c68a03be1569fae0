// Package ffmpeg builds and monitors ffmpeg encode invocations.
package ffmpeg

import (
	"context"
	"os/exec"
	"strings"
)

// DefaultBin is the ffmpeg binary resolved on PATH.
const DefaultBin = "ffmpeg"

// HWEncoder is the hardware encoder identifier looked for in the
// encoder listing.
const HWEncoder = "hevc_nvenc"

// HasNVENC reports whether the ffmpeg build exposes the NVENC HEVC
// encoder. Any invocation problem (binary missing, nonzero exit,
// context timeout) reads as "not available"; capability absence is
// never fatal to a batch.
func HasNVENC(ctx context.Context, bin string) bool {
	if bin == "" {
		bin = DefaultBin
	}

	out, err := exec.CommandContext(ctx, bin, "-hide_banner", "-encoders").Output()
	if err != nil {
		return false
	}

	return strings.Contains(string(out), HWEncoder)
}
