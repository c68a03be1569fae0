package ffmpeg

import (
	"fmt"
	"strings"
)

// EncodeBuilder assembles the argument vector for one H.265 encode.
//
// The video stream is re-encoded with either hevc_nvenc or libx265,
// audio is copied unmodified, and machine-readable progress is written
// to stdout via -progress pipe:1.
type EncodeBuilder struct {
	inputPath  string
	outputPath string
	crf        int
	nvenc      bool
	extraArgs  []string
}

// NewEncodeBuilder creates a builder with the software path and a
// mid-range quality as defaults.
func NewEncodeBuilder(inputPath, outputPath string) *EncodeBuilder {
	return &EncodeBuilder{
		inputPath:  inputPath,
		outputPath: outputPath,
		crf:        28,
	}
}

// SetCRF sets the quality parameter (CRF for libx265, CQ for nvenc).
func (b *EncodeBuilder) SetCRF(crf int) *EncodeBuilder {
	b.crf = crf
	return b
}

// SetNVENC selects the hardware encoder path.
func (b *EncodeBuilder) SetNVENC(nvenc bool) *EncodeBuilder {
	b.nvenc = nvenc
	return b
}

// AddExtraArgs appends custom ffmpeg arguments before the output path.
func (b *EncodeBuilder) AddExtraArgs(args ...string) *EncodeBuilder {
	b.extraArgs = append(b.extraArgs, args...)
	return b
}

// BuildArgs constructs the ffmpeg arguments. The returned slice is
// suitable for exec.Command(bin, args...).
func (b *EncodeBuilder) BuildArgs() []string {
	args := []string{"-y", "-i", b.inputPath}

	if b.nvenc {
		args = append(args, "-c:v", HWEncoder, "-cq", fmt.Sprintf("%d", b.crf), "-preset", "p6")
	} else {
		args = append(args, "-c:v", "libx265", "-crf", fmt.Sprintf("%d", b.crf), "-preset", "slow")
	}

	args = append(args,
		"-pix_fmt", "yuv420p",
		"-c:a", "copy",
		"-progress", "pipe:1",
		"-nostats",
	)

	args = append(args, b.extraArgs...)
	args = append(args, b.outputPath)

	return args
}

// DryRun returns the command as a single string without executing it.
func (b *EncodeBuilder) DryRun() string {
	return DefaultBin + " " + strings.Join(b.BuildArgs(), " ")
}

// GetInputPath returns the input file path.
func (b *EncodeBuilder) GetInputPath() string {
	return b.inputPath
}

// GetOutputPath returns the output file path.
func (b *EncodeBuilder) GetOutputPath() string {
	return b.outputPath
}
