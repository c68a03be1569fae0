package ffmpeg

import (
	"strings"
	"testing"
)

func argsContain(args []string, pair ...string) bool {
	joined := " " + strings.Join(args, " ") + " "
	return strings.Contains(joined, " "+strings.Join(pair, " ")+" ")
}

func TestEncodeBuilder_SoftwareArgs(t *testing.T) {
	args := NewEncodeBuilder("in.mp4", "out_h265.mp4").SetCRF(26).BuildArgs()

	if !argsContain(args, "-c:v", "libx265") {
		t.Errorf("Expected libx265 codec: %v", args)
	}
	if !argsContain(args, "-crf", "26") {
		t.Errorf("Expected -crf 26: %v", args)
	}
	if !argsContain(args, "-preset", "slow") {
		t.Errorf("Expected slow preset: %v", args)
	}
	if argsContain(args, "-cq", "26") {
		t.Errorf("Software path must not use -cq: %v", args)
	}
}

func TestEncodeBuilder_NVENCArgs(t *testing.T) {
	args := NewEncodeBuilder("in.mp4", "out_h265.mp4").SetCRF(21).SetNVENC(true).BuildArgs()

	if !argsContain(args, "-c:v", HWEncoder) {
		t.Errorf("Expected %s codec: %v", HWEncoder, args)
	}
	if !argsContain(args, "-cq", "21") {
		t.Errorf("Expected -cq 21: %v", args)
	}
	if !argsContain(args, "-preset", "p6") {
		t.Errorf("Expected p6 preset: %v", args)
	}
}

func TestEncodeBuilder_CommonArgs(t *testing.T) {
	b := NewEncodeBuilder("in.mp4", "out_h265.mp4")
	args := b.BuildArgs()

	if !argsContain(args, "-c:a", "copy") {
		t.Errorf("Audio must be copied unmodified: %v", args)
	}
	if !argsContain(args, "-progress", "pipe:1") {
		t.Errorf("Expected progress on stdout: %v", args)
	}
	if !argsContain(args, "-pix_fmt", "yuv420p") {
		t.Errorf("Expected yuv420p pixel format: %v", args)
	}
	if args[len(args)-1] != "out_h265.mp4" {
		t.Errorf("Output path must be last: %v", args)
	}
	if args[0] != "-y" {
		t.Errorf("Expected -y first: %v", args)
	}

	if b.GetInputPath() != "in.mp4" || b.GetOutputPath() != "out_h265.mp4" {
		t.Error("Path accessors returned wrong values")
	}
}

func TestEncodeBuilder_ExtraArgs(t *testing.T) {
	args := NewEncodeBuilder("in.mp4", "out.mp4").AddExtraArgs("-movflags", "+faststart").BuildArgs()
	if !argsContain(args, "-movflags", "+faststart") {
		t.Errorf("Extra args missing: %v", args)
	}
}

func TestEncodeBuilder_DryRun(t *testing.T) {
	cmd := NewEncodeBuilder("in.mp4", "out.mp4").DryRun()
	if !strings.HasPrefix(cmd, "ffmpeg ") {
		t.Errorf("DryRun should start with the binary name: %s", cmd)
	}
	if !strings.Contains(cmd, "in.mp4") || !strings.Contains(cmd, "out.mp4") {
		t.Errorf("DryRun missing paths: %s", cmd)
	}
}
