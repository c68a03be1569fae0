// Package ffprobe extracts media metadata using the ffprobe
// command-line tool.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// DefaultBin is the ffprobe binary resolved on PATH.
const DefaultBin = "ffprobe"

// InspectError wraps any failure to read a file's metadata: tool error,
// unparsable output, or a missing video stream. The batch treats it as
// a per-file failure, never an abort.
type InspectError struct {
	Path string
	Err  error
}

func (e *InspectError) Error() string {
	return fmt.Sprintf("inspect %s: %v", e.Path, e.Err)
}

func (e *InspectError) Unwrap() error {
	return e.Err
}

// MediaInfo holds the subset of metadata the batch planner needs.
type MediaInfo struct {
	Width    int
	Height   int
	Duration float64 // seconds; 0 when the container reports none
}

// Stream represents a media stream as reported by ffprobe.
type Stream struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// Format represents the container format information.
type Format struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// ffprobeOutput represents the raw JSON output from ffprobe.
type ffprobeOutput struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Inspector queries media files through an ffprobe binary.
type Inspector struct {
	Bin string
}

// NewInspector creates an Inspector. An empty bin falls back to the
// ffprobe found on PATH.
func NewInspector(bin string) *Inspector {
	if bin == "" {
		bin = DefaultBin
	}
	return &Inspector{Bin: bin}
}

// Inspect returns the first video stream's dimensions and the
// container's duration for the given file.
//
// All failures come back as *InspectError: ffprobe missing or exiting
// nonzero, JSON that does not parse, or a file with no video stream.
// An absent duration is not an error; it comes back as 0 and the
// caller skips windowed progress computation.
func (in *Inspector) Inspect(ctx context.Context, path string) (MediaInfo, error) {
	if path == "" {
		return MediaInfo{}, &InspectError{Path: path, Err: fmt.Errorf("source path cannot be empty")}
	}

	// -v error: suppress everything but real errors
	// -select_streams v:0: only the first video stream
	// -show_entries: width/height from the stream, duration from the container
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	}

	cmd := exec.CommandContext(ctx, in.Bin, args...)
	output, err := cmd.Output()
	if err != nil {
		return MediaInfo{}, &InspectError{Path: path, Err: fmt.Errorf("ffprobe failed: %w", err)}
	}

	var result ffprobeOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return MediaInfo{}, &InspectError{Path: path, Err: fmt.Errorf("failed to parse ffprobe output: %w", err)}
	}

	if len(result.Streams) == 0 {
		return MediaInfo{}, &InspectError{Path: path, Err: fmt.Errorf("no video stream found")}
	}

	v := result.Streams[0]
	if v.Width <= 0 || v.Height <= 0 {
		return MediaInfo{}, &InspectError{Path: path, Err: fmt.Errorf("video stream has no dimensions")}
	}

	info := MediaInfo{Width: v.Width, Height: v.Height}
	if result.Format.Duration != "" {
		d, err := strconv.ParseFloat(result.Format.Duration, 64)
		if err != nil {
			return MediaInfo{}, &InspectError{Path: path, Err: fmt.Errorf("failed to parse duration %q: %w", result.Format.Duration, err)}
		}
		info.Duration = d
	}

	return info, nil
}
