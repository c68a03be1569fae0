package ffmpeg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"compressor/internal/timeutil"
)

// ProgressParser extracts the elapsed encode position from the
// key=value stream ffmpeg emits with -progress pipe:1.
type ProgressParser struct{}

// NewProgressParser creates a parser for the -progress stream.
func NewProgressParser() *ProgressParser {
	return &ProgressParser{}
}

// ParseLine returns the encoded position in seconds for a progress
// line, and whether the line carried one.
//
// out_time_ms is preferred (despite the name it is in microseconds);
// out_time=HH:MM:SS.micro is the fallback for builds that omit it.
// All other keys (frame=, fps=, speed=, progress=continue, ...) are
// ignored.
func (pp *ProgressParser) ParseLine(line string) (float64, bool) {
	line = strings.TrimSpace(line)

	key, value, found := strings.Cut(line, "=")
	if !found {
		return 0, false
	}
	value = strings.TrimSpace(value)

	switch key {
	case "out_time_ms", "out_time_us":
		us, err := strconv.ParseInt(value, 10, 64)
		if err != nil || us < 0 {
			return 0, false
		}
		return float64(us) / 1e6, true
	case "out_time":
		seconds, err := timeutil.ParseTimestamp(value)
		if err != nil {
			return 0, false
		}
		return seconds, true
	}

	return 0, false
}

// StreamProgress reads the progress pipe line by line, invoking fn with
// each reported position. fn returning true stops the stream early;
// the worker uses that to honor cancellation at a line boundary.
func (pp *ProgressParser) StreamProgress(r io.Reader, fn func(seconds float64) (stop bool)) error {
	scanner := bufio.NewScanner(r)

	// Progress lines are short, but guard against a pathological pipe.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		seconds, ok := pp.ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if fn(seconds) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ffmpeg progress: %w", err)
	}

	return nil
}
