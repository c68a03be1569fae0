// Package worker runs a single WorkUnit through the external encoder
// and reduces everything that can happen to one terminal Outcome.
package worker

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"compressor/ffmpeg"
	"compressor/models"
)

// Worker encodes units with a given ffmpeg binary. The zero value uses
// the ffmpeg found on PATH and discards progress.
type Worker struct {
	Bin        string
	Log        *zap.Logger
	OnProgress models.ProgressFunc
}

// New creates a Worker. An empty bin falls back to PATH resolution.
func New(bin string, log *zap.Logger) *Worker {
	if bin == "" {
		bin = ffmpeg.DefaultBin
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{Bin: bin, Log: log}
}

// Run executes one unit to completion and returns its Outcome.
//
// Every failure mode (planner-recorded failures, launch errors, a
// nonzero exit, a missing output file) converts to a Failed outcome
// here; no error escapes this call. Cancellation is polled at each
// progress-line boundary; on cancel the subprocess is terminated and
// the partial output file is left in place (the next run's skip check
// will treat it as done, matching the output-directory contract).
func (w *Worker) Run(unit *models.WorkUnit, token *models.CancelToken) models.Outcome {
	name := filepath.Base(unit.SourcePath)

	if unit.Skip {
		w.Log.Debug("skipping unit, output exists",
			zap.String("unit_id", unit.ID),
			zap.String("source", name))
		return models.SkippedOutcome(unit)
	}

	if unit.FailReason != "" {
		w.Log.Warn("unit failed before dispatch",
			zap.String("unit_id", unit.ID),
			zap.String("source", name),
			zap.String("reason", unit.FailReason))
		return models.FailedOutcome(unit, unit.FailReason)
	}

	if token.Cancelled() {
		return models.CancelledOutcome(unit)
	}

	builder := ffmpeg.NewEncodeBuilder(unit.SourcePath, unit.OutputPath).
		SetCRF(unit.CRF).
		SetNVENC(unit.NVENC)

	cmd := exec.Command(w.Bin, builder.BuildArgs()...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return models.FailedOutcome(unit, fmt.Sprintf("failed to open progress pipe: %v", err))
	}

	if err := cmd.Start(); err != nil {
		return models.FailedOutcome(unit, fmt.Sprintf("failed to start %s: %v", w.Bin, err))
	}

	w.Log.Debug("encoding started",
		zap.String("unit_id", unit.ID),
		zap.String("source", name),
		zap.Int("crf", unit.CRF),
		zap.Bool("nvenc", unit.NVENC))

	progress := models.NewProgress(unit.Duration)
	cancelled := false

	streamErr := ffmpeg.NewProgressParser().StreamProgress(stdout, func(seconds float64) bool {
		if token.Cancelled() {
			cancelled = true
			return true
		}
		if progress.Update(seconds) {
			w.emit(unit, progress.Fraction)
		}
		return false
	})

	if cancelled {
		cmd.Process.Kill()
		cmd.Wait()
		w.Log.Warn("encoding cancelled",
			zap.String("unit_id", unit.ID),
			zap.String("source", name))
		return models.CancelledOutcome(unit)
	}

	if err := cmd.Wait(); err != nil {
		reason := fmt.Sprintf("ffmpeg failed: %v", err)
		if tail := lastLine(stderr.String()); tail != "" {
			reason = fmt.Sprintf("%s (%s)", reason, tail)
		}
		return models.FailedOutcome(unit, reason)
	}

	if streamErr != nil {
		return models.FailedOutcome(unit, streamErr.Error())
	}

	outInfo, err := os.Stat(unit.OutputPath)
	if err != nil {
		return models.FailedOutcome(unit, fmt.Sprintf("output file missing after encode: %v", err))
	}

	// With an unknown duration there were no windowed samples; either
	// way the unit is done now.
	w.emit(unit, 1)

	w.Log.Info("encoding completed",
		zap.String("unit_id", unit.ID),
		zap.String("source", name),
		zap.Int64("source_bytes", unit.SourceBytes),
		zap.Int64("output_bytes", outInfo.Size()))

	return models.CompletedOutcome(unit, unit.SourceBytes, outInfo.Size())
}

func (w *Worker) emit(unit *models.WorkUnit, fraction float64) {
	if w.OnProgress == nil {
		return
	}
	w.OnProgress(models.ProgressEvent{
		UnitID:   unit.ID,
		Source:   unit.SourcePath,
		Fraction: fraction,
	})
}

// lastLine returns the final non-empty line of s, for compact failure
// reasons out of ffmpeg's stderr.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
