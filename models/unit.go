// Package models provides core data structures for the batch compressor.
package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// WorkUnit describes one file's complete transcode task.
//
// Units are built by the batch planner before dispatch and are immutable
// afterwards: the worker reads them, the aggregator folds their outcome
// into the batch state, and nothing mutates them in between.
//
// Use NewWorkUnit to create a validated instance.
type WorkUnit struct {
	ID          string  `json:"id"`
	SourcePath  string  `json:"source_path"`
	OutputPath  string  `json:"output_path"`
	SourceBytes int64   `json:"source_bytes"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Duration    float64 `json:"duration"` // seconds; <= 0 means unknown
	CRF         int     `json:"crf"`
	NVENC       bool    `json:"nvenc"`
	Skip        bool    `json:"skip"`

	// FailReason is set by the planner when a unit cannot be encoded
	// (inspection failed, output path already claimed). The worker turns
	// it into a Failed outcome without launching a subprocess.
	FailReason string `json:"fail_reason,omitempty"`
}

// NewWorkUnit creates a WorkUnit with a fresh ID and validates it.
//
// Returns an error if source or output path is empty, or CRF is outside
// the 0-51 range accepted by both hevc_nvenc and libx265.
func NewWorkUnit(sourcePath, outputPath string, crf int) (*WorkUnit, error) {
	u := &WorkUnit{
		ID:         uuid.NewString(),
		SourcePath: sourcePath,
		OutputPath: outputPath,
		CRF:        crf,
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("invalid work unit: %w", err)
	}
	return u, nil
}

// Validate checks if the WorkUnit has valid data.
func (u *WorkUnit) Validate() error {
	if strings.TrimSpace(u.SourcePath) == "" {
		return fmt.Errorf("source_path cannot be empty")
	}

	if strings.TrimSpace(u.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty")
	}

	if u.CRF < 0 || u.CRF > 51 {
		return fmt.Errorf("crf must be between 0 and 51, got %d", u.CRF)
	}

	return nil
}
