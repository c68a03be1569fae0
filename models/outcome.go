package models

import (
	"fmt"
	"strings"
)

// OutcomeKind is the terminal state of one WorkUnit.
type OutcomeKind string

const (
	OutcomeSkipped   OutcomeKind = "skipped"   // Output already existed, encoder never ran
	OutcomeCompleted OutcomeKind = "completed" // Encoder finished and the output file exists
	OutcomeCancelled OutcomeKind = "cancelled" // Stopped cooperatively mid-encode
	OutcomeFailed    OutcomeKind = "failed"    // Any per-unit error, carries a reason
)

// Outcome is the result of running one WorkUnit.
//
// Exactly one Outcome is produced per unit, by its worker, and consumed
// exactly once by the batch aggregation step. SourceBytes and OutputBytes
// are only meaningful for Completed outcomes; Reason only for Failed.
//
// Use the typed constructors to get validated instances.
type Outcome struct {
	UnitID      string      `json:"unit_id"`
	Source      string      `json:"source"`
	Kind        OutcomeKind `json:"kind"`
	SourceBytes int64       `json:"source_bytes,omitempty"`
	OutputBytes int64       `json:"output_bytes,omitempty"`
	Reason      string      `json:"reason,omitempty"`
}

// SkippedOutcome marks a unit whose output already existed.
func SkippedOutcome(u *WorkUnit) Outcome {
	return Outcome{UnitID: u.ID, Source: u.SourcePath, Kind: OutcomeSkipped}
}

// CompletedOutcome records a successful encode with byte accounting.
// sourceBytes is the input file's size captured at unit-build time.
func CompletedOutcome(u *WorkUnit, sourceBytes, outputBytes int64) Outcome {
	return Outcome{
		UnitID:      u.ID,
		Source:      u.SourcePath,
		Kind:        OutcomeCompleted,
		SourceBytes: sourceBytes,
		OutputBytes: outputBytes,
	}
}

// CancelledOutcome marks a unit stopped by the cancellation token.
func CancelledOutcome(u *WorkUnit) Outcome {
	return Outcome{UnitID: u.ID, Source: u.SourcePath, Kind: OutcomeCancelled}
}

// FailedOutcome records a per-unit error with a human-readable reason.
func FailedOutcome(u *WorkUnit, reason string) Outcome {
	if strings.TrimSpace(reason) == "" {
		reason = "unknown error"
	}
	return Outcome{UnitID: u.ID, Source: u.SourcePath, Kind: OutcomeFailed, Reason: reason}
}

// Validate checks if the Outcome has consistent state.
//
// Returns an error if:
//   - Kind is not one of the four terminal states
//   - a Failed outcome has no reason
//   - a non-Failed outcome has a reason
//   - a non-Completed outcome carries byte counts
func (o Outcome) Validate() error {
	switch o.Kind {
	case OutcomeSkipped, OutcomeCompleted, OutcomeCancelled, OutcomeFailed:
	default:
		return fmt.Errorf("unknown outcome kind %q", o.Kind)
	}

	if o.Kind == OutcomeFailed && strings.TrimSpace(o.Reason) == "" {
		return fmt.Errorf("failed outcome must have a reason")
	}

	if o.Kind != OutcomeFailed && o.Reason != "" {
		return fmt.Errorf("%s outcome should not have a reason", o.Kind)
	}

	if o.Kind != OutcomeCompleted && (o.SourceBytes != 0 || o.OutputBytes != 0) {
		return fmt.Errorf("%s outcome should not carry byte counts", o.Kind)
	}

	return nil
}
