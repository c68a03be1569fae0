package models

// BatchState is the aggregate result of a batch run.
//
// It is mutated only by the orchestrator's single aggregation goroutine,
// so the struct itself carries no lock. All updates are commutative
// (counts and sums), so any completion interleaving yields the same
// final totals.
type BatchState struct {
	TotalUnits  int   `json:"total_units"`
	Processed   int   `json:"processed"` // outcomes recorded, any kind
	Encoded     int   `json:"encoded"`
	Skipped     int   `json:"skipped"`
	Cancelled   int   `json:"cancelled"`
	Failed      int   `json:"failed"`
	SourceBytes int64 `json:"source_bytes"` // sum over Completed outcomes only
	OutputBytes int64 `json:"output_bytes"` // sum over Completed outcomes only
	Interrupted bool  `json:"interrupted"`  // cancellation was requested during the run
}

// Record folds one outcome into the aggregate. Not safe for concurrent
// use; the orchestrator serializes all calls.
func (s *BatchState) Record(o Outcome) {
	s.Processed++

	switch o.Kind {
	case OutcomeCompleted:
		s.Encoded++
		s.SourceBytes += o.SourceBytes
		s.OutputBytes += o.OutputBytes
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeCancelled:
		s.Cancelled++
	case OutcomeFailed:
		s.Failed++
	}
}

// SpaceSaved returns input minus output bytes over completed encodes.
// Negative when the batch grew the data overall.
func (s *BatchState) SpaceSaved() int64 {
	return s.SourceBytes - s.OutputBytes
}

// SavedPercent returns the percentage of source bytes saved, or 0 when
// nothing was encoded.
func (s *BatchState) SavedPercent() float64 {
	if s.SourceBytes == 0 {
		return 0
	}
	return 100 * (1 - float64(s.OutputBytes)/float64(s.SourceBytes))
}
