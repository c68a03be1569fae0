package models

// Progress tracks fractional completion of a single unit's encode.
//
// The fraction is min(encodedSeconds/duration, 1) and is monotonically
// non-decreasing: ffmpeg occasionally repeats or slightly rewinds
// out_time values and those never move the bar backwards.
type Progress struct {
	Duration float64 // total duration in seconds; <= 0 disables computation
	Fraction float64 // 0..1
}

// NewProgress creates a tracker for a unit of the given duration.
func NewProgress(duration float64) *Progress {
	return &Progress{Duration: duration}
}

// Update records the encoder's elapsed position in seconds and returns
// true when the fraction advanced. With an unknown duration it always
// returns false; completion is then decided by exit status alone.
func (p *Progress) Update(seconds float64) bool {
	if p.Duration <= 0 {
		return false
	}

	f := seconds / p.Duration
	if f > 1 {
		f = 1
	}
	if f <= p.Fraction {
		return false
	}

	p.Fraction = f
	return true
}

// ProgressEvent is one per-unit progress sample for the presentation
// layer.
type ProgressEvent struct {
	UnitID   string
	Source   string
	Fraction float64
}

// ProgressFunc receives progress events during encoding.
type ProgressFunc func(ProgressEvent)
