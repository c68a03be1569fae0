package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"compressor/ffprobe"
	"compressor/models"
	"compressor/worker"
)

func makeUnits(t *testing.T, n int) []*models.WorkUnit {
	t.Helper()
	units := make([]*models.WorkUnit, n)
	for i := range units {
		u, err := models.NewWorkUnit(
			fmt.Sprintf("/videos/%03d.mp4", i),
			fmt.Sprintf("/videos/output_wm/%03d_h265.mp4", i),
			26,
		)
		if err != nil {
			t.Fatalf("NewWorkUnit failed: %v", err)
		}
		u.SourceBytes = int64(1000 * (i + 1))
		units[i] = u
	}
	return units
}

func TestNew_InvalidArguments(t *testing.T) {
	runner := func(u *models.WorkUnit, tok *models.CancelToken) models.Outcome {
		return models.SkippedOutcome(u)
	}

	if _, err := New(runner, 0, nil); err == nil {
		t.Error("Expected error for zero concurrency")
	}
	if _, err := New(runner, -3, nil); err == nil {
		t.Error("Expected error for negative concurrency")
	}
	if _, err := New(nil, 2, nil); err == nil {
		t.Error("Expected error for nil runner")
	}
	if _, err := New(runner, 1, nil); err != nil {
		t.Errorf("Concurrency 1 is a supported mode: %v", err)
	}
}

// The same unit set yields identical totals for any concurrency.
func TestRun_TotalsIndependentOfConcurrency(t *testing.T) {
	runner := func(u *models.WorkUnit, tok *models.CancelToken) models.Outcome {
		// Mixed outcomes, derived deterministically from the unit.
		switch u.SourceBytes % 3000 {
		case 0:
			return models.FailedOutcome(u, "simulated failure")
		case 1000:
			return models.CompletedOutcome(u, u.SourceBytes, u.SourceBytes/2)
		default:
			return models.SkippedOutcome(u)
		}
	}

	var states []models.BatchState
	for _, workers := range []int{1, 2, 4, 8} {
		o, err := New(runner, workers, nil)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		states = append(states, o.Run(makeUnits(t, 12), models.NewCancelToken()))
	}

	for i := 1; i < len(states); i++ {
		if states[i] != states[0] {
			t.Errorf("Concurrency changed totals: %+v vs %+v", states[0], states[i])
		}
	}

	if states[0].Processed != 12 || states[0].TotalUnits != 12 {
		t.Errorf("Expected all units processed: %+v", states[0])
	}
}

func TestRun_ByteAccounting(t *testing.T) {
	runner := func(u *models.WorkUnit, tok *models.CancelToken) models.Outcome {
		return models.CompletedOutcome(u, u.SourceBytes, u.SourceBytes/4)
	}

	o, err := New(runner, 3, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	units := makeUnits(t, 4) // 1000+2000+3000+4000 source bytes
	state := o.Run(units, models.NewCancelToken())

	if state.SourceBytes != 10000 {
		t.Errorf("Expected 10000 source bytes, got %d", state.SourceBytes)
	}
	if state.OutputBytes != 2500 {
		t.Errorf("Expected 2500 output bytes, got %d", state.OutputBytes)
	}
}

func TestRun_CancellationStopsDispatch(t *testing.T) {
	var dispatched atomic.Int32

	// Sequential pool; the first unit cancels the batch.
	runner := func(u *models.WorkUnit, tok *models.CancelToken) models.Outcome {
		dispatched.Add(1)
		tok.Cancel()
		return models.CompletedOutcome(u, u.SourceBytes, 1)
	}

	o, err := New(runner, 1, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	units := makeUnits(t, 5)
	state := o.Run(units, models.NewCancelToken())

	if got := dispatched.Load(); got != 1 {
		t.Errorf("Expected dispatch to stop after cancellation, got %d launches", got)
	}
	if state.Processed > state.TotalUnits {
		t.Error("Processed count exceeds total units")
	}
	if !state.Interrupted {
		t.Error("Expected interrupted flag")
	}
	// The completed outcome recorded before cancellation survives.
	if state.Encoded != 1 {
		t.Errorf("Expected 1 encoded unit preserved, got %d", state.Encoded)
	}
}

func TestRun_InFlightUnitsDrainAfterCancel(t *testing.T) {
	release := make(chan struct{})

	runner := func(u *models.WorkUnit, tok *models.CancelToken) models.Outcome {
		<-release
		if tok.Cancelled() {
			return models.CancelledOutcome(u)
		}
		return models.CompletedOutcome(u, u.SourceBytes, 1)
	}

	o, err := New(runner, 2, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	token := models.NewCancelToken()
	done := make(chan models.BatchState)
	go func() { done <- o.Run(makeUnits(t, 2), token) }()

	time.Sleep(20 * time.Millisecond) // both units in flight
	token.Cancel()
	close(release)

	state := <-done
	if state.Processed != 2 {
		t.Errorf("In-flight outcomes must be drained, processed %d", state.Processed)
	}
	if state.Cancelled != 2 {
		t.Errorf("Expected 2 cancelled outcomes, got %+v", state)
	}
}

func TestRun_OutcomeCallback(t *testing.T) {
	runner := func(u *models.WorkUnit, tok *models.CancelToken) models.Outcome {
		return models.SkippedOutcome(u)
	}

	o, err := New(runner, 2, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var seen atomic.Int32
	o.SetOutcomeCallback(func(models.Outcome) { seen.Add(1) })

	o.Run(makeUnits(t, 6), models.NewCancelToken())
	if seen.Load() != 6 {
		t.Errorf("Expected 6 callbacks, got %d", seen.Load())
	}
}

// End to end: a root with 3 sources, one already produced, running on a
// pool of 2, with a fake encoder standing in for ffmpeg.
func TestRun_SkipScenario(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, OutputDirName)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		t.Fatal(err)
	}

	sources := []string{
		writeSource(t, root, "one.mp4", 100),
		writeSource(t, root, "two.mkv", 200),
		writeSource(t, root, "three.mp4", 300),
	}
	writeSource(t, outDir, "three_h265.mp4", 50) // pre-existing output

	encoder := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\nfor a in \"$@\"; do out=\"$a\"; done\necho \"out_time_ms=1000000\"\nprintf \"hevc\" > \"$out\"\nexit 0\n"
	if err := os.WriteFile(encoder, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	inspector := fakeInspector{info: ffprobe.MediaInfo{Width: 1920, Height: 1080, Duration: 10}}
	planner := NewPlanner(inspector, outDir, false, -1, nil)
	units, err := planner.BuildUnits(context.Background(), sources)
	if err != nil {
		t.Fatalf("BuildUnits failed: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("Expected 3 units, got %d", len(units))
	}

	w := worker.New(encoder, nil)
	o, err := New(w.Run, 2, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	state := o.Run(units, models.NewCancelToken())

	if state.Processed != 3 {
		t.Errorf("Expected completed count 3, got %d", state.Processed)
	}
	if state.Skipped != 1 {
		t.Errorf("Expected exactly 1 skipped, got %d", state.Skipped)
	}
	if state.Encoded != 2 {
		t.Errorf("Expected 2 encoded, got %d", state.Encoded)
	}
	if state.SourceBytes != 300 { // 100 + 200, the skipped file contributes nothing
		t.Errorf("Expected 300 source bytes, got %d", state.SourceBytes)
	}

	for _, name := range []string{"one_h265.mp4", "two_h265.mp4"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("Expected output %s: %v", name, err)
		}
	}
}
