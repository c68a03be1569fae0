// Package batch turns scanned paths into work units and runs them
// through a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"compressor/ffprobe"
	"compressor/models"
	"compressor/policy"
)

// Output naming contract: for input name.ext the batch writes
// name_h265.mp4 into the output_wm subdirectory of the scanned root.
// Any file already matching that pattern counts as processed on a
// re-run.
const (
	OutputDirName = "output_wm"
	OutputSuffix  = "_h265.mp4"
)

// fallback quality for units that never reach the encoder (skips,
// planner failures); keeps the unit valid without consulting policy.
const placeholderCRF = 28

// OutputName returns the output filename for a source path.
func OutputName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputSuffix
}

// Inspector is the metadata query the planner needs per unit.
// *ffprobe.Inspector satisfies it.
type Inspector interface {
	Inspect(ctx context.Context, path string) (ffprobe.MediaInfo, error)
}

// Planner builds the immutable WorkUnit list for one batch run.
type Planner struct {
	Inspector   Inspector
	OutputDir   string
	NVENC       bool
	CRFOverride int // -1 = pick per file via policy; >= 0 used verbatim
	Log         *zap.Logger
}

// NewPlanner creates a Planner. A nil logger is replaced with a no-op.
func NewPlanner(inspector Inspector, outputDir string, nvenc bool, crfOverride int, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		Inspector:   inspector,
		OutputDir:   outputDir,
		NVENC:       nvenc,
		CRFOverride: crfOverride,
		Log:         log,
	}
}

// ExistingOutputs lists the already-produced output filenames
// (lowercased) in the output directory. It is computed once, before
// dispatch begins, and is read-only for the rest of the run. A missing
// directory reads as an empty set.
func (p *Planner) ExistingOutputs() (map[string]bool, error) {
	entries, err := os.ReadDir(p.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("failed to read output directory %s: %w", p.OutputDir, err)
	}

	existing := make(map[string]bool)
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if !e.IsDir() && strings.HasSuffix(name, OutputSuffix) {
			existing[name] = true
		}
	}
	return existing, nil
}

// BuildUnits maps each source path to exactly one WorkUnit.
//
// Units whose output already exists are flagged Skip without touching
// the prober. Inspection failures and output-path collisions do not
// abort the batch; they produce units that the worker will report as
// Failed. CRF comes from the explicit override when one is set,
// otherwise from the resolution policy.
func (p *Planner) BuildUnits(ctx context.Context, sources []string) ([]*models.WorkUnit, error) {
	existing, err := p.ExistingOutputs()
	if err != nil {
		return nil, err
	}

	claimed := make(map[string]string, len(sources))
	units := make([]*models.WorkUnit, 0, len(sources))

	for _, src := range sources {
		outName := OutputName(src)
		outPath := filepath.Join(p.OutputDir, outName)

		unit, err := models.NewWorkUnit(src, outPath, placeholderCRF)
		if err != nil {
			return nil, err
		}
		unit.NVENC = p.NVENC

		if existing[strings.ToLower(outName)] {
			unit.Skip = true
			units = append(units, unit)
			continue
		}

		if prev, ok := claimed[outPath]; ok {
			unit.FailReason = fmt.Sprintf("output %s already claimed by %s", outName, filepath.Base(prev))
			units = append(units, unit)
			continue
		}
		claimed[outPath] = src

		fi, err := os.Stat(src)
		if err != nil {
			unit.FailReason = fmt.Sprintf("cannot stat source: %v", err)
			units = append(units, unit)
			continue
		}
		unit.SourceBytes = fi.Size()

		info, err := p.Inspector.Inspect(ctx, src)
		if err != nil {
			unit.FailReason = err.Error()
			units = append(units, unit)
			continue
		}
		unit.Width = info.Width
		unit.Height = info.Height
		unit.Duration = info.Duration

		if p.CRFOverride >= 0 {
			unit.CRF = p.CRFOverride
		} else {
			unit.CRF = policy.AutoCRF(info.Width, info.Height, p.NVENC)
		}

		p.Log.Debug("unit planned",
			zap.String("unit_id", unit.ID),
			zap.String("source", filepath.Base(src)),
			zap.Int("width", info.Width),
			zap.Int("height", info.Height),
			zap.Float64("duration", info.Duration),
			zap.Int("crf", unit.CRF))

		units = append(units, unit)
	}

	return units, nil
}
