package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"compressor/batch"
	"compressor/config"
	"compressor/display"
	"compressor/ffmpeg"
	"compressor/ffprobe"
	"compressor/logger"
	"compressor/metrics"
	"compressor/models"
	"compressor/scanner"
	"compressor/worker"
)

func main() {
	// Step 1: Load configuration (CLI flags > environment > config file > defaults)
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Step 2: Set up logging
	log, err := logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Step 3: Set up the cancellation token and signal handlers (Ctrl+C, SIGTERM)
	token := models.NewCancelToken()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupt received, letting running transcodes stop...")
		token.Cancel()
		// A second signal force-quits
		<-sigChan
		os.Exit(130)
	}()

	// Step 4: Run the batch
	exitCode, err := run(cfg, log, token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// run executes the complete scan, plan and transcode workflow
func run(cfg *config.Config, log *zap.Logger, token *models.CancelToken) (int, error) {
	ctx := context.Background()

	// Probe hardware encoder support once for the whole batch
	nvenc := ffmpeg.HasNVENC(ctx, cfg.FFmpegBin)
	if nvenc {
		log.Info("Hardware encoder available", zap.String("encoder", ffmpeg.HWEncoder))
	} else {
		log.Info("Hardware encoder not available, using libx265")
	}

	// Discover candidate videos, keeping our own output tree out of the walk
	outputDir := filepath.Join(cfg.InputDir, batch.OutputDirName)
	sources, err := scanner.Scan(cfg.InputDir, outputDir)
	if err != nil {
		return 1, fmt.Errorf("scan failed: %w", err)
	}
	if len(sources) == 0 {
		fmt.Println("No video files found, nothing to do.")
		return 0, nil
	}
	log.Info("Scan complete", zap.Int("videos", len(sources)), zap.String("dir", cfg.InputDir))

	// Build the work units
	planner := batch.NewPlanner(ffprobe.NewInspector(cfg.FFprobeBin), outputDir, nvenc, cfg.CRF, log)
	units, err := planner.BuildUnits(ctx, sources)
	if err != nil {
		return 1, fmt.Errorf("planning failed: %w", err)
	}

	// Dry-run mode: show the plan and stop before touching anything
	if cfg.DryRun {
		printPlan(cfg, units)
		return 0, nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 1, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Expose Prometheus metrics if requested
	if cfg.MetricsPort > 0 {
		metrics.StartMetricsServer(cfg.MetricsPort, log)
	}
	metrics.SetBatchSize(len(units))

	// Wire the worker, progress display and orchestration together
	d := display.New(os.Stdout, len(units))

	w := worker.New(cfg.FFmpegBin, log)
	w.OnProgress = d.Progress

	runner := func(u *models.WorkUnit, tok *models.CancelToken) models.Outcome {
		metrics.WorkerStarted()
		defer metrics.WorkerDone()
		return w.Run(u, tok)
	}

	orch, err := batch.New(runner, cfg.Workers, log)
	if err != nil {
		return 1, err
	}
	orch.SetOutcomeCallback(func(o models.Outcome) {
		d.Finished(o)
		metrics.RecordOutcome(o)
	})

	state := orch.Run(units, token)
	d.Summary(state)

	switch {
	case state.Interrupted:
		return 130, nil
	case state.Failed > 0:
		return 1, nil
	default:
		return 0, nil
	}
}

// printPlan shows what a real run would do with each discovered file
func printPlan(cfg *config.Config, units []*models.WorkUnit) {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("                      DRY RUN MODE")
	fmt.Println("═══════════════════════════════════════════════════════════")
	cfg.PrintConfig()

	fmt.Printf("\nPlan (%d files):\n", len(units))
	for _, u := range units {
		switch {
		case u.Skip:
			fmt.Printf("  skip    %s (output exists)\n", u.SourcePath)
		case u.FailReason != "":
			fmt.Printf("  fail    %s (%s)\n", u.SourcePath, u.FailReason)
		default:
			fmt.Printf("  encode  %s -> %s (crf %d)\n", u.SourcePath, u.OutputPath, u.CRF)
		}
	}
	fmt.Println("\nNo encoding was performed.")
}
