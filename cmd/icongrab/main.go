// Command icongrab is the CLI entrypoint for the IconGrab icon extractor.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the scan/extract/dedup pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/icongrab/internal/check"
	"github.com/backmassage/icongrab/internal/config"
	"github.com/backmassage/icongrab/internal/display"
	"github.com/backmassage/icongrab/internal/logging"
	"github.com/backmassage/icongrab/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: bootstrap. The logger does not exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "icongrab: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "icongrab: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: icongrab [OPTIONS] <source_dir> <output_dir>")
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "icongrab: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "icongrab: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: logger available. All output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// Resolve and validate paths: source must exist, output is created and
	// probed for writability, and output must not be inside source
	// (prevents re-scanning our own PNGs on the next run).
	sourceAbs, err := absPath(cfg.SourceDir)
	if err != nil {
		log.Error("Source not found: %s", cfg.SourceDir)
		return 1
	}
	if err := check.VerifyOutputDir(cfg.OutputDir); err != nil {
		log.Error("Output directory %s: %v", cfg.OutputDir, err)
		return 1
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}
	if err := cfg.ValidatePaths(sourceAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.SourceDir)
		return 1
	}

	log.Info("=== IconGrab v%s (%s) ===", version, commit)
	log.Info("")

	// Phase 3: signal handling. Cancel the context on SIGINT/SIGTERM so
	// workers can stop between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current files…")
		cancel()
	}()

	// Phase 4: run the pipeline. Per-file failures are logged inline as
	// they happen; a completed run exits 0 either way.
	pipeline.Run(ctx, &cfg, log)
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of source vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
