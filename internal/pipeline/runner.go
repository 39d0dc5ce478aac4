package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/backmassage/icongrab/internal/config"
	"github.com/backmassage/icongrab/internal/dedup"
	"github.com/backmassage/icongrab/internal/display"
	"github.com/backmassage/icongrab/internal/icon"
	"github.com/backmassage/icongrab/internal/logging"
	"github.com/backmassage/icongrab/internal/output"
	"github.com/backmassage/icongrab/internal/scan"
)

// Run is the top-level entry point. It walks the source tree, fans candidate
// paths out to a worker pool, and returns aggregate stats once the tree is
// drained or ctx is canceled.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) *RunStats {
	return run(ctx, cfg, log, icon.NewDecoder())
}

// run is the injectable core; tests substitute the decoder.
func run(ctx context.Context, cfg *config.Config, log *logging.Logger, dec icon.Decoder) *RunStats {
	stats := &RunStats{}
	start := time.Now()

	registry := dedup.NewRegistry()
	writer := output.NewWriter(cfg.OutputDir)
	walker := scan.NewWalker(cfg.Extensions, func(path string, err error) {
		log.Debug("Skip %s: %v", path, err)
	})

	logBatchHeader(cfg, log)

	files := walker.Walk(ctx, cfg.SourceDir)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range files {
				processFile(cfg, log, dec, registry, writer, stats, path)
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		log.Warn("Interrupted")
	}
	logSummary(cfg, log, stats, time.Since(start))
	return stats
}

// processFile runs the per-file stages: decode, canonicalize, dedup, save.
// A panicking decoder is contained to the file that triggered it.
func processFile(
	cfg *config.Config,
	log *logging.Logger,
	dec icon.Decoder,
	registry *dedup.Registry,
	writer *output.Writer,
	stats *RunStats,
	path string,
) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Error file %s: %v", path, r)
		}
	}()

	stats.Scanned.Add(1)
	log.Debug("Scan %s", path)

	img, err := dec.Decode(path, icon.KindForPath(path))
	if err != nil {
		log.Error("Error file %s: %v", path, err)
		return
	}
	if img == nil {
		// Readable, just no icon. Common for console tools and most DLLs.
		return
	}

	canon := icon.Canonicalize(img)
	stats.Extracted.Add(1)

	if !registry.Admit(icon.Digest(canon)) {
		stats.Duplicates.Add(1)
		log.Debug("Duplicate %s", path)
		return
	}

	b := canon.Bounds()
	bucket := fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
	base := output.BuildBaseName(path, b.Dx(), b.Dy())

	if cfg.DryRun {
		stats.Saved.Add(1)
		stats.recordBucket(bucket, 0)
		log.Success("[DRY] Would save %s", filepath.Join(bucket, base+".png"))
		return
	}

	savedPath, size, err := writer.Save(canon, base)
	if err != nil {
		log.Error("Error file %s: %v", path, err)
		return
	}

	stats.Saved.Add(1)
	stats.BytesWritten.Add(size)
	stats.recordBucket(bucket, size)

	rel, relErr := filepath.Rel(cfg.OutputDir, savedPath)
	if relErr != nil {
		rel = savedPath
	}
	log.Success("Saved %s (%s)", rel, display.FormatBytes(size))
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger) {
	log.Info("Source: %s", cfg.SourceDir)
	log.Info("Destination: %s", cfg.OutputDir)
	log.Info("Extensions: %s", strings.Join(cfg.Extensions, ", "))
	log.Info("Workers: %d", cfg.Workers)
	if cfg.DryRun {
		log.Warn("DRY RUN (no files will be written)")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats, elapsed time.Duration) {
	scanned := stats.Scanned.Load()
	extracted := stats.Extracted.Load()
	saved := stats.Saved.Load()

	log.Info("==============================")
	log.Info("Done: %d scanned, %d with icons, %d unique saved", scanned, extracted, saved)
	log.Info("Summary report:")
	log.Info("  Source: %s", cfg.SourceDir)
	log.Info("  Destination: %s", cfg.OutputDir)
	log.Info("  Workers: %d", cfg.Workers)
	log.Info("  Files scanned: %d", scanned)
	log.Info("  Icons extracted: %d", extracted)
	log.Info("  Duplicates skipped: %d", stats.Duplicates.Load())
	if saved > 0 {
		log.Success("  Unique icons saved: %d", saved)
	} else {
		log.Info("  Unique icons saved: 0")
	}

	buckets := stats.Buckets()
	for _, k := range sortedBucketKeys(buckets) {
		b := buckets[k]
		if cfg.DryRun {
			log.Info("    %s: %d", k, b.Icons)
		} else {
			log.Info("    %s: %d (%s)", k, b.Icons, display.FormatBytes(b.Bytes))
		}
	}

	if cfg.DryRun {
		log.Info("  Bytes written: n/a (dry run)")
	} else {
		log.Info("  Bytes written: %s", display.FormatBytes(stats.BytesWritten.Load()))
	}
	log.Info("  Elapsed: %s", display.FormatDuration(elapsed))
}

// sortedBucketKeys orders bucket names by width, widest first, so the
// breakdown reads in ladder order.
func sortedBucketKeys(buckets map[string]BucketStats) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi := bucketWidth(keys[i])
		wj := bucketWidth(keys[j])
		if wi != wj {
			return wi > wj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func bucketWidth(bucket string) int {
	w, _, ok := strings.Cut(bucket, "x")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return 0
	}
	return n
}
