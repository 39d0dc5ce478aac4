// Package check provides system diagnostics (--check mode) and the
// pre-run output directory validation (VerifyOutputDir).
package check

import (
	"bytes"
	"errors"
	"image"
	"os"
	"strings"

	ico "github.com/sergeymakinen/go-ico"

	"github.com/backmassage/icongrab/internal/config"
	"github.com/backmassage/icongrab/internal/icon"
)

// Sentinel errors returned by VerifyOutputDir when the destination cannot be used.
var (
	ErrOutputNotDir      = errors.New("output path exists but is not a directory")
	ErrOutputNotCreated  = errors.New("output directory could not be created")
	ErrOutputNotWritable = errors.New("output directory is not writable (probe file creation failed)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: exercises the ICO codec and
// the scaler in memory, then probes the output directory if one was given.
// This is informational only; it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")
	log.Info("Workers: %d, extensions: %s", cfg.Workers, strings.Join(cfg.Extensions, ", "))

	checkCodec(log)
	checkScaler(log)
	checkOutput(cfg, log)
}

// checkCodec round-trips a small frame through the ICO encoder and decoder
// and confirms the pixel content survives unchanged.
func checkCodec(log Logger) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0] = uint8(x * 16)
			src.Pix[i+1] = uint8(y * 16)
			src.Pix[i+2] = uint8((x + y) * 8)
			src.Pix[i+3] = 0xff
		}
	}

	var buf bytes.Buffer
	if err := ico.Encode(&buf, src); err != nil {
		log.Error("ICO encode failed: %v", err)
		return
	}
	size := buf.Len()
	img, err := ico.Decode(&buf)
	if err != nil {
		log.Error("ICO decode failed: %v", err)
		return
	}
	if icon.Digest(icon.Canonicalize(img)) != icon.Digest(src) {
		log.Error("ICO round trip changed pixel content")
		return
	}
	log.Success("ICO codec works (16x16 round trip, %d bytes)", size)
}

// checkScaler downscales an oversized frame and confirms the size ladder
// picks the expected rung.
func checkScaler(log Logger) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0xff
	}
	b := icon.Canonicalize(src).Bounds()
	if b.Dx() != 64 || b.Dy() != 64 {
		log.Error("Scaler produced %dx%d from a 100x100 source (want 64x64)", b.Dx(), b.Dy())
		return
	}
	log.Success("Scaler works (100x100 -> 64x64)")
}

// checkOutput probes the destination directory. --check can run without
// positional arguments, in which case there is nothing to probe.
func checkOutput(cfg *config.Config, log Logger) {
	if cfg.OutputDir == "" {
		log.Warn("No output directory given, skipping write probe")
		return
	}
	if err := VerifyOutputDir(cfg.OutputDir); err != nil {
		log.Error("Output dir %s: %v", cfg.OutputDir, err)
		return
	}
	log.Success("Output dir %s is writable", cfg.OutputDir)
}

// VerifyOutputDir is the pre-run validation: it creates the destination if
// missing and confirms a file can actually be created inside it. MkdirAll
// alone passes on a read-only mount when the directory already exists, so
// the probe creates and removes a real file. Returns a sentinel error on
// failure.
func VerifyOutputDir(dir string) error {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return ErrOutputNotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ErrOutputNotCreated
	}
	f, err := os.CreateTemp(dir, ".icongrab-probe-*")
	if err != nil {
		return ErrOutputNotWritable
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}
