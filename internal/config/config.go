// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// layered with environment overrides by [LoadEnv], and then mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	SourceDir string
	OutputDir string

	// Scan settings.
	Extensions []string // Lowercase, leading dot. Default: .exe, .dll, .ico.
	Workers    int      // Worker pool size. Default: runtime.NumCPU().

	// Behavior flags.
	DryRun bool // Walk, decode, and dedup, but write nothing.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the baseline settings: the fixed
// executable/library/icon extension set and one worker per CPU core.
func DefaultConfig() Config {
	return Config{
		Extensions: []string{".exe", ".dll", ".ico"},
		Workers:    runtime.NumCPU(),
		DryRun:     false,
		Verbose:    false,
		ColorMode:  ColorAuto,
		CheckOnly:  false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtensions canonicalizes a user-supplied extension list:
// lowercase, leading dot, surrounding whitespace removed. Empty entries
// are rejected rather than silently dropped.
func NormalizeExtensions(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, errors.New("extension list must not be empty")
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		e = strings.ToLower(strings.TrimSpace(e))
		e = strings.TrimPrefix(e, ".")
		if e == "" {
			return nil, errors.New("extension list contains an empty entry")
		}
		if strings.ContainsAny(e, `/\`) {
			return nil, fmt.Errorf("invalid extension %q", e)
		}
		out = append(out, "."+e)
	}
	return out, nil
}

// Validate checks worker count, color mode, and the extension list, and
// canonicalizes Extensions in place. When not in CheckOnly mode it also
// requires that both source and output directory paths are non-empty.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	exts, err := NormalizeExtensions(c.Extensions)
	if err != nil {
		return err
	}
	c.Extensions = exts

	if c.CheckOnly {
		return nil
	}
	if c.SourceDir == "" || c.OutputDir == "" {
		return errors.New("need exactly source_dir and output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved source directory. This prevents the walker from
// discovering the tool's own output files. Both arguments must be
// absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(sourceAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == sourceAbs || strings.HasPrefix(outputAbs+sep, sourceAbs+sep) {
		return errors.New("output directory must not be inside source directory")
	}
	return nil
}
