package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into scan, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional args).
// version is injected by the caller so build-time ldflags reach the help text.
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("icongrab", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Negated/exit flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags
	var extList string

	defineScanFlags(fs, cfg, &extList)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "icongrab v"+version)
		os.Exit(0)
	}

	if extList != "" {
		cfg.Extensions = strings.Split(extList, ",")
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (noColor) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineScanFlags registers -e/--ext and -w/--workers.
func defineScanFlags(fs *flag.FlagSet, cfg *Config, extList *string) {
	fs.StringVar(extList, "ext", "", "Comma-separated extension allow-list (default: exe,dll,ico)")
	fs.StringVar(extList, "e", "", "Same as --ext")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker pool size (default: CPU count)")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
}

// defineBehaviorFlags registers -d/--dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Scan and dedup only; do not write icons")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
}

// defineUtilityFlags registers --log, --check, --version, and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run environment diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets SourceDir and OutputDir from the two positional
// args. In CheckOnly mode the paths are optional; when present they let the
// diagnostics probe the real destination.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly && len(args) != 2 {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly source_dir and output_dir")
	}
	cfg.SourceDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "icongrab v" + version + " - extract and deduplicate embedded icons"},
		{"", ""},
		{"  icongrab [OPTIONS] <source_dir> <output_dir>", ""},
		{"", ""},
		{"Scan", ""},
		{"  -e, --ext <list>", "Comma-separated extensions (default: exe,dll,ico)"},
		{"  -w, --workers <n>", "Worker pool size (default: CPU count)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -d, --dry-run", "Scan and dedup only; do not write icons"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Environment diagnostics (codec, resize, write access)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"Environment", ""},
		{"  ICONGRAB_EXTENSIONS", "Same as --ext"},
		{"  ICONGRAB_WORKERS", "Same as --workers"},
		{"  ICONGRAB_LOG", "Same as --log"},
		{"  ICONGRAB_COLOR", "auto | always | never"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
