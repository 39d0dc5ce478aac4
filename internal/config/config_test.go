package config

import (
	"strings"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/usr/lib", "/usr/lib"},
		{"single trailing slash", "/usr/lib/", "/usr/lib"},
		{"multiple trailing slashes", "/usr/lib///", "/usr/lib"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{"already normalized", []string{".exe", ".dll"}, []string{".exe", ".dll"}, false},
		{"missing dots", []string{"exe", "ico"}, []string{".exe", ".ico"}, false},
		{"mixed case", []string{".EXE", "Ico"}, []string{".exe", ".ico"}, false},
		{"surrounding spaces", []string{" exe ", " .dll"}, []string{".exe", ".dll"}, false},
		{"empty list", nil, nil, true},
		{"empty entry", []string{"exe", ""}, nil, true},
		{"bare dot", []string{"."}, nil, true},
		{"path separator", []string{"exe/ico"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeExtensions(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeExtensions(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("NormalizeExtensions(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Workers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"one worker is valid", 1, false},
		{"many workers is valid", 64, false},
		{"zero is invalid", 0, true},
		{"negative is invalid", -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.Workers = tt.workers
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with empty paths: expected error, got nil")
	}

	cfg.SourceDir = "/bin"
	cfg.OutputDir = "/tmp/out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with paths set: %v", err)
	}
}

func TestValidate_NormalizesExtensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Extensions = []string{"EXE", " ico"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	want := []string{".exe", ".ico"}
	if strings.Join(cfg.Extensions, ",") != strings.Join(want, ",") {
		t.Errorf("Extensions after Validate = %v, want %v", cfg.Extensions, want)
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		output  string
		wantErr bool
	}{
		{"sibling dirs", "/data/bin", "/data/icons", false},
		{"output equals source", "/data/bin", "/data/bin", true},
		{"output inside source", "/data/bin", "/data/bin/icons", true},
		{"source inside output", "/data/bin/sub", "/data/bin", false},
		{"prefix but not parent", "/data/bin", "/data/binaries", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ValidatePaths(tt.source, tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%q, %q) error = %v, wantErr %v",
					tt.source, tt.output, err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("ICONGRAB_EXTENSIONS", "exe,ico")
	t.Setenv("ICONGRAB_WORKERS", "3")
	t.Setenv("ICONGRAB_LOG", "/tmp/icongrab.log")
	t.Setenv("ICONGRAB_COLOR", "never")

	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if got := strings.Join(cfg.Extensions, ","); got != "exe,ico" {
		t.Errorf("Extensions = %q, want %q", got, "exe,ico")
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.LogFile != "/tmp/icongrab.log" {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, "/tmp/icongrab.log")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorNever)
	}
}

func TestLoadEnv_LeavesDefaultsAlone(t *testing.T) {
	// The override variables are deliberately unset here.
	t.Setenv("ICONGRAB_EXTENSIONS", "")
	t.Setenv("ICONGRAB_WORKERS", "")
	t.Setenv("ICONGRAB_LOG", "")
	t.Setenv("ICONGRAB_COLOR", "")

	cfg := DefaultConfig()
	want := DefaultConfig()
	if err := LoadEnv(&cfg); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if strings.Join(cfg.Extensions, ",") != strings.Join(want.Extensions, ",") {
		t.Errorf("Extensions = %v, want default %v", cfg.Extensions, want.Extensions)
	}
	if cfg.Workers != want.Workers {
		t.Errorf("Workers = %d, want default %d", cfg.Workers, want.Workers)
	}
	if cfg.ColorMode != want.ColorMode {
		t.Errorf("ColorMode = %q, want default %q", cfg.ColorMode, want.ColorMode)
	}
}
