package icon

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	ico "github.com/sergeymakinen/go-ico"
)

func TestKindForPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Kind
	}{
		{"ico", "/icons/app.ico", KindIconFile},
		{"ico uppercase", "/icons/APP.ICO", KindIconFile},
		{"exe", "/bin/setup.exe", KindBinary},
		{"dll", "/windows/shell32.dll", KindBinary},
		{"custom extension", "/bin/plugin.ocx", KindBinary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindForPath(tt.path); got != tt.want {
				t.Errorf("KindForPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDecode_IconFile(t *testing.T) {
	dir := t.TempDir()
	src := solidNRGBA(32, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	path := writeICO(t, dir, "app.ico", src)

	img, err := NewDecoder().Decode(path, KindForPath(path))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img == nil {
		t.Fatal("Decode returned nil image for a valid .ico")
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("bounds: got %dx%d, want 32x32", b.Dx(), b.Dy())
	}
}

func TestDecode_IconFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := gradientNRGBA(64)
	path := writeICO(t, dir, "gradient.ico", src)

	img, err := NewDecoder().Decode(path, KindIconFile)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got := Digest(Canonicalize(img))
	want := Digest(src)
	if got != want {
		t.Errorf("pixel digest after round trip: got %s, want %s", got, want)
	}
}

func TestDecode_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.ico")
	if _, err := NewDecoder().Decode(path, KindIconFile); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecode_CorruptIconFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ico")
	if err := os.WriteFile(path, []byte("this is not an icon"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDecoder().Decode(path, KindIconFile); err == nil {
		t.Error("expected error for corrupt .ico")
	}
}

func TestDecode_CorruptBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.dll")
	// MZ magic followed by garbage: the PE parser has to reject this.
	data := append([]byte("MZ"), bytes.Repeat([]byte{0xde, 0xad}, 256)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDecoder().Decode(path, KindBinary); err == nil {
		t.Error("expected error for corrupt .dll")
	}
}

func TestIsNoIcon(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"no icon found", true},
		{"no resource section", true},
		{"group icon not found", true},
		{"open /x/y.dll: permission denied", false},
		{"invalid PE header", false},
		{"unexpected EOF", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := isNoIcon(errors.New(tt.msg)); got != tt.want {
				t.Errorf("isNoIcon(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

// --- Helpers ---

func solidNRGBA(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// gradientNRGBA returns an opaque image with per-pixel variation, enough to
// catch channel-order or row-order mixups.
func gradientNRGBA(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 4),
				G: uint8(y * 4),
				B: uint8((x + y) * 2),
				A: 255,
			})
		}
	}
	return img
}

func writeICO(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		t.Fatalf("encode ico: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
