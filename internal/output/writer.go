// Package output persists canonical icons as PNG files in size buckets.
package output

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Characters that are unsafe in file names on at least one supported
// filesystem. They show up in source paths scanned from foreign mounts.
var reInvalidNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// BuildBaseName derives the output file stem for an icon extracted from
// sourcePath at the given canonical size: "<stem>_<WxH>". Unsafe characters
// in the stem are replaced with "_".
func BuildBaseName(sourcePath string, width, height int) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = reInvalidNameChars.ReplaceAllString(stem, "_")
	return fmt.Sprintf("%s_%dx%d", stem, width, height)
}

// Writer saves icons under a destination root, one subdirectory per
// canonical size ("64x64", "32x32", ...).
type Writer struct {
	root string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{root: dir}
}

// Save writes img to <root>/<WxH>/<baseName>.png and returns the final path
// and the encoded size in bytes. When the name is taken, "_1", "_2", ... is
// appended to the stem until a free one is found.
//
// The probe-then-create sequence is racy when two workers claim the same
// name at once; O_EXCL turns that race into a per-file error instead of a
// silent overwrite.
func (w *Writer) Save(img *image.NRGBA, baseName string) (string, int64, error) {
	b := img.Bounds()
	dir := filepath.Join(w.root, fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}

	path := filepath.Join(dir, baseName+".png")
	for n := 1; ; n++ {
		if _, err := os.Stat(path); err != nil {
			// Not there (or not statable): O_EXCL below settles it.
			break
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.png", baseName, n))
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", 0, err
	}
	if err := f.Close(); err != nil {
		return "", 0, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return "", 0, err
	}
	return path, fi.Size(), nil
}
