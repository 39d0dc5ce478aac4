package icon

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/orcastor/fico"
	ico "github.com/sergeymakinen/go-ico"
)

// Kind classifies a candidate file by how its icon is reached.
type Kind int

const (
	KindIconFile Kind = iota // .ico: the file is the icon container itself.
	KindBinary               // .exe/.dll: icons live in the resource section.
)

// KindForPath maps a path to its decode strategy by extension.
func KindForPath(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".ico") {
		return KindIconFile
	}
	return KindBinary
}

// Decoder extracts the primary icon image from a file. Implementations
// return (nil, nil) when the file is readable but simply carries no icon;
// an error means the file could not be read or its icon data is malformed.
type Decoder interface {
	Decode(path string, kind Kind) (image.Image, error)
}

// FileDecoder is the production Decoder: .ico containers are decoded
// directly, binaries go through PE resource extraction first. Of
// multi-frame icons it returns the largest frame.
type FileDecoder struct{}

// NewDecoder returns the production decoder.
func NewDecoder() *FileDecoder { return &FileDecoder{} }

func (FileDecoder) Decode(path string, kind Kind) (image.Image, error) {
	if kind == KindIconFile {
		return decodeIconFile(path)
	}
	return decodeBinary(path)
}

func decodeIconFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := ico.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode ico: %w", err)
	}
	return img, nil
}

func decodeBinary(path string) (image.Image, error) {
	var buf bytes.Buffer
	if err := fico.F2ICO(&buf, path, fico.Config{Format: "ico"}); err != nil {
		if isNoIcon(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("extract icon: %w", err)
	}
	if buf.Len() == 0 {
		return nil, nil
	}

	img, err := ico.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode extracted ico: %w", err)
	}
	return img, nil
}

// isNoIcon classifies extraction failures that mean "valid binary, no icon
// resource". Those files are everywhere (console tools, most .dll files)
// and must stay quiet; only genuinely unreadable or malformed input is an
// error. The extractor reports absence through error text, not a sentinel.
func isNoIcon(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "no icon") ||
		strings.Contains(s, "no resource") ||
		strings.Contains(s, "not found")
}
