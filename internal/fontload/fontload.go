package fontload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for font files with an extension other
// than .ttf or .otf.
var ErrUnsupportedFormat = errors.New("unsupported font file format")

var extensions = map[string]bool{
	".ttf": true,
	".otf": true,
}

// FontFile is the raw content of a font file.
type FontFile struct {
	Filepath string
	Binary   []byte
}

// Supported reports whether a file name carries an accepted font file extension.
func Supported(fontfile string) bool {
	return extensions[strings.ToLower(filepath.Ext(fontfile))]
}

// Load loads an OpenType font file (TTF or OTF). The binary is not
// interpreted.
func Load(fontfile string) (*FontFile, error) {
	if !Supported(fontfile) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(fontfile))
	}
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return &FontFile{Filepath: fontfile, Binary: bytez}, nil
}
