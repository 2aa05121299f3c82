// Package format loads and emits nonogram puzzles in the
// external interchange formats: webpbn XML, the Olšák solver's
// .g format, informal char grids, palette-indexed images, and
// (export only) HTML.  The core solver is format-agnostic; this
// package converts everything to and from puzzle.Summary values.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// A Format names one of the supported interchange formats.
type Format int

// Constants for the supported formats.
const (
	FormatUnknown Format = iota
	FormatImage
	FormatWebpbn
	FormatOlsak
	FormatCharGrid
	FormatHTML
)

// Formats implement Stringer
func (f Format) String() string {
	switch f {
	case FormatImage:
		return "image"
	case FormatWebpbn:
		return "webpbn"
	case FormatOlsak:
		return "olsak"
	case FormatCharGrid:
		return "chargrid"
	case FormatHTML:
		return "html"
	}
	return "unknown"
}

// ParseFormat maps a format name (as given on a command line) to
// a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "image", "png":
		return FormatImage, nil
	case "webpbn", "pbn", "xml":
		return FormatWebpbn, nil
	case "olsak", "g":
		return FormatOlsak, nil
	case "chargrid", "char-grid", "txt", "text":
		return FormatCharGrid, nil
	case "html":
		return FormatHTML, nil
	}
	return FormatUnknown, fmt.Errorf("unknown format %q", name)
}

// InferFormat guesses a file's format from its extension,
// falling back to the char grid, which accepts almost anything.
func InferFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp", ".gif":
		return FormatImage
	case ".xml", ".pbn":
		return FormatWebpbn
	case ".g":
		return FormatOlsak
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatCharGrid
	}
}
